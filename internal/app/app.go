package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/riskibarqy/fantasy-wrestling/external/resultsfeed"
	"github.com/riskibarqy/fantasy-wrestling/internal/config"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/ledger"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/roster"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/team"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/trade"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/window"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/wrestler"
	cacherepo "github.com/riskibarqy/fantasy-wrestling/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-wrestling/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-wrestling/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-wrestling/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/fantasy-wrestling/internal/platform/cache"
	idgen "github.com/riskibarqy/fantasy-wrestling/internal/platform/id"
	"github.com/riskibarqy/fantasy-wrestling/internal/platform/logging"
	"github.com/riskibarqy/fantasy-wrestling/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-wrestling/internal/usecase"
)

type repositories struct {
	wrestlers wrestler.Repository
	teams     team.Repository
	ledger    ledger.Repository
	windows   window.Repository
	trades    trade.Repository
	scoring   scoring.Repository
}

// NewHTTPServer wires repositories, services and the HTTP router. With DB_URL
// set it runs against Postgres; without it the in-memory demo league is used.
// The returned cleanup closes the database handle and must run on shutdown.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}

	platformLogger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(platformLogger)

	repos, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		repoCache := basecache.NewStore(cfg.CacheTTL)
		repos.wrestlers = cacherepo.NewWrestlerRepository(repos.wrestlers, repoCache)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, repoCache)
		// Trades and event replaces reassign wrestlers and adjust point
		// totals below the wrestler decorator, so they share its store and
		// drop its entries on write.
		repos.trades = cacherepo.NewTradeRepository(repos.trades, repoCache)
		repos.scoring = cacherepo.NewScoringRepository(repos.scoring, repoCache)
	}

	idGen := idgen.NewRandomGenerator()
	rules := roster.Rules{RosterCap: cfg.RosterCap, StarterCap: cfg.StarterCap}

	windowSvc := usecase.NewWindowService(repos.windows, cfg.LeagueLocation, idGen)
	rosterSvc := usecase.NewRosterService(repos.wrestlers, repos.teams, repos.ledger, windowSvc, rules, idGen)
	tradeSvc := usecase.NewTradeService(repos.trades, repos.teams, repos.wrestlers, windowSvc, idGen)
	importSvc := usecase.NewImportService(repos.wrestlers, repos.teams, repos.scoring, repos.ledger, idGen)
	standingsSvc := usecase.NewStandingsService(
		repos.wrestlers,
		repos.teams,
		repos.scoring,
		basecache.NewStore(cfg.CacheTTL),
		cfg.StandingsStarterOnly,
		cfg.WeekAnchor,
		cfg.LeagueLocation,
	)
	recomputeSvc := usecase.NewRecomputeService(repos.wrestlers, repos.scoring)

	if cfg.ResultsFeedEnabled {
		importSvc.SetFetcher(resultsfeed.NewClient(resultsfeed.ClientConfig{
			Timeout:      cfg.ResultsFeedTimeout,
			MaxRetries:   cfg.ResultsFeedMaxRetries,
			MaxBodyBytes: cfg.ResultsFeedMaxBodyBytes,
			UserAgent:    cfg.ResultsFeedUserAgent,
			Logger:       platformLogger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ResultsFeedCircuitEnabled,
				FailureThreshold: cfg.ResultsFeedCircuitFailureCount,
				OpenTimeout:      cfg.ResultsFeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ResultsFeedCircuitHalfOpenMaxReq,
			},
		}))
	}

	handler := httpapi.NewHandler(rosterSvc, tradeSvc, importSvc, standingsSvc, windowSvc, recomputeSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *slog.Logger) (repositories, func() error, error) {
	if cfg.DBURL == "" {
		logger.Info("no DB_URL configured, using in-memory repositories")

		wrestlers := memory.NewWrestlerRepository(memory.SeedWrestlers())
		ledgerRepo := memory.NewLedgerRepository()
		return repositories{
			wrestlers: wrestlers,
			teams:     memory.NewTeamRepository(memory.SeedTeams()),
			ledger:    ledgerRepo,
			windows:   memory.NewWindowRepository(memory.SeedWindows()),
			trades:    memory.NewTradeRepository(wrestlers, ledgerRepo),
			scoring:   memory.NewScoringRepository(wrestlers),
		}, func() error { return nil }, nil
	}

	db, err := sqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary))
	if err != nil {
		return repositories{}, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return repositories{}, nil, fmt.Errorf("ping database %s: %w", dbNameFromURL(cfg.DBURL), err)
	}

	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		_ = db.Close()
		return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
	}

	logger.Info("postgres repositories ready", "database", dbNameFromURL(cfg.DBURL))

	return repositories{
		wrestlers: postgres.NewWrestlerRepository(db),
		teams:     postgres.NewTeamRepository(db),
		ledger:    postgres.NewLedgerRepository(db),
		windows:   postgres.NewWindowRepository(db),
		trades:    postgres.NewTradeRepository(db),
		scoring:   postgres.NewScoringRepository(db),
	}, db.Close, nil
}
