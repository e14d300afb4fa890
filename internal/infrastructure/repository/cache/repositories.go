package cache

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/roster"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/team"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/trade"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/wrestler"
	basecache "github.com/riskibarqy/fantasy-wrestling/internal/platform/cache"
)

// TeamRepository caches team reads. Teams only change via seeds and
// migrations, so entries live until the TTL expires.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (team.Team, bool, error) {
	key := "team:id:" + id
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeam)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	key := "team:name:" + strings.ToLower(strings.TrimSpace(name))
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeam)
	return cached.value, cached.exists, nil
}

type cachedTeam struct {
	value  team.Team
	exists bool
}

// WrestlerRepository caches wrestler reads and drops every wrestler entry on
// any mutation that goes through it. Trade accepts and scoring writes mutate
// wrestlers behind this layer, so their repositories get the same treatment
// below and must share this store.
type WrestlerRepository struct {
	next  wrestler.Repository
	cache *basecache.Store
}

func NewWrestlerRepository(next wrestler.Repository, cache *basecache.Store) *WrestlerRepository {
	return &WrestlerRepository{next: next, cache: cache}
}

func (r *WrestlerRepository) List(ctx context.Context) ([]wrestler.Wrestler, error) {
	return r.loadList(ctx, "wrestler:list", r.next.List)
}

func (r *WrestlerRepository) ListAvailable(ctx context.Context) ([]wrestler.Wrestler, error) {
	return r.loadList(ctx, "wrestler:available", r.next.ListAvailable)
}

func (r *WrestlerRepository) ListByTeam(ctx context.Context, teamID string) ([]wrestler.Wrestler, error) {
	key := "wrestler:team:" + teamID
	return r.loadList(ctx, key, func(ctx context.Context) ([]wrestler.Wrestler, error) {
		return r.next.ListByTeam(ctx, teamID)
	})
}

func (r *WrestlerRepository) GetByName(ctx context.Context, name string) (wrestler.Wrestler, bool, error) {
	key := "wrestler:name:" + strings.ToLower(strings.TrimSpace(name))
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		return cachedWrestler{value: item, exists: exists}, nil
	})
	if err != nil {
		return wrestler.Wrestler{}, false, err
	}

	cached, _ := v.(cachedWrestler)
	return cached.value, cached.exists, nil
}

func (r *WrestlerRepository) AssignToTeam(ctx context.Context, wrestlerID, teamID string, rules roster.Rules) error {
	if err := r.next.AssignToTeam(ctx, wrestlerID, teamID, rules); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *WrestlerRepository) Release(ctx context.Context, wrestlerID, teamID string) error {
	if err := r.next.Release(ctx, wrestlerID, teamID); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *WrestlerRepository) SetStarter(ctx context.Context, wrestlerID string, isStarter bool, rules roster.Rules) error {
	if err := r.next.SetStarter(ctx, wrestlerID, isStarter, rules); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *WrestlerRepository) SetPoints(ctx context.Context, wrestlerID string, points int) error {
	if err := r.next.SetPoints(ctx, wrestlerID, points); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *WrestlerRepository) loadList(ctx context.Context, key string, loader func(context.Context) ([]wrestler.Wrestler, error)) ([]wrestler.Wrestler, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return append([]wrestler.Wrestler(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]wrestler.Wrestler)
	return append([]wrestler.Wrestler(nil), items...), nil
}

func (r *WrestlerRepository) invalidate(ctx context.Context) {
	r.cache.DeletePrefix(ctx, "wrestler:")
}

type cachedWrestler struct {
	value  wrestler.Wrestler
	exists bool
}

// TradeRepository drops cached wrestler reads after an accepted trade, which
// reassigns wrestlers underneath the wrestler decorator. Reads and the other
// writes pass straight through.
type TradeRepository struct {
	next  trade.Repository
	cache *basecache.Store
}

func NewTradeRepository(next trade.Repository, cache *basecache.Store) *TradeRepository {
	return &TradeRepository{next: next, cache: cache}
}

func (r *TradeRepository) Create(ctx context.Context, proposal trade.Proposal) error {
	return r.next.Create(ctx, proposal)
}

func (r *TradeRepository) GetByID(ctx context.Context, id string) (trade.Proposal, bool, error) {
	return r.next.GetByID(ctx, id)
}

func (r *TradeRepository) List(ctx context.Context) ([]trade.Proposal, error) {
	return r.next.List(ctx)
}

func (r *TradeRepository) ListPendingByReceivingTeam(ctx context.Context, teamName string) ([]trade.Proposal, error) {
	return r.next.ListPendingByReceivingTeam(ctx, teamName)
}

func (r *TradeRepository) Reject(ctx context.Context, id string, respondedAt time.Time) error {
	return r.next.Reject(ctx, id, respondedAt)
}

func (r *TradeRepository) ExecuteAccept(ctx context.Context, swap trade.AcceptSwap) error {
	if err := r.next.ExecuteAccept(ctx, swap); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "wrestler:")
	return nil
}

// ScoringRepository drops cached wrestler reads after an event replace,
// which adjusts wrestler point totals underneath the wrestler decorator.
type ScoringRepository struct {
	next  scoring.Repository
	cache *basecache.Store
}

func NewScoringRepository(next scoring.Repository, cache *basecache.Store) *ScoringRepository {
	return &ScoringRepository{next: next, cache: cache}
}

func (r *ScoringRepository) ReplaceEventEntries(ctx context.Context, eventName string, eventDate time.Time, entries []scoring.EventEntry) error {
	if err := r.next.ReplaceEventEntries(ctx, eventName, eventDate, entries); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "wrestler:")
	return nil
}

func (r *ScoringRepository) ListEntriesByEvent(ctx context.Context, eventName string, eventDate time.Time) ([]scoring.EventEntry, error) {
	return r.next.ListEntriesByEvent(ctx, eventName, eventDate)
}

func (r *ScoringRepository) ListEntries(ctx context.Context) ([]scoring.EventEntry, error) {
	return r.next.ListEntries(ctx)
}

func (r *ScoringRepository) SumPointsByWrestler(ctx context.Context) (map[string]int, error) {
	return r.next.SumPointsByWrestler(ctx)
}

func (r *ScoringRepository) ListWeeklyScores(ctx context.Context, anchor time.Weekday, loc *time.Location) ([]scoring.WeeklyScore, error) {
	return r.next.ListWeeklyScores(ctx, anchor, loc)
}

func (r *ScoringRepository) InsertWeeklyWins(ctx context.Context, weekStart time.Time, teamIDs []string) error {
	return r.next.InsertWeeklyWins(ctx, weekStart, teamIDs)
}

func (r *ScoringRepository) ListWeeklyWins(ctx context.Context) ([]scoring.WeeklyWin, error) {
	return r.next.ListWeeklyWins(ctx)
}
