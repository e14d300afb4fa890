package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-wrestling/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                           string
	ServiceName                      string
	ServiceVersion                   string
	HTTPAddr                         string
	DBURL                            string
	DBDisablePreparedBinary          bool
	CacheEnabled                     bool
	CacheTTL                         time.Duration
	CORSAllowedOrigins               []string
	ReadTimeout                      time.Duration
	WriteTimeout                     time.Duration
	LeagueTimezone                   string
	LeagueLocation                   *time.Location
	RosterCap                        int
	StarterCap                       int
	WeekAnchor                       time.Weekday
	StandingsStarterOnly             bool
	InternalJobToken                 string
	ResultsFeedEnabled               bool
	ResultsFeedUserAgent             string
	ResultsFeedTimeout               time.Duration
	ResultsFeedMaxRetries            int
	ResultsFeedMaxBodyBytes          int64
	ResultsFeedCircuitEnabled        bool
	ResultsFeedCircuitFailureCount   int
	ResultsFeedCircuitOpenTimeout    time.Duration
	ResultsFeedCircuitHalfOpenMaxReq int
	PprofEnabled                     bool
	PprofAddr                        string
	UptraceEnabled                   bool
	UptraceDSN                       string
	PyroscopeEnabled                 bool
	PyroscopeServerAddress           string
	PyroscopeAppName                 string
	PyroscopeAuthToken               string
	PyroscopeBasicAuthUser           string
	PyroscopeBasicAuthPassword       string
	PyroscopeUploadRate              time.Duration
	LogLevel                         logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	leagueTimezone := strings.TrimSpace(getEnv("LEAGUE_TIMEZONE", "America/New_York"))
	leagueLocation, err := time.LoadLocation(leagueTimezone)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_TIMEZONE: %w", err)
	}

	rosterCap, err := getEnvAsInt("ROSTER_CAP", 9)
	if err != nil {
		return Config{}, fmt.Errorf("parse ROSTER_CAP: %w", err)
	}
	if rosterCap < 1 {
		return Config{}, fmt.Errorf("ROSTER_CAP must be >= 1")
	}

	starterCap, err := getEnvAsInt("STARTER_CAP", 6)
	if err != nil {
		return Config{}, fmt.Errorf("parse STARTER_CAP: %w", err)
	}
	if starterCap < 1 {
		return Config{}, fmt.Errorf("STARTER_CAP must be >= 1")
	}
	if starterCap > rosterCap {
		return Config{}, fmt.Errorf("STARTER_CAP cannot exceed ROSTER_CAP")
	}

	weekAnchor, err := parseWeekday(getEnv("WEEK_ANCHOR", "monday"))
	if err != nil {
		return Config{}, fmt.Errorf("parse WEEK_ANCHOR: %w", err)
	}

	standingsStarterOnly, err := strconv.ParseBool(getEnv("STANDINGS_STARTER_ONLY", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STANDINGS_STARTER_ONLY: %w", err)
	}

	resultsFeedEnabled, err := strconv.ParseBool(getEnv("RESULTS_FEED_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RESULTS_FEED_ENABLED: %w", err)
	}
	resultsFeedTimeout, err := time.ParseDuration(getEnv("RESULTS_FEED_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RESULTS_FEED_TIMEOUT: %w", err)
	}
	if resultsFeedTimeout <= 0 {
		return Config{}, fmt.Errorf("RESULTS_FEED_TIMEOUT must be > 0")
	}
	resultsFeedMaxRetries, err := getEnvAsInt("RESULTS_FEED_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse RESULTS_FEED_MAX_RETRIES: %w", err)
	}
	if resultsFeedMaxRetries < 0 {
		return Config{}, fmt.Errorf("RESULTS_FEED_MAX_RETRIES must be >= 0")
	}
	resultsFeedMaxBodyBytes, err := getEnvAsInt("RESULTS_FEED_MAX_BODY_BYTES", 4<<20)
	if err != nil {
		return Config{}, fmt.Errorf("parse RESULTS_FEED_MAX_BODY_BYTES: %w", err)
	}
	if resultsFeedMaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("RESULTS_FEED_MAX_BODY_BYTES must be > 0")
	}
	resultsFeedCircuitEnabled, err := strconv.ParseBool(getEnv("RESULTS_FEED_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RESULTS_FEED_CIRCUIT_ENABLED: %w", err)
	}
	resultsFeedCircuitFailureCount, err := getEnvAsInt("RESULTS_FEED_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse RESULTS_FEED_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if resultsFeedCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("RESULTS_FEED_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	resultsFeedCircuitOpenTimeout, err := time.ParseDuration(getEnv("RESULTS_FEED_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RESULTS_FEED_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if resultsFeedCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("RESULTS_FEED_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	resultsFeedCircuitHalfOpenMaxReq, err := getEnvAsInt("RESULTS_FEED_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse RESULTS_FEED_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if resultsFeedCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("RESULTS_FEED_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                           appEnv,
		ServiceName:                      getEnv("APP_SERVICE_NAME", "fantasy-wrestling-api"),
		ServiceVersion:                   getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                         getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                            strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins:               splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LeagueTimezone:                   leagueTimezone,
		LeagueLocation:                   leagueLocation,
		RosterCap:                        rosterCap,
		StarterCap:                       starterCap,
		WeekAnchor:                       weekAnchor,
		StandingsStarterOnly:             standingsStarterOnly,
		InternalJobToken:                 strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		ResultsFeedEnabled:               resultsFeedEnabled,
		ResultsFeedUserAgent:             strings.TrimSpace(getEnv("RESULTS_FEED_USER_AGENT", "")),
		ResultsFeedTimeout:               resultsFeedTimeout,
		ResultsFeedMaxRetries:            resultsFeedMaxRetries,
		ResultsFeedMaxBodyBytes:          int64(resultsFeedMaxBodyBytes),
		ResultsFeedCircuitEnabled:        resultsFeedCircuitEnabled,
		ResultsFeedCircuitFailureCount:   resultsFeedCircuitFailureCount,
		ResultsFeedCircuitOpenTimeout:    resultsFeedCircuitOpenTimeout,
		ResultsFeedCircuitHalfOpenMaxReq: resultsFeedCircuitHalfOpenMaxReq,
		PprofEnabled:                     pprofEnabled,
		PprofAddr:                        pprofAddr,
		UptraceEnabled:                   uptraceEnabled,
		UptraceDSN:                       uptraceDSN,
		PyroscopeEnabled:                 pyroscopeEnabled,
		PyroscopeServerAddress:           pyroscopeServerAddress,
		PyroscopeAuthToken:               strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:           strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:       strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:              pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = dbDisablePreparedBinary

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

// SlogLevel maps the configured level onto the slog scale used by the HTTP
// layer.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case logging.LevelDebug:
		return slog.LevelDebug
	case logging.LevelWarn:
		return slog.LevelWarn
	case logging.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseWeekday(v string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	case "tuesday", "tue":
		return time.Tuesday, nil
	case "wednesday", "wed":
		return time.Wednesday, nil
	case "thursday", "thu":
		return time.Thursday, nil
	case "friday", "fri":
		return time.Friday, nil
	case "saturday", "sat":
		return time.Saturday, nil
	default:
		return time.Monday, fmt.Errorf("invalid weekday %q", v)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
