package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Solver    SolverConfig    `yaml:"solver"`
	Ephemeris EphemerisConfig `yaml:"ephemeris"`
	SunEvents SunEventsConfig `yaml:"sunEvents"`
	Karana    KaranaConfig    `yaml:"karana"`
	Elevation ElevationConfig `yaml:"elevation"`
	Cache     CacheConfig     `yaml:"cache"`
	History   HistoryConfig   `yaml:"history"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	ShutdownGrace  time.Duration   `yaml:"shutdownGrace"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries of failed requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// SolverConfig bounds the boundary bisection.
type SolverConfig struct {
	Window          time.Duration `yaml:"window"`
	Precision       time.Duration `yaml:"precision"`
	AngleTolerance  float64       `yaml:"angleTolerance"`
	VerifyTolerance float64       `yaml:"verifyTolerance"`
	MaxIterations   int           `yaml:"maxIterations"`
	MaxExpansions   int           `yaml:"maxExpansions"`
}

// EphemerisConfig selects the zodiac of reported longitudes.
type EphemerisConfig struct {
	Ayanamsa string `yaml:"ayanamsa"`
}

// SunEventsConfig selects the sunrise algorithm.
type SunEventsConfig struct {
	Backend string `yaml:"backend"`
}

// KaranaConfig selects the half-tithi to karana mapping.
type KaranaConfig struct {
	Rule string `yaml:"rule"`
}

// ElevationConfig controls the ground elevation lookup.
type ElevationConfig struct {
	Enabled    bool          `yaml:"enabled"`
	APIBaseURL string        `yaml:"apiBaseUrl"`
	Dataset    string        `yaml:"dataset"`
	Timeout    time.Duration `yaml:"timeout"`
}

// CacheConfig controls memoisation of sun events and elevations.
type CacheConfig struct {
	TTL   time.Duration `yaml:"ttl"`
	Redis RedisConfig   `yaml:"redis"`
}

// RedisConfig contains connection information for cache storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// HistoryConfig controls the computation history.
type HistoryConfig struct {
	DefaultLimit   int            `yaml:"defaultLimit"`
	MemoryCapacity int            `yaml:"memoryCapacity"`
	Postgres       PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_SHUTDOWN_GRACE"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.ShutdownGrace = parsed
		}
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("SOLVER_WINDOW"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Solver.Window = parsed
		}
	}
	if v := os.Getenv("SOLVER_PRECISION"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Solver.Precision = parsed
		}
	}
	if v := os.Getenv("SOLVER_MAX_ITERATIONS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Solver.MaxIterations = parsed
		}
	}
	if v := os.Getenv("EPHEMERIS_AYANAMSA"); v != "" {
		cfg.Ephemeris.Ayanamsa = v
	}
	if v := os.Getenv("SUN_EVENTS_BACKEND"); v != "" {
		cfg.SunEvents.Backend = v
	}
	if v := os.Getenv("KARANA_RULE"); v != "" {
		cfg.Karana.Rule = v
	}
	if v := os.Getenv("ELEVATION_ENABLED"); v != "" {
		cfg.Elevation.Enabled = parseBool(v)
	}
	if v := os.Getenv("ELEVATION_API_BASE_URL"); v != "" {
		cfg.Elevation.APIBaseURL = v
	}
	if v := os.Getenv("ELEVATION_DATASET"); v != "" {
		cfg.Elevation.Dataset = v
	}
	if v := os.Getenv("ELEVATION_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Elevation.Timeout = parsed
		}
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = parsed
		}
	}
	if v := os.Getenv("CACHE_REDIS_ENABLED"); v != "" {
		cfg.Cache.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("CACHE_REDIS_ADDR"); v != "" {
		cfg.Cache.Redis.Addr = v
	}
	if v := os.Getenv("HISTORY_POSTGRES_DSN"); v != "" {
		cfg.History.Postgres.DSN = v
	}
	if v := os.Getenv("HISTORY_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.History.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("HISTORY_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.History.Postgres.MinConns = int32(parsed)
		}
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Default returns the configuration used when no file or environment
// variable overrides a field.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			ShutdownGrace:  10 * time.Second,
			AllowedOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     false,
				MaxAttempts: 2,
				BaseBackoff: 100 * time.Millisecond,
			},
		},
		Solver: SolverConfig{
			Window:          48 * time.Hour,
			Precision:       time.Millisecond,
			AngleTolerance:  1e-7,
			VerifyTolerance: 1e-3,
			MaxIterations:   64,
			MaxExpansions:   3,
		},
		Ephemeris: EphemerisConfig{Ayanamsa: "lahiri"},
		SunEvents: SunEventsConfig{Backend: "gosunrise"},
		Karana:    KaranaConfig{Rule: "classical"},
		Elevation: ElevationConfig{
			Enabled:    false,
			APIBaseURL: "https://api.opentopodata.org/v1",
			Dataset:    "gebco2020",
			Timeout:    5 * time.Second,
		},
		Cache: CacheConfig{
			TTL: 24 * time.Hour,
			Redis: RedisConfig{
				Enabled: false,
				Prefix:  "panchanga",
			},
		},
		History: HistoryConfig{
			DefaultLimit:   20,
			MemoryCapacity: 100,
			Postgres: PostgresConfig{
				MaxConns: 4,
				MinConns: 0,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	if c.Solver.Window <= 0 {
		return errors.New("solver.window must be positive")
	}
	if c.Solver.Precision <= 0 || c.Solver.Precision >= c.Solver.Window {
		return errors.New("solver.precision must be positive and below solver.window")
	}
	if c.Solver.AngleTolerance < 0 {
		return errors.New("solver.angleTolerance cannot be negative")
	}
	if c.Solver.VerifyTolerance <= 0 {
		return errors.New("solver.verifyTolerance must be positive")
	}
	if c.Solver.MaxIterations <= 0 {
		return errors.New("solver.maxIterations must be positive")
	}
	if !oneOf(c.Ephemeris.Ayanamsa, "", "lahiri", "tropical") {
		return fmt.Errorf("ephemeris.ayanamsa %q must be lahiri or tropical", c.Ephemeris.Ayanamsa)
	}
	if !oneOf(c.SunEvents.Backend, "", "gosunrise", "suncalc") {
		return fmt.Errorf("sunEvents.backend %q must be gosunrise or suncalc", c.SunEvents.Backend)
	}
	if !oneOf(c.Karana.Rule, "", "classical", "legacy") {
		return fmt.Errorf("karana.rule %q must be classical or legacy", c.Karana.Rule)
	}
	if c.Elevation.Enabled && strings.TrimSpace(c.Elevation.APIBaseURL) == "" {
		return errors.New("elevation.apiBaseUrl cannot be empty when elevation lookup is enabled")
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl cannot be negative")
	}
	if c.Cache.Redis.Enabled && strings.TrimSpace(c.Cache.Redis.Addr) == "" {
		return errors.New("cache.redis.addr cannot be empty when redis cache is enabled")
	}
	if c.History.DefaultLimit < 0 || c.History.MemoryCapacity < 0 {
		return errors.New("history limits cannot be negative")
	}
	return nil
}

func oneOf(value string, allowed ...string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
