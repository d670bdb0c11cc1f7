package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/vastr/panchanga/internal/domain/boundary"
	"github.com/vastr/panchanga/internal/domain/elements"
	"github.com/vastr/panchanga/internal/domain/panchanga"
	"github.com/vastr/panchanga/internal/domain/vara"
	"github.com/vastr/panchanga/internal/infra/config"
	"github.com/vastr/panchanga/internal/infra/elevation/opentopo"
	"github.com/vastr/panchanga/internal/infra/ephemeris/meeus"
	"github.com/vastr/panchanga/internal/infra/historyrepo"
	"github.com/vastr/panchanga/internal/infra/memo"
	"github.com/vastr/panchanga/internal/infra/sunevents"
)

func providePanchangaConfig(cfg *config.Config) (panchanga.Config, error) {
	rule, err := elements.ParseKaranaRule(cfg.Karana.Rule)
	if err != nil {
		return panchanga.Config{}, err
	}
	return panchanga.Config{
		KaranaRule:   rule,
		HistoryLimit: cfg.History.DefaultLimit,
	}, nil
}

func provideSolver(cfg *config.Config) *boundary.Solver {
	return boundary.NewSolver(boundary.Config{
		Window:          cfg.Solver.Window,
		Precision:       cfg.Solver.Precision,
		AngleTolerance:  cfg.Solver.AngleTolerance,
		VerifyTolerance: cfg.Solver.VerifyTolerance,
		MaxIterations:   cfg.Solver.MaxIterations,
		MaxExpansions:   cfg.Solver.MaxExpansions,
	})
}

func provideEphemeris(cfg *config.Config) (*meeus.Provider, error) {
	ayanamsa, err := meeus.ParseAyanamsa(cfg.Ephemeris.Ayanamsa)
	if err != nil {
		return nil, err
	}
	return meeus.NewProvider(ayanamsa), nil
}

func provideSunEvents(cfg *config.Config, store memo.Store) (vara.SunEventsProvider, error) {
	backend, err := sunevents.ParseBackend(cfg.SunEvents.Backend)
	if err != nil {
		return nil, err
	}
	return sunevents.NewCached(sunevents.New(backend), store, cfg.Cache.TTL), nil
}

func provideElevation(cfg *config.Config, store memo.Store, logger *slog.Logger) panchanga.ElevationProvider {
	if !cfg.Elevation.Enabled {
		logger.Info("elevation lookup disabled, requests default to sea level")
		return nil
	}
	client := opentopo.NewClient(cfg.Elevation.APIBaseURL, cfg.Elevation.Dataset, cfg.Elevation.Timeout)
	logger.Info("elevation lookup enabled", "dataset", cfg.Elevation.Dataset)
	return opentopo.NewCached(client, store, cfg.Cache.TTL)
}

func provideHistoryRepository(cfg *config.Config, logger *slog.Logger) panchanga.HistoryRepository {
	fallback := historyrepo.NewMemoryRepository(cfg.History.MemoryCapacity)
	dsn := strings.TrimSpace(cfg.History.Postgres.DSN)
	if dsn == "" {
		logger.Info("history postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.History.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.History.Postgres.MaxConns
	}
	if cfg.History.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.History.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("history postgres repository enabled")
	return historyrepo.NewPostgresRepository(pool)
}

func provideMemoStore(cfg *config.Config, logger *slog.Logger) memo.Store {
	if cfg.Cache.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return memo.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return memo.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("valkey cache enabled", "addr", cfg.Cache.Redis.Addr)
			return memo.NewValkeyStore(client, cfg.Cache.Redis.Prefix)
		}
	}
	return memo.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.Cache.Redis.Addr, "://") {
		return valkey.ParseURL(cfg.Cache.Redis.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.Cache.Redis.Addr}}, nil
}
