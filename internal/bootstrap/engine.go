package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/vastr/panchanga/internal/domain/boundary"
	"github.com/vastr/panchanga/internal/domain/elements"
	"github.com/vastr/panchanga/internal/domain/panchanga"
	"github.com/vastr/panchanga/internal/domain/vara"
	"github.com/vastr/panchanga/internal/infra/config"
	"github.com/vastr/panchanga/internal/infra/elevation/opentopo"
	"github.com/vastr/panchanga/internal/infra/ephemeris/meeus"
	"github.com/vastr/panchanga/internal/infra/geotz"
	"github.com/vastr/panchanga/internal/infra/historyrepo"
	"github.com/vastr/panchanga/internal/infra/memo"
	"github.com/vastr/panchanga/internal/infra/sunevents"
)

// NewLocalService assembles a Panchanga service that keeps its caches and
// history in process memory. The command line tool uses it; the HTTP server
// is assembled by Wire instead.
func NewLocalService(cfg *config.Config, logger *slog.Logger) (panchanga.Service, error) {
	rule, err := elements.ParseKaranaRule(cfg.Karana.Rule)
	if err != nil {
		return nil, err
	}
	ayanamsa, err := meeus.ParseAyanamsa(cfg.Ephemeris.Ayanamsa)
	if err != nil {
		return nil, err
	}
	backend, err := sunevents.ParseBackend(cfg.SunEvents.Backend)
	if err != nil {
		return nil, err
	}
	zones, err := geotz.NewFinder()
	if err != nil {
		return nil, fmt.Errorf("timezone finder: %w", err)
	}

	store := memo.NewMemoryStore()
	solver := boundary.NewSolver(boundary.Config{
		Window:          cfg.Solver.Window,
		Precision:       cfg.Solver.Precision,
		AngleTolerance:  cfg.Solver.AngleTolerance,
		VerifyTolerance: cfg.Solver.VerifyTolerance,
		MaxIterations:   cfg.Solver.MaxIterations,
		MaxExpansions:   cfg.Solver.MaxExpansions,
	})
	days := vara.NewCalculator(sunevents.NewCached(sunevents.New(backend), store, cfg.Cache.TTL))
	pcfg := panchanga.Config{KaranaRule: rule, HistoryLimit: cfg.History.DefaultLimit}
	calc := panchanga.NewCalculator(pcfg, meeus.NewProvider(ayanamsa), solver, days)

	var elevations panchanga.ElevationProvider
	if cfg.Elevation.Enabled {
		client := opentopo.NewClient(cfg.Elevation.APIBaseURL, cfg.Elevation.Dataset, cfg.Elevation.Timeout)
		elevations = opentopo.NewCached(client, store, cfg.Cache.TTL)
	}

	history := historyrepo.NewMemoryRepository(cfg.History.MemoryCapacity)
	return panchanga.NewService(pcfg, calc, zones, elevations, history, logger), nil
}
