//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/vastr/panchanga/internal/bootstrap"
	"github.com/vastr/panchanga/internal/domain/angles"
	"github.com/vastr/panchanga/internal/domain/panchanga"
	"github.com/vastr/panchanga/internal/domain/vara"
	"github.com/vastr/panchanga/internal/infra/config"
	"github.com/vastr/panchanga/internal/infra/ephemeris/meeus"
	"github.com/vastr/panchanga/internal/infra/geotz"
	httpiface "github.com/vastr/panchanga/internal/interface/http"
	"github.com/vastr/panchanga/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		providePanchangaConfig,
		provideSolver,
		provideEphemeris,
		provideMemoStore,
		provideSunEvents,
		provideElevation,
		provideHistoryRepository,
		geotz.NewFinder,
		vara.NewCalculator,
		panchanga.NewCalculator,
		panchanga.NewService,
		wire.Bind(new(angles.PositionProvider), new(*meeus.Provider)),
		wire.Bind(new(panchanga.TimezoneProvider), new(*geotz.Finder)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
