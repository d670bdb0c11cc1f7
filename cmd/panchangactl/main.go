package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vastr/panchanga/internal/bootstrap"
	"github.com/vastr/panchanga/internal/cli"
	"github.com/vastr/panchanga/internal/domain/panchanga"
	"github.com/vastr/panchanga/internal/infra/config"
	"github.com/vastr/panchanga/pkg/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := cli.NewRootCommand(func(ctx context.Context) (panchanga.Service, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		return bootstrap.NewLocalService(cfg, logger.NewWithWriter(os.Stderr, "warn", "text"))
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
