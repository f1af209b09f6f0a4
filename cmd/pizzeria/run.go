package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/pizza-restaurants/internal/config"
	"github.com/deppfellow/pizza-restaurants/internal/database"
	"github.com/deppfellow/pizza-restaurants/internal/handler"
	"github.com/deppfellow/pizza-restaurants/internal/logger"
	"github.com/deppfellow/pizza-restaurants/internal/repository"
	"github.com/deppfellow/pizza-restaurants/internal/router"
	"github.com/deppfellow/pizza-restaurants/internal/server"
	"github.com/deppfellow/pizza-restaurants/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

// app bundles what every command needs before it does its own work.
type app struct {
	cfg           *config.Config
	log           zerolog.Logger
	loggerService *logger.LoggerService
}

func bootstrap() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:           cfg,
		log:           logger.NewLoggerWithService(cfg.Observability, loggerService),
		loggerService: loggerService,
	}, nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.loggerService.Shutdown()

	if err := database.Migrate(cmd.Context(), &a.log, a.cfg); err != nil {
		a.log.Error().Err(err).Msg("failed to migrate database")
		return err
	}
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.loggerService.Shutdown()

	ctx := cmd.Context()
	db, err := database.New(a.cfg, &a.log, a.loggerService)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.MigrateOpen(ctx, &a.log, a.cfg, db); err != nil {
		a.log.Error().Err(err).Msg("failed to migrate database")
		return err
	}

	s := server.NewWithDatabase(a.cfg, &a.log, db)
	services, err := service.NewService(s, repository.NewRepositories(s))
	if err != nil {
		return err
	}

	seeded, err := services.Seed.Seed(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("failed to seed database")
		return err
	}
	a.log.Info().Bool("seeded", seeded).Msg("seed finished")
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.loggerService.Shutdown()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(a.cfg, &a.log, a.loggerService)
	if err != nil {
		a.log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	if err := database.MigrateOpen(ctx, &a.log, a.cfg, srv.DB); err != nil {
		a.log.Error().Err(err).Msg("failed to migrate database")
		_ = srv.Shutdown(ctx)
		return err
	}

	services, err := service.NewService(srv, repository.NewRepositories(srv))
	if err != nil {
		a.log.Error().Err(err).Msg("could not create services")
		return err
	}

	r := router.NewRouter(srv, handler.NewHandlers(srv, services))
	srv.SetupHTTPServer(r)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			a.log.Error().Err(err).Msg("server stopped")
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	a.log.Info().Msg("server exited properly")
	return nil
}
