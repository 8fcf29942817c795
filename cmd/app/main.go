package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"staysync/config"
	"staysync/di"
	"staysync/helper"
	"staysync/shared/constant"
	"staysync/shared/logger"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	app, err := di.InitializeApp()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize service")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Pool.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start sync pool")
	}

	if err := app.Scheduler.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start sync scheduler")
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(app.HTTP.Serve)

	group.Go(func() error {
		app.Consumer.Run(groupCtx)

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		log.Info().Msg("Received shutdown signal.")

		return shutdown(app)
	})

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Msg("service stopped with error")
		os.Exit(1)
	}

	log.Info().Msg("Shutdown completed.")
}

// shutdown drains inbound traffic first, then the workers, then the clients they use.
func shutdown(app *di.App) error {
	ctx, cancel := context.WithTimeout(context.Background(), constant.ShutdownGrace)
	defer cancel()

	httpErr := app.HTTP.Shutdown(context.Background())

	app.Scheduler.Stop()
	app.Pool.Stop()

	return errors.Join(
		httpErr,
		app.Kafka.Close(),
		app.Otel.Shutdown(ctx),
		app.DB.Close(),
		app.Redis.Close(),
	)
}
