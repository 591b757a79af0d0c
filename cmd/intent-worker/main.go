package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/ujenzihq/ujenzipay-backend/internal/intents"
	"github.com/ujenzihq/ujenzipay-backend/pkg/config"
	"github.com/ujenzihq/ujenzipay-backend/pkg/db"
	"github.com/ujenzihq/ujenzipay-backend/pkg/logger"
	"github.com/ujenzihq/ujenzipay-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "intent-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "intent-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	dispatcher, err := intents.NewLogDispatcher(logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create dispatcher", err)
		os.Exit(1)
	}

	service, err := NewService(cfg.Intent, logg, intents.NewRepository(dbClient.DB()), dispatcher)
	if err != nil {
		logg.Error(context.Background(), "failed to create intent service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logg.Info(ctx, "intent worker started")
	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "intent worker stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(context.Background(), "intent worker stopped")
}
