// Command server runs the prisoner-money security HTTP service.
package main

import (
	"log/slog"
	"os"

	"github.com/ministryofjustice/money-to-prisoners-security/infra"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository/model"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/config"
	"github.com/ministryofjustice/money-to-prisoners-security/webapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	app := webapi.NewApp(config.Deps{
		Uow:    infra.NewUoW(db),
		Logger: logger,
		Config: cfg,
	})

	logger.Info("starting server", "addr", cfg.HTTP.Addr, "env", cfg.Env)
	if err := app.Listen(cfg.HTTP.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.Log) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.Level(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
