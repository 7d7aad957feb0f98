package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hoverbar/hoverbar/internal/bar"
	"github.com/hoverbar/hoverbar/internal/config"
	"github.com/hoverbar/hoverbar/internal/daemon"
	"github.com/hoverbar/hoverbar/internal/database"
	"github.com/hoverbar/hoverbar/internal/hover"
	"github.com/hoverbar/hoverbar/pkg/locator"
)

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func runHover(cmd *cobra.Command, a *app, args []string) error {
	cfg, err := a.loadConfig(cmd.Flags(), true)
	if err != nil {
		return err
	}
	cfg.Bar.ExtraArgs = append(cfg.Bar.ExtraArgs, args...)

	a.logger.Debug("configuration loaded", "config", cfg.String())

	d := daemon.New(cfg.Daemon.PIDFile)
	if err := d.Acquire(); err != nil {
		return err
	}
	defer func() {
		if err := d.RemovePID(); err != nil {
			a.logger.Warn("failed to remove PID file", "error", err)
		}
	}()

	opts := []hover.Option{hover.WithLogger(a.logger)}
	if cfg.Journal.Enabled {
		journal, closeJournal, err := openJournal(cfg, a)
		if err != nil {
			return err
		}
		defer closeJournal()
		opts = append(opts, hover.WithRecorder(journal))
	}

	loc := locator.New(a.logger)
	defer loc.Close()

	controller := bar.NewController(cfg.Bar.Command, bar.WithLogger(a.logger))
	machine := hover.New(cfg.Hover, cfg.Bar.Args(), loc, controller, opts...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("hover detector started",
		"pid", os.Getpid(),
		"session", locator.DetectSession(),
		"bar", cfg.Bar.Command,
	)

	err = machine.Run(ctx)

	// Leave no bar behind after shutdown.
	controller.Hide()

	if errors.Is(err, context.Canceled) {
		a.logger.Info("shutting down")
		return nil
	}
	return err
}

func openJournal(cfg *config.Config, a *app) (*database.Journal, func(), error) {
	db, err := database.Connect(cfg.Journal.Path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open journal")
	}
	if err := db.Initialize(); err != nil {
		_ = db.Close()
		return nil, nil, errors.Wrap(err, "failed to initialize journal")
	}

	journal := database.NewJournal(database.NewRepository(db), a.logger)
	a.logger.Debug("journal opened", "run_id", journal.RunID())

	return journal, func() {
		if err := db.Close(); err != nil {
			a.logger.Warn("failed to close journal", "error", err)
		}
	}, nil
}
