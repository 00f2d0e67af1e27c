package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/app"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/config"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/logging"
)

func main() {
	once := flag.Bool("once", false, "run a single pipeline pass and exit")
	flag.Parse()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	application := app.New(cfg, logger)
	defer func() {
		if err := application.Stop(context.Background()); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	if *once {
		report := application.RunOnce(ctx)
		if report.Failed {
			logger.Error("run failed", "error", report.Error)
			os.Exit(1)
		}
		return
	}

	if err := application.Start(ctx); err != nil {
		logger.Error("scheduler start", "error", err)
		os.Exit(1)
	}
	<-ctx.Done()
}
