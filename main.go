package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/soocke/gesture-scroll/app"
	"github.com/soocke/gesture-scroll/config"
	"github.com/soocke/gesture-scroll/ui/window"
)

func main() {
	cfgPath := flag.String("config", "gesture-scroll.json", "path to the JSON config file")
	logLevel := flag.String("log-level", "", "override log level (debug, info, warn, error)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	_ = cfg.Validate()
	logger := NewLogger(os.Stdout, cfg.SlogLevel())
	if err != nil {
		logger.Warn("config load failed; using defaults", "path", *cfgPath, "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg, *cfgPath, logger)
	if cfg.Preview {
		err = window.Run(ctx, application, "Gesture Scroll")
	} else {
		err = application.Run(ctx)
	}
	if err != nil {
		logger.Error("gesture-scroll failed", "error", err)
		os.Exit(1)
	}
}
