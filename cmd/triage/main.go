package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"triage/internal/app"
	"triage/internal/config"
	"triage/internal/logger"
)

// Entry point:
// 1) load TOML config
// 2) assemble the application (providers, rule set, interpreter, HTTP server)
// 3) serve until interrupted
func main() {
	cfgPath := os.Getenv("TRIAGE_CONFIG")
	if cfgPath == "" {
		cfgPath = "configs/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger.Infof("config loaded (env=%s, addr=%s, models=%d)", cfg.App.Env, cfg.Server.Addr, len(cfg.AI.Models))

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("build app: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := a.Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
}
