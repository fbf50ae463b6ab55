// Package app wires configuration into a running service.
package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"triage/internal/ai"
	"triage/internal/config"
	"triage/internal/decision"
	"triage/internal/gateway/provider"
	"triage/internal/logger"
	"triage/internal/rules"
	triagehttp "triage/internal/transport/http"
)

// App holds the assembled service.
type App struct {
	cfg    *config.Config
	server *triagehttp.Server
}

// New builds the application from config without starting it.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)
	return buildAppWithWire(context.Background(), cfg)
}

// Run serves HTTP until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return a.server.Start(ctx)
	})
	return group.Wait()
}

// AppBuilder constructs the dependency graph step by step.
type AppBuilder struct {
	cfg *config.Config
}

func NewAppBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	cfg := b.cfg
	timeout := time.Duration(cfg.Classify.TimeoutSeconds) * time.Second

	providers := ai.BuildProvidersFromConfig(ctx, cfg.AI.Models, timeout, cfg.Classify.MaxRetries)
	chain := provider.NewFailover(providers)
	if chain.Enabled() {
		logger.Infof("loaded %d model provider(s): %v", len(chain.IDs()), chain.IDs())
	} else {
		logger.Warnf("no model providers enabled; every ticket will receive a degraded decision")
	}

	ruleSet, err := rules.New(rules.Options{
		SecurityKeywords: cfg.Rules.SecurityKeywords,
		LegalKeywords:    cfg.Rules.LegalKeywords,
		ChurnKeywords:    cfg.Rules.ChurnKeywords,
		TechnicalAge:     time.Duration(cfg.Classify.TechnicalAgeHours) * time.Hour,
		TargetOrder:      cfg.Rules.TargetOrder,
	})
	if err != nil {
		return nil, fmt.Errorf("build rule set: %w", err)
	}

	interp := decision.NewInterpreter(chain, ruleSet,
		decision.WithTimeout(timeout),
		decision.WithBatchParallelism(cfg.Classify.BatchParallelism),
	)
	server := triagehttp.NewServer(cfg.Server.Addr, interp, chain.IDs())

	return &App{cfg: cfg, server: server}, nil
}
