package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-asrdeploy/internal/config"
	"github.com/goliatone/go-asrdeploy/internal/presets"
	"github.com/goliatone/go-asrdeploy/pkg/orchestrator"
)

type globalOptions struct {
	ConfigFile  string
	PresetsFile string
	LogLevel    string
}

func newGlobalOptions() *globalOptions {
	return &globalOptions{}
}

func (g *globalOptions) PersistentFlags(forCommand *cobra.Command) {
	pflags := forCommand.PersistentFlags()
	pflags.StringVarP(&g.ConfigFile, "config", "c", g.ConfigFile, "path to the YAML configuration file")
	pflags.StringVar(&g.PresetsFile, "presets", g.PresetsFile, "path to the HCL preset file (default from config)")
	pflags.StringVar(&g.LogLevel, "log-level", g.LogLevel, "override log_level (debug, info, warn, error)")
}

// Load reads the configuration, applies flag overrides and validates it.
func (g *globalOptions) Load() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(g.ConfigFile)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.PresetsFile != "" {
		cfg.PresetsFile = g.PresetsFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Presets loads the preset file named by cfg merged over the builtins.
func (g *globalOptions) Presets(cfg *config.Config) (*presets.File, error) {
	return presets.LoadOrBuiltin(cfg.PresetsFile)
}

func newOrchestrator(cfg *config.Config, logger *slog.Logger) (*orchestrator.Orchestrator, error) {
	orch := orchestrator.New(
		orchestrator.WithBasePath(cfg.Server.BasePath),
		orchestrator.WithDemo(cfg.Demo.Interval, cfg.Demo.FinalizeDelay, cfg.Demo.Phrases),
		orchestrator.WithThemes(cfg.Theme.Name, cfg.Theme.Variant),
		orchestrator.WithLogger(logger),
	)
	if err := orch.Err(); err != nil {
		return nil, err
	}
	return orch, nil
}
