package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-asrdeploy/pkg/script"
	"github.com/goliatone/go-asrdeploy/pkg/session"
)

// Configurator walks the user through every script option with terminal
// prompts. Each answer replaces the holder's configuration, so subscribers
// observe one complete Config per step.
type Configurator struct {
	driver       PromptDriver
	out          io.Writer
	outputFormat OutputFormat
	gpuWarning   string
	theme        Theme
	logger       *slog.Logger
}

// New constructs a Configurator with defaults (survey driver, script output).
func New(options ...Option) *Configurator {
	c := &Configurator{
		outputFormat: OutputFormatScript,
		logger:       slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.driver == nil {
		c.driver = newSurveyDriver(c.out)
	}
	return c
}

// Name reports the configurator identifier.
func (c *Configurator) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (c *Configurator) ContentType() string {
	switch c.outputFormat {
	case OutputFormatJSON:
		return "application/json"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "text/x-python; charset=utf-8"
	}
}

type selectStep struct {
	name    string
	message string
	help    string
	labels  []string
	current func(script.Config) int
	apply   func(script.Config, int) script.Config
}

// Run prompts for mode, device, model and language, starting from the
// holder's current values, and returns the final configuration.
func (c *Configurator) Run(ctx context.Context, holder *session.Holder) (script.Config, error) {
	if ctx == nil {
		return script.Config{}, errors.New("tui: context is required")
	}
	if holder == nil {
		return script.Config{}, errors.New("tui: session holder is nil")
	}
	if c.driver == nil {
		return script.Config{}, errors.New("tui: prompt driver is nil")
	}

	if err := c.runSelect(ctx, holder, modeStep()); err != nil {
		return holder.Current(), err
	}
	if err := c.promptDevice(ctx, holder); err != nil {
		return holder.Current(), err
	}
	if err := c.runSelect(ctx, holder, modelStep()); err != nil {
		return holder.Current(), err
	}
	if err := c.runSelect(ctx, holder, languageStep()); err != nil {
		return holder.Current(), err
	}
	return holder.Current(), nil
}

// Render runs the prompts and serializes the resulting configuration.
func (c *Configurator) Render(ctx context.Context, holder *session.Holder) ([]byte, error) {
	cfg, err := c.Run(ctx, holder)
	if err != nil {
		return nil, err
	}
	return c.serialize(script.Render(cfg))
}

func (c *Configurator) runSelect(ctx context.Context, holder *session.Holder, step selectStep) error {
	idx, err := c.driver.Select(ctx, SelectConfig{
		Message:      step.message,
		Options:      step.labels,
		DefaultIndex: step.current(holder.Current()),
		Help:         step.help,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(step.labels) {
		return fmt.Errorf("%w: %s", ErrNoSelection, step.name)
	}

	next, err := holder.Update(func(cfg script.Config) script.Config {
		return step.apply(cfg, idx)
	})
	if err != nil {
		return fmt.Errorf("tui: apply %s: %w", step.name, err)
	}
	c.logger.Debug("tui step applied", "step", step.name, "config", next.String())
	return nil
}

func (c *Configurator) promptDevice(ctx context.Context, holder *session.Holder) error {
	accelerate, err := c.driver.Confirm(ctx, ConfirmConfig{
		Message: "Use GPU acceleration (CUDA)?",
		Default: holder.Current().UseAcceleration,
		Help:    "CPU is the safe choice on Termux; GPU needs a CUDA capable build.",
	})
	if err != nil {
		return err
	}

	next, err := holder.Update(func(cfg script.Config) script.Config {
		return cfg.WithAcceleration(accelerate)
	})
	if err != nil {
		return fmt.Errorf("tui: apply device: %w", err)
	}
	c.logger.Debug("tui step applied", "step", "device", "config", next.String())

	if accelerate && strings.TrimSpace(c.gpuWarning) != "" {
		return c.driver.Info(ctx, c.theme.InfoPrefix+c.gpuWarning)
	}
	return nil
}

func modeStep() selectStep {
	modes := script.Modes()
	return selectStep{
		name:    "mode",
		message: "Execution mode",
		help:    "File input transcribes one recording; real-time loops over the microphone.",
		labels:  labelsOf(modes, script.Mode.Label),
		current: func(cfg script.Config) int { return position(modes, cfg.Mode) },
		apply:   func(cfg script.Config, idx int) script.Config { return cfg.WithMode(modes[idx]) },
	}
}

func modelStep() selectStep {
	variants := script.ModelVariants()
	return selectStep{
		name:    "model",
		message: "Model",
		labels:  labelsOf(variants, script.ModelVariant.Label),
		current: func(cfg script.Config) int { return position(variants, cfg.ModelVariant) },
		apply: func(cfg script.Config, idx int) script.Config {
			return cfg.WithModelVariant(variants[idx])
		},
	}
}

func languageStep() selectStep {
	languages := script.Languages()
	return selectStep{
		name:    "language",
		message: "Target language",
		labels:  labelsOf(languages, script.Language.Label),
		current: func(cfg script.Config) int { return position(languages, cfg.TargetLanguage) },
		apply: func(cfg script.Config, idx int) script.Config {
			return cfg.WithLanguage(languages[idx])
		},
	}
}

func labelsOf[T any](values []T, label func(T) string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = label(v)
	}
	return out
}

func position[T comparable](values []T, target T) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return 0
}

func (c *Configurator) serialize(doc script.Document) ([]byte, error) {
	switch c.outputFormat {
	case OutputFormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode document: %w", err)
		}
		return append(data, '\n'), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(doc)), nil
	default:
		return []byte(doc.Body), nil
	}
}

func prettyPrint(doc script.Document) string {
	cfg := doc.Config
	device := "CPU"
	if cfg.UseAcceleration {
		device = "GPU"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n", doc.Filename)
	fmt.Fprintf(&b, "Mode: %s\n", cfg.Mode.Label())
	fmt.Fprintf(&b, "Device: %s (%s)\n", device, cfg.Device())
	fmt.Fprintf(&b, "Model: %s\n", script.ModelID(cfg.ModelVariant))
	fmt.Fprintf(&b, "Language: %s\n", cfg.TargetLanguage.Label())
	return b.String()
}
