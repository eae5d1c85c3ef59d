// Package asrdeploy generates Python deployment scripts for the Qwen3-ASR
// speech recognition models and renders the configurator views around them.
//
// Most callers only need Compose. The HTML and text views, the HTTP API and
// the interactive configurator live in the pkg and internal packages.
package asrdeploy

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-asrdeploy/pkg/orchestrator"
	"github.com/goliatone/go-asrdeploy/pkg/render"
	"github.com/goliatone/go-asrdeploy/pkg/script"
	"github.com/goliatone/go-asrdeploy/pkg/view"
)

// Config is the option set a script is composed from.
type Config = script.Config

// Document is a composed script plus its display label.
type Document = script.Document

// RenderOptions describes per-request overrides that renderers can use.
type RenderOptions = render.RenderOptions

// DefaultConfig returns the configuration the UI starts with.
func DefaultConfig() Config {
	return script.Default()
}

// Compose renders the deployment script for cfg.
func Compose(cfg Config) string {
	return script.Compose(cfg)
}

// ComposeDocument renders cfg together with its suggested filename.
func ComposeDocument(cfg Config) Document {
	return script.Render(cfg)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders one view as a standalone HTML page. cfg drives the
// generator view and is ignored by the others.
func GenerateHTML(ctx context.Context, name view.Name, cfg Config, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	out, _, err := gen.Generate(ctx, orchestrator.Request{
		View:     name,
		Config:   cfg,
		Renderer: "vanilla",
	})
	return out, err
}

// GenerateText renders one view for a terminal.
func GenerateText(ctx context.Context, name view.Name, cfg Config, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	out, _, err := gen.Generate(ctx, orchestrator.Request{
		View:     name,
		Config:   cfg,
		Renderer: "text",
	})
	return out, err
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemes registers additional manifests and the default selection.
func WithThemes(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) orchestrator.Option {
	return orchestrator.WithThemes(defaultTheme, defaultVariant, manifests...)
}
