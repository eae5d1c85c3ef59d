// Package text renders pages as plain text for terminals and pipes.
package text

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-asrdeploy/pkg/render"
	rendertemplate "github.com/goliatone/go-asrdeploy/pkg/render/template"
	gotemplate "github.com/goliatone/go-asrdeploy/pkg/render/template/gotemplate"
	"github.com/goliatone/go-asrdeploy/pkg/view"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation. Its
// output is used as-is.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithName("text"),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithPostHooks(trimOutput),
		)
		if err != nil {
			return nil, fmt.Errorf("text renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "text"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render ignores theme options; Standalone drops the header and footer.
func (r *Renderer) Render(ctx context.Context, page view.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("text renderer: template renderer is nil")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if _, err := view.Parse(string(page.View)); err != nil {
		return nil, fmt.Errorf("text renderer: %w", err)
	}

	name := "templates/page.tmpl"
	if options.Standalone {
		name = "templates/" + string(page.View) + ".tmpl"
	}
	result, err := r.templates.RenderTemplate(name, map[string]any{"page": page})
	if err != nil {
		return nil, fmt.Errorf("text renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// trimOutput strips surrounding whitespace and ends the output with one
// newline. Inner blank lines are left alone.
func trimOutput(hctx *gotemplatepkg.HookContext) (string, error) {
	return strings.TrimSpace(hctx.Output) + "\n", nil
}
