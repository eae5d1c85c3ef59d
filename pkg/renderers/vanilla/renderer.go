package vanilla

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-asrdeploy/pkg/render"
	rendertemplate "github.com/goliatone/go-asrdeploy/pkg/render/template"
	gotemplate "github.com/goliatone/go-asrdeploy/pkg/render/template/gotemplate"
	"github.com/goliatone/go-asrdeploy/pkg/view"
)

const (
	layoutTemplate = "templates/page.tmpl"
	viewTemplate   = "templates/%s.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	assetURLPrefix   string
	inlineAssets     bool
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

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithAssetURLPrefix prefixes the stylesheet and script URLs (e.g. "/assets").
func WithAssetURLPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.assetURLPrefix = strings.TrimSpace(prefix)
	}
}

// WithInlineAssets embeds the stylesheet and script into the page so the
// output works as a single offline file.
func WithInlineAssets() Option {
	return func(cfg *config) {
		cfg.inlineAssets = true
	}
}

// Renderer draws pages as HTML documents enhanced by a small vanilla JS
// runtime (live script preview, copy buttons, transcript stream).
type Renderer struct {
	templates      rendertemplate.TemplateRenderer
	assetURLPrefix string
	inlineAssets   bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithName("vanilla"),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:      renderer,
		assetURLPrefix: cfg.assetURLPrefix,
		inlineAssets:   cfg.inlineAssets,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page view.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if _, err := view.Parse(string(page.View)); err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}

	if options.AssetURLPrefix == "" {
		options.AssetURLPrefix = r.assetURLPrefix
	}

	data := map[string]any{
		"page":   page,
		"theme":  buildThemeContext(options.Theme),
		"assets": r.assetContext(options),
	}

	name := layoutTemplate
	if options.Standalone {
		name = fmt.Sprintf(viewTemplate, page.View)
	}
	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type assetContext struct {
	Stylesheet   string `json:"stylesheet,omitempty"`
	Script       string `json:"script,omitempty"`
	InlineStyles string `json:"inline_styles,omitempty"`
	InlineScript string `json:"inline_script,omitempty"`
}

func (r *Renderer) assetContext(options render.RenderOptions) assetContext {
	if r.inlineAssets {
		return assetContext{
			InlineStyles: inlineAsset(StylesheetName),
			InlineScript: inlineAsset(ScriptName),
		}
	}

	assets := assetContext{
		Stylesheet: options.AssetURL(StylesheetName),
		Script:     options.AssetURL(ScriptName),
	}
	// Themes may ship their own bundles under well-known keys.
	if options.Theme != nil && options.Theme.AssetURL != nil {
		if url := options.Theme.AssetURL(themeAssetStylesheet); url != "" {
			assets.Stylesheet = url
		}
		if url := options.Theme.AssetURL(themeAssetScript); url != "" {
			assets.Script = url
		}
	}
	return assets
}

type rendererTheme struct {
	Name         string            `json:"name,omitempty"`
	Variant      string            `json:"variant,omitempty"`
	Tokens       map[string]string `json:"tokens,omitempty"`
	CSSVars      map[string]string `json:"css_vars,omitempty"`
	CSSVarsStyle string            `json:"css_vars_style,omitempty"`
	JSON         string            `json:"json,omitempty"`
}

func buildThemeContext(cfg *theme.RendererConfig) rendererTheme {
	if cfg == nil {
		return rendererTheme{}
	}
	ctx := rendererTheme{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Tokens:  copyStringMap(cfg.Tokens),
		CSSVars: copyStringMap(cfg.CSSVars),
	}
	ctx.CSSVarsStyle = cssVarsStyle(ctx.CSSVars)
	ctx.JSON = themeJSON(ctx)
	return ctx
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func themeJSON(cfg rendererTheme) string {
	payload := struct {
		Name    string            `json:"name,omitempty"`
		Variant string            `json:"variant,omitempty"`
		Tokens  map[string]string `json:"tokens,omitempty"`
	}{
		Name:    cfg.Name,
		Variant: cfg.Variant,
		Tokens:  cfg.Tokens,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return string(data)
}
