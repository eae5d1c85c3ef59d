package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-asrdeploy/pkg/content"
	"github.com/goliatone/go-asrdeploy/pkg/demo"
	"github.com/goliatone/go-asrdeploy/pkg/render"
	"github.com/goliatone/go-asrdeploy/pkg/renderers/text"
	"github.com/goliatone/go-asrdeploy/pkg/renderers/vanilla"
	"github.com/goliatone/go-asrdeploy/pkg/script"
	"github.com/goliatone/go-asrdeploy/pkg/view"
)

const (
	defaultRendererName = "vanilla"
	defaultStreamPath   = "/api/v1/demo/ws"
	defaultFooter       = "Qwen3-ASR Deployer. Designed for Android Termux Environments."
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request names none
// and carries no Accept header.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithCatalog replaces the embedded guide, architecture and generator copy.
func WithCatalog(catalog *content.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = catalog
	}
}

// WithAllowed narrows the choices offered by the generator form.
func WithAllowed(allowed view.Allowed) Option {
	return func(o *Orchestrator) {
		o.allowed = allowed
	}
}

// WithBasePath mounts navigation links and API endpoints under prefix.
func WithBasePath(prefix string) Option {
	return func(o *Orchestrator) {
		o.basePath = normalizeBasePath(prefix)
	}
}

// WithDemo configures the transcript simulation shown by the prototype view.
func WithDemo(interval, finalizeDelay time.Duration, phrases []string) Option {
	return func(o *Orchestrator) {
		if interval > 0 {
			o.demoInterval = interval
		}
		if finalizeDelay > 0 {
			o.demoFinalize = finalizeDelay
		}
		if len(phrases) > 0 {
			o.demoPhrases = append([]string(nil), phrases...)
		}
	}
}

// WithStreamPath overrides the websocket path the prototype connects to.
// Pass an empty string to keep the prototype on its local timer.
func WithStreamPath(path string) Option {
	return func(o *Orchestrator) {
		o.streamPath = path
		o.streamPathSet = true
	}
}

// WithThemeSelector resolves theme/variant choices ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemes registers manifests and selects defaultTheme/defaultVariant when a
// request names none.
func WithThemes(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) Option {
	return func(o *Orchestrator) {
		o.themeManifests = append(o.themeManifests, manifests...)
		o.themeName = defaultTheme
		o.themeVariant = defaultVariant
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator turns a Request into rendered output. It applies sensible
// defaults (vanilla and text renderers, embedded content, the slate theme)
// while remaining open to dependency injection.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	catalog         *content.Catalog
	allowed         view.Allowed
	basePath        string
	streamPath      string
	streamPathSet   bool
	demoInterval    time.Duration
	demoFinalize    time.Duration
	demoPhrases     []string
	themeSelector   theme.ThemeSelector
	themeManifests  []*theme.Manifest
	themeName       string
	themeVariant    string
	logger          *slog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		demoInterval:    demo.DefaultInterval,
		demoFinalize:    demo.DefaultFinalizeDelay,
		demoPhrases:     demo.DefaultPhrases(),
		logger:          slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one page to render.
type Request struct {
	// View selects the tab. Empty means the generator.
	View view.Name
	// Config drives the generator view. An invalid config renders the
	// defaults and reports the problem as a field error.
	Config script.Config
	// Errors surfaces feedback produced before rendering, such as query
	// parsing failures.
	Errors render.ErrorMapping

	// Renderer names the renderer to use. When empty the Accept header is
	// negotiated, then the default renderer is used.
	Renderer string
	Accept   string

	ThemeName    string
	ThemeVariant string

	RenderOptions render.RenderOptions
}

// Generate renders the requested view and returns the bytes together with the
// content type of the renderer that produced them.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, string, error) {
	if ctx == nil {
		return nil, "", errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if err := o.initialiseErr; err != nil {
		return nil, "", err
	}

	page, err := o.Page(req)
	if err != nil {
		return nil, "", err
	}

	renderer, err := o.RendererFor(req.Renderer, req.Accept)
	if err != nil {
		return nil, "", err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		cfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, "", err
		}
		opts.Theme = cfg
	}

	output, err := renderer.Render(ctx, page, opts)
	if err != nil {
		return nil, "", fmt.Errorf("orchestrator: render %s view: %w", page.View, err)
	}
	o.logger.Debug("rendered view",
		slog.String("view", string(page.View)),
		slog.String("renderer", renderer.Name()),
		slog.Int("bytes", len(output)),
	)
	return output, renderer.ContentType(), nil
}

// RendererFor resolves a renderer by explicit name, then by Accept header,
// then by the configured default.
func (o *Orchestrator) RendererFor(name, accept string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	if name != "" {
		renderer, err := o.registry.Get(name)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
		return renderer, nil
	}
	if accept != "" {
		if renderer, err := o.registry.Negotiate(accept); err == nil {
			return renderer, nil
		}
	}
	if o.defaultRenderer != "" {
		if renderer, err := o.registry.Get(o.defaultRenderer); err == nil {
			return renderer, nil
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

// Err reports a failure while initialising the default collaborators.
func (o *Orchestrator) Err() error {
	return o.initialiseErr
}

// Catalog exposes the content catalog in use.
func (o *Orchestrator) Catalog() *content.Catalog {
	return o.catalog
}

func (o *Orchestrator) applyDefaults() {
	if o.catalog == nil {
		catalog, err := content.LoadFS(content.EmbeddedFS())
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load content: %w", err)
			return
		}
		o.catalog = catalog
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		html, err := vanilla.New(vanilla.WithAssetURLPrefix(o.basePath + "/assets"))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(html)
		plain, err := text.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: text renderer: %w", err)
			return
		}
		o.registry.MustRegister(plain)
	}
	if !o.streamPathSet {
		o.streamPath = o.basePath + defaultStreamPath
	}
	if o.themeSelector == nil {
		if len(o.themeManifests) == 0 {
			o.themeManifests = []*theme.Manifest{DefaultThemeManifest()}
		}
		if o.themeName == "" {
			o.themeName = DefaultThemeName
			o.themeVariant = DefaultThemeVariant
		}
		selector, err := newManifestSelector(o.themeName, o.themeVariant, o.themeManifests...)
		if err != nil {
			o.initialiseErr = err
			return
		}
		o.themeSelector = selector
	}
}
