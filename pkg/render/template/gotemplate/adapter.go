package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-asrdeploy/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	name       string
	baseDir    string
	templates  fs.FS
	extension  string
	globalData map[string]any
	preHooks   []gotemplatepkg.PreHook
	postHooks  []gotemplatepkg.PostHook
}

// WithName labels the underlying template set, which shows up in pongo2 errors.
func WithName(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}

// WithBaseDir loads templates from a directory on disk. When combined with
// WithFS the directory wins, which lets callers override bundled templates.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the template extension appended to bare names.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithGlobalData seeds values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// WithPreHooks runs hooks before each render. A pre hook may swap the data or
// the template name (or inline content) about to be executed.
func WithPreHooks(hooks ...gotemplatepkg.PreHook) Option {
	return func(cfg *config) {
		for _, hook := range hooks {
			if hook != nil {
				cfg.preHooks = append(cfg.preHooks, hook)
			}
		}
	}
}

// WithPostHooks runs hooks on the rendered output, in registration order,
// before it is returned or written.
func WithPostHooks(hooks ...gotemplatepkg.PostHook) Option {
	return func(cfg *config) {
		for _, hook := range hooks {
			if hook != nil {
				cfg.postHooks = append(cfg.postHooks, hook)
			}
		}
	}
}

// Engine is a pongo2 backed template.TemplateRenderer.
type Engine struct {
	mu sync.RWMutex

	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	extension string
	hooks     *gotemplatepkg.HookManager
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. At least one of WithBaseDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{
		name:      "asrdeploy",
		extension: ".tmpl",
	}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	engine := &Engine{
		set:       pongo2.NewSet(cfg.name, loaders...),
		templates: make(map[string]*pongo2.Template),
		extension: cfg.extension,
		hooks:     gotemplatepkg.NewHooksManager(),
	}
	for _, hook := range cfg.preHooks {
		engine.hooks.AddPreHook(hook)
	}
	for _, hook := range cfg.postHooks {
		engine.hooks.AddPostHook(hook)
	}
	registerDefaultFilters()

	if err := engine.GlobalContext(cfg.globalData); err != nil {
		return nil, fmt.Errorf("gotemplate: apply global data: %w", err)
	}
	return engine, nil
}

// Render treats name as inline template content when it contains template
// tags and as a template path otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate executes the named template, appending the configured
// extension when name lacks it.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}

	meta := map[string]any{"ext": e.extension}
	hctx := &gotemplatepkg.HookContext{TemplateName: name, Data: data, Metadata: meta, IsPreHook: true}
	if err := e.runPreHooks(hctx); err != nil {
		return "", err
	}

	path := hctx.TemplateName
	if !strings.HasSuffix(path, e.extension) {
		path += e.extension
	}

	tmpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}
	rendered, err := e.execute(tmpl, fmt.Sprintf("template %q", path), hctx.Data)
	if err != nil {
		return "", err
	}
	return e.finish(hctx, rendered, out)
}

// RenderString compiles and executes templateContent.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}

	hctx := &gotemplatepkg.HookContext{Template: templateContent, Data: data, Metadata: map[string]any{}, IsPreHook: true}
	if err := e.runPreHooks(hctx); err != nil {
		return "", err
	}

	tmpl, err := e.set.FromString(hctx.Template)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse template string: %w", err)
	}
	rendered, err := e.execute(tmpl, "template string", hctx.Data)
	if err != nil {
		return "", err
	}
	return e.finish(hctx, rendered, out)
}

// RegisterPreHook adds a hook run before every render. Lower priorities run
// first.
func (e *Engine) RegisterPreHook(hook gotemplatepkg.PreHook, priority ...int) {
	if e == nil || e.hooks == nil || hook == nil {
		return
	}
	e.hooks.AddPreHook(hook, priority...)
}

// RegisterPostHook adds a hook run on every rendered output. Lower priorities
// run first.
func (e *Engine) RegisterPostHook(hook gotemplatepkg.PostHook, priority ...int) {
	if e == nil || e.hooks == nil || hook == nil {
		return
	}
	e.hooks.AddPostHook(hook, priority...)
}

func (e *Engine) runPreHooks(hctx *gotemplatepkg.HookContext) error {
	for _, hook := range e.hooks.PreHooks() {
		if err := hook(hctx); err != nil {
			return fmt.Errorf("gotemplate: pre hook: %w", err)
		}
	}
	hctx.IsPreHook = false
	return nil
}

// finish runs the post hooks over rendered and copies the result to out.
func (e *Engine) finish(hctx *gotemplatepkg.HookContext, rendered string, out []io.Writer) (string, error) {
	hctx.Output = rendered
	for _, hook := range e.hooks.PostHooks() {
		result, err := hook(hctx)
		if err != nil {
			return "", fmt.Errorf("gotemplate: post hook: %w", err)
		}
		hctx.Output = result
	}

	for _, w := range out {
		if _, err := io.WriteString(w, hctx.Output); err != nil {
			return "", err
		}
	}
	return hctx.Output, nil
}

// RegisterFilter registers a pongo2 filter. Filters are process wide, so
// registering an existing name fails.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}

	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values every template sees.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if data == nil {
		return nil
	}

	ctx, err := toContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.set.Globals == nil {
		e.set.Globals = make(pongo2.Context)
	}
	e.set.Globals.Update(ctx)
	return nil
}

func (e *Engine) execute(tmpl *pongo2.Template, label string, data any) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}
	return buf.String(), nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

// toContext flattens data into JSON shaped maps so templates address fields
// by their json tags.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return normalizeMap(map[string]any(v))
	case map[string]any:
		return normalizeMap(v)
	}

	decoded := map[string]any{}
	if err := roundTrip(data, &decoded); err != nil {
		return nil, err
	}
	return pongo2.Context(decoded), nil
}

func normalizeMap(in map[string]any) (pongo2.Context, error) {
	out := make(pongo2.Context, len(in))
	for key, value := range in {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if value == nil {
			out[key] = nil
			continue
		}
		var decoded any
		if err := roundTrip(value, &decoded); err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		out[key] = decoded
	}
	return out, nil
}

// roundTrip decodes numbers as json.Number so integers print without the
// float formatting pongo2 applies to float64 values.
func roundTrip(value any, out any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(out)
}
