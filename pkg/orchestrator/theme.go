package orchestrator

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

const (
	DefaultThemeName    = "slate"
	DefaultThemeVariant = "dark"
)

var ErrThemeNotFound = errors.New("orchestrator: theme not found")

// DefaultThemeManifest is the bundled slate theme. Tokens become CSS custom
// properties named after the token key.
func DefaultThemeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-bg":              "#f8fafc",
			"color-surface":         "#ffffff",
			"color-border":          "#e2e8f0",
			"color-text":            "#0f172a",
			"color-muted":           "#64748b",
			"color-accent":          "#4f46e5",
			"color-accent-contrast": "#ffffff",
			"color-code-bg":         "#0f172a",
			"color-code-text":       "#e2e8f0",
		},
		Templates: map[string]string{
			"vanilla.page": "templates/page.tmpl",
			"text.page":    "templates/page.tmpl",
		},
		Variants: map[string]theme.Variant{
			"light": {},
			"dark": {
				Tokens: map[string]string{
					"color-bg":      "#020617",
					"color-surface": "#0f172a",
					"color-border":  "#1e293b",
					"color-text":    "#e2e8f0",
					"color-muted":   "#94a3b8",
					"color-accent":  "#818cf8",
					"color-code-bg": "#020617",
				},
			},
		},
	}
}

// manifestSelector picks manifests registered in memory. Every manifest is
// validated through a go-theme registry before it is accepted.
type manifestSelector struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*manifestSelector)(nil)

func newManifestSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*manifestSelector, error) {
	registry := theme.NewRegistry()
	selector := &manifestSelector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   defaultTheme,
		defaultVariant: defaultVariant,
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("orchestrator: register theme %q: %w", manifest.Name, err)
		}
		selector.manifests[manifest.Name] = manifest
	}
	if _, ok := selector.manifests[defaultTheme]; !ok {
		return nil, fmt.Errorf("%w: default %q", ErrThemeNotFound, defaultTheme)
	}
	return selector, nil
}

// Select resolves name and variant, falling back to the defaults for empty
// values. Unknown variants are an error; an empty variant resolves to the
// default variant when the theme declares it.
func (s *manifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}

	variant = strings.TrimSpace(variant)
	if variant == "" {
		if _, declared := manifest.Variants[s.defaultVariant]; declared {
			variant = s.defaultVariant
		}
	}
	if variant != "" {
		if _, declared := manifest.Variants[variant]; !declared {
			return nil, fmt.Errorf("%w: variant %q of %q", ErrThemeNotFound, variant, name)
		}
	}

	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

func (o *Orchestrator) resolveTheme(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return rendererConfig(selection), nil
}

// rendererConfig flattens a selection into renderer settings: variant tokens,
// templates and asset files override the base manifest.
func rendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}
	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}

	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	files := mergeStrings(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStrings(tokens, variant.Tokens)
		partials = mergeStrings(partials, variant.Templates)
		files = mergeStrings(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cfg.Tokens = tokens
	cfg.Partials = partials
	if len(tokens) > 0 {
		cfg.CSSVars = make(map[string]string, len(tokens))
		for key, value := range tokens {
			cfg.CSSVars["--"+key] = value
		}
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" || strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
			return file
		}
		return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
	return cfg
}

func mergeStrings(base, overlay map[string]string) map[string]string {
	if len(base) == 0 && len(overlay) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(overlay))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overlay {
		out[key] = value
	}
	return out
}
