package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carry per-request presentation settings that do not belong to
// the page data itself.
type RenderOptions struct {
	// Theme is the resolved theme selection. Nil renders with the stylesheet
	// defaults.
	Theme *theme.RendererConfig
	// AssetURLPrefix is prepended to bundled asset paths when Theme does not
	// supply an AssetURL resolver.
	AssetURLPrefix string
	// Standalone drops the surrounding layout and renders only the view body.
	Standalone bool
}

// AssetURL resolves name through the theme, falling back to the prefix.
func (o RenderOptions) AssetURL(name string) string {
	if o.Theme != nil && o.Theme.AssetURL != nil {
		if resolved := o.Theme.AssetURL(name); resolved != "" {
			return resolved
		}
	}
	prefix := o.AssetURLPrefix
	if prefix == "" {
		return name
	}
	if prefix[len(prefix)-1] != '/' {
		prefix += "/"
	}
	return prefix + name
}
