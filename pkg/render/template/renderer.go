package template

import (
	"io"

	gotemplatepkg "github.com/goliatone/go-template"
)

// TemplateRenderer follows the github.com/goliatone/go-template engine
// contract so renderers can swap engines without code changes.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

var _ TemplateRenderer = (*gotemplatepkg.Engine)(nil)
