package asrdeploy

import (
	"io/fs"

	"github.com/goliatone/go-asrdeploy/pkg/renderers/text"
	vanilla "github.com/goliatone/go-asrdeploy/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedTextTemplates exposes the terminal templates.
func EmbeddedTextTemplates() fs.FS {
	return text.TemplatesFS()
}
