package content

import (
	"embed"
	"io/fs"
)

//go:embed catalog/*.yaml
var embeddedCatalog embed.FS

// EmbeddedFS returns the bundled catalog files. Pass it to LoadFS or overlay
// it with a directory of the same layout.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedCatalog, "catalog")
	if err != nil {
		panic(err)
	}
	return sub
}
