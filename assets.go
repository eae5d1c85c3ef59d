package asrdeploy

import (
	"io/fs"

	vanilla "github.com/goliatone/go-asrdeploy/pkg/renderers/vanilla"
)

// AssetsFS exposes the stylesheet and browser script the HTML views link to,
// so Go applications can serve them next to their own routes.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(asrdeploy.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
