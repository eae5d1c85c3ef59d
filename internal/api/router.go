// Package api serves the HTML views, the script API and the demo transcript
// stream over HTTP.
package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/goliatone/go-asrdeploy/pkg/apispec"
	"github.com/goliatone/go-asrdeploy/pkg/orchestrator"
	"github.com/goliatone/go-asrdeploy/pkg/renderers/vanilla"
	"github.com/goliatone/go-asrdeploy/pkg/script"
)

// Deps are the collaborators the router dispatches to.
type Deps struct {
	Orchestrator *orchestrator.Orchestrator
	Spec         *apispec.Spec
	Stream       *DemoStream
	// Defaults seeds every request before query or body values apply.
	Defaults script.Config
	// BasePath is stripped from incoming paths and prefixed to redirects.
	BasePath string
	Logger   *slog.Logger
}

// NewRouter creates the HTTP router with all routes.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	defaults := deps.Defaults
	if defaults.Validate() != nil {
		defaults = script.Default()
	}
	basePath := strings.TrimRight(deps.BasePath, "/")

	mux := http.NewServeMux()

	pa := &pagesAPI{orch: deps.Orchestrator, defaults: defaults, basePath: basePath, logger: logger}
	sa := &scriptAPI{spec: deps.Spec, defaults: defaults, logger: logger}
	ca := &contentAPI{orch: deps.Orchestrator, spec: deps.Spec}

	// Script
	mux.HandleFunc("GET /api/v1/options", sa.options)
	mux.HandleFunc("GET /api/v1/script", sa.fromQuery)
	mux.HandleFunc("POST /api/v1/script", sa.fromBody)
	mux.HandleFunc("GET /api/v1/script/download", sa.download)

	// Content
	mux.HandleFunc("GET /api/v1/guide", ca.guide)
	mux.HandleFunc("GET /api/v1/architecture", ca.architecture)
	mux.HandleFunc("GET /api/v1/openapi.yaml", ca.document)

	// Demo stream
	if deps.Stream != nil {
		mux.HandleFunc("GET /api/v1/demo/ws", deps.Stream.HandleWS)
	}

	// Static assets and health
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(vanilla.AssetsFS())))
	mux.HandleFunc("GET /healthz", healthz(deps.Stream))

	// Views
	mux.HandleFunc("GET /{$}", pa.index)
	mux.HandleFunc("GET /{view}", pa.view)

	var handler http.Handler = mux

	if basePath != "" {
		inner := handler
		handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rest, ok := strings.CutPrefix(r.URL.Path, basePath)
			if ok && (rest == "" || strings.HasPrefix(rest, "/")) {
				if rest == "" {
					rest = "/"
				}
				r.URL.Path = rest
				r.URL.RawPath = strings.TrimPrefix(r.URL.RawPath, basePath)
			}
			inner.ServeHTTP(w, r)
		})
	}

	return withMiddleware(handler, logger)
}

func healthz(stream *DemoStream) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{"status": "ok"}
		if stream != nil {
			body["streams"] = stream.Active()
		}
		writeJSON(w, http.StatusOK, body)
	}
}
