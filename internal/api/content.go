package api

import (
	"net/http"

	"github.com/goliatone/go-asrdeploy/pkg/apispec"
	"github.com/goliatone/go-asrdeploy/pkg/orchestrator"
)

type contentAPI struct {
	orch *orchestrator.Orchestrator
	spec *apispec.Spec
}

func (a *contentAPI) guide(w http.ResponseWriter, r *http.Request) {
	catalog := a.orch.Catalog()
	if catalog == nil {
		writeError(w, http.StatusServiceUnavailable, "content catalog unavailable")
		return
	}
	writeJSON(w, http.StatusOK, catalog.Guide)
}

func (a *contentAPI) architecture(w http.ResponseWriter, r *http.Request) {
	catalog := a.orch.Catalog()
	if catalog == nil {
		writeError(w, http.StatusServiceUnavailable, "content catalog unavailable")
		return
	}
	writeJSON(w, http.StatusOK, catalog.Architecture)
}

func (a *contentAPI) document(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.spec.Raw())
}
