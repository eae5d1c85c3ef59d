package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-asrdeploy/pkg/orchestrator"
	"github.com/goliatone/go-asrdeploy/pkg/render"
	"github.com/goliatone/go-asrdeploy/pkg/script"
	"github.com/goliatone/go-asrdeploy/pkg/view"
)

type pagesAPI struct {
	orch     *orchestrator.Orchestrator
	defaults script.Config
	basePath string
	logger   *slog.Logger
}

func (a *pagesAPI) index(w http.ResponseWriter, r *http.Request) {
	target := view.Generator.Path(a.basePath)
	if raw := r.URL.RawQuery; raw != "" {
		target += "?" + raw
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// view renders one tab. The generator reads its configuration from the
// query string; bad values re-render the form with field errors.
func (a *pagesAPI) view(w http.ResponseWriter, r *http.Request) {
	name, err := view.Parse(r.PathValue("view"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	req := orchestrator.Request{
		View:         name,
		Config:       a.defaults,
		Renderer:     q.Get("format"),
		Accept:       r.Header.Get("Accept"),
		ThemeName:    q.Get("theme"),
		ThemeVariant: q.Get("variant"),
	}
	if name == view.Generator {
		req.Config, req.Errors = configFromQuery(q, a.defaults)
	}

	body, contentType, err := a.orch.Generate(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, render.ErrRendererNotFound) || errors.Is(err, orchestrator.ErrThemeNotFound) {
			status = http.StatusBadRequest
		}
		if status == http.StatusInternalServerError {
			a.logger.Error("render view failed", "view", name, "error", err)
		}
		http.Error(w, err.Error(), status)
		return
	}

	status := http.StatusOK
	if !req.Errors.Empty() {
		status = http.StatusBadRequest
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
