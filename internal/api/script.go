package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-asrdeploy/pkg/apispec"
	"github.com/goliatone/go-asrdeploy/pkg/render"
	"github.com/goliatone/go-asrdeploy/pkg/script"
)

const maxBodyBytes = 64 << 10

type scriptAPI struct {
	spec     *apispec.Spec
	defaults script.Config
	logger   *slog.Logger
}

type optionsResponse struct {
	Modes     []string      `json:"modes"`
	Devices   []string      `json:"devices"`
	Models    []string      `json:"models"`
	Languages []string      `json:"languages"`
	Defaults  script.Config `json:"defaults"`
}

func (a *scriptAPI) options(w http.ResponseWriter, r *http.Request) {
	allowed := a.spec.Allowed()
	writeJSON(w, http.StatusOK, optionsResponse{
		Modes:     allowed.Modes,
		Devices:   allowed.Devices,
		Models:    allowed.Models,
		Languages: allowed.Languages,
		Defaults:  a.defaults,
	})
}

func (a *scriptAPI) fromQuery(w http.ResponseWriter, r *http.Request) {
	cfg, mapping := configFromQuery(r.URL.Query(), a.defaults)
	if !mapping.Empty() {
		writeMapping(w, http.StatusBadRequest, mapping)
		return
	}
	writeJSON(w, http.StatusOK, script.Render(cfg))
}

func (a *scriptAPI) fromBody(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	cfg, err := a.spec.DecodeConfig(data, a.defaults)
	if err != nil {
		var verr *apispec.ValidationError
		if errors.As(err, &verr) {
			writeMapping(w, http.StatusBadRequest, render.MapErrorPayload(verr.Fields))
			return
		}
		if errors.Is(err, apispec.ErrInvalidConfig) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeMapping(w, http.StatusBadRequest, render.MapConfigError(err))
		return
	}

	a.logger.Debug("composed script", "config", cfg.String())
	writeJSON(w, http.StatusOK, script.Render(cfg))
}

func (a *scriptAPI) download(w http.ResponseWriter, r *http.Request) {
	cfg, mapping := configFromQuery(r.URL.Query(), a.defaults)
	if !mapping.Empty() {
		writeMapping(w, http.StatusBadRequest, mapping)
		return
	}
	doc := script.Render(cfg)
	w.Header().Set("Content-Type", "text/x-python; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, doc.Body)
}
