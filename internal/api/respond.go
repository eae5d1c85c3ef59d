package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-asrdeploy/pkg/render"
	"github.com/goliatone/go-asrdeploy/pkg/script"
)

type errorBody struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeMapping reports field errors with a summary message.
func writeMapping(w http.ResponseWriter, status int, mapping render.ErrorMapping) {
	body := errorBody{Fields: mapping.Fields}
	parts := append([]string(nil), mapping.Form...)
	keys := make([]string, 0, len(mapping.Fields))
	for key := range mapping.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		parts = append(parts, key+": "+strings.Join(mapping.Fields[key], "; "))
	}
	body.Error = "invalid configuration"
	if len(parts) > 0 {
		body.Error += ": " + strings.Join(parts, ", ")
	}
	writeJSON(w, status, body)
}

// configFromQuery applies the mode, device, model and language parameters
// over base. Each parameter is parsed on its own so every bad value is
// reported; the returned config keeps base for those fields.
func configFromQuery(q url.Values, base script.Config) (script.Config, render.ErrorMapping) {
	cfg := base
	var mapping render.ErrorMapping

	params := []struct {
		key   string
		apply func(string) script.Fields
	}{
		{render.FieldMode, func(v string) script.Fields { return script.Fields{Mode: v} }},
		{render.FieldDevice, func(v string) script.Fields { return script.Fields{Device: v} }},
		{render.FieldModel, func(v string) script.Fields { return script.Fields{Model: v} }},
		{render.FieldLanguage, func(v string) script.Fields { return script.Fields{Language: v} }},
	}
	for _, p := range params {
		raw := q.Get(p.key)
		if strings.TrimSpace(raw) == "" {
			continue
		}
		next, err := p.apply(raw).Apply(cfg)
		if err != nil {
			if mapping.Fields == nil {
				mapping.Fields = make(map[string][]string)
			}
			mapping.Fields[p.key] = append(mapping.Fields[p.key], err.Error())
			continue
		}
		cfg = next
	}
	return cfg, mapping
}
