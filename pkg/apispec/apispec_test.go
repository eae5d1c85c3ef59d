package apispec_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-asrdeploy/pkg/apispec"
	"github.com/goliatone/go-asrdeploy/pkg/script"
	"github.com/goliatone/go-asrdeploy/pkg/view"
)

func mustLoad(t *testing.T) *apispec.Spec {
	t.Helper()
	spec, err := apispec.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return spec
}

func TestLoad_Metadata(t *testing.T) {
	spec := mustLoad(t)
	if spec.Title() != "Qwen3-ASR Deployer API" {
		t.Fatalf("unexpected title %q", spec.Title())
	}
	if spec.Version() == "" {
		t.Fatalf("expected a version")
	}
	if len(spec.Raw()) == 0 {
		t.Fatalf("expected raw document bytes")
	}
}

func TestAllowed_MatchesDeclaredOptions(t *testing.T) {
	want := view.Allowed{
		Modes:     []string{"file", "realtime"},
		Devices:   []string{"cpu", "gpu"},
		Models:    []string{"0.6B", "Chat"},
		Languages: []string{"zho", "auto"},
	}
	if diff := cmp.Diff(want, mustLoad(t).Allowed()); diff != "" {
		t.Fatalf("allowed mismatch (-want +got):\n%s", diff)
	}
}

func TestOperations(t *testing.T) {
	ops := mustLoad(t).Operations()

	ids := make(map[string]apispec.Operation, len(ops))
	for _, op := range ops {
		ids[op.ID] = op
	}
	for _, id := range []string{"listOptions", "composeScriptFromQuery", "composeScript", "downloadScript", "getGuide", "getArchitecture", "streamDemoTranscript"} {
		if _, ok := ids[id]; !ok {
			t.Fatalf("missing operation %q in %+v", id, ops)
		}
	}
	if op := ids["composeScript"]; op.Method != "POST" || op.Path != "/script" {
		t.Fatalf("unexpected composeScript operation %+v", op)
	}
	for i := 1; i < len(ops); i++ {
		if ops[i-1].Path > ops[i].Path {
			t.Fatalf("operations not sorted by path: %+v", ops)
		}
	}
}

func TestDecodeConfig(t *testing.T) {
	spec := mustLoad(t)

	cfg, err := spec.DecodeConfig([]byte(`{"mode":"realtime","useGpu":true,"modelSize":"Chat","language":"auto"}`), script.Default())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := script.Config{Mode: script.ModeRealtime, UseAcceleration: true, ModelVariant: script.ModelChat, TargetLanguage: script.LanguageAuto}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	partial, err := spec.DecodeConfig([]byte(`{"useGpu":true}`), script.Default())
	if err != nil {
		t.Fatalf("decode partial: %v", err)
	}
	if diff := cmp.Diff(script.Default().WithAcceleration(true), partial); diff != "" {
		t.Fatalf("partial mismatch (-want +got):\n%s", diff)
	}

	empty, err := spec.DecodeConfig(nil, script.Default())
	if err != nil || empty != script.Default() {
		t.Fatalf("expected defaults for empty body, got %+v (%v)", empty, err)
	}
}

func TestDecodeConfig_Rejects(t *testing.T) {
	spec := mustLoad(t)
	base := script.Default()

	cases := map[string]string{
		"bad json":      `{"mode":`,
		"unknown mode":  `{"mode":"batch"}`,
		"wrong type":    `{"useGpu":"yes"}`,
		"unknown field": `{"device":"cpu"}`,
		"bad language":  `{"language":"fr"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := spec.DecodeConfig([]byte(body), base)
			if !errors.Is(err, apispec.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if cfg != base {
				t.Fatalf("expected base config on failure, got %+v", cfg)
			}
		})
	}
}

func TestValidateConfig_ReportsPointers(t *testing.T) {
	err := mustLoad(t).ValidateConfig(map[string]any{"mode": "batch", "modelSize": "7B"})

	var validation *apispec.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %T %v", err, err)
	}
	for _, pointer := range []string{"/mode", "/modelSize"} {
		if len(validation.Fields[pointer]) == 0 {
			t.Fatalf("expected violation at %s, got %+v", pointer, validation.Fields)
		}
	}
}

func TestParse_RequiresSchemas(t *testing.T) {
	doc := []byte(`openapi: 3.0.3
info:
  title: t
  version: "1"
paths: {}
`)
	if _, err := apispec.Parse(context.Background(), doc); err == nil {
		t.Fatalf("expected missing schema error")
	}
	if _, err := apispec.Parse(context.Background(), nil); err == nil {
		t.Fatalf("expected empty payload error")
	}
}
