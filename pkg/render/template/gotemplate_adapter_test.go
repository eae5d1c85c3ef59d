package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-asrdeploy/pkg/render/template/gotemplate"
	"github.com/goliatone/go-asrdeploy/pkg/testsupport"
)

//go:embed testdata/templates/*.tmpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"model_id": "Qwen/Qwen3-ASR-0.6B"}, w)
	})
	assertGolden(t, "hello.golden", result, written)
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"addr": ":8080"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})
	assertGolden(t, "use-global.golden", result, written)
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"name": "realtime"}, w)
	})
	assertGolden(t, "use-filter.golden", result, written)
}

func TestGoTemplateEngine_BundledFilters(t *testing.T) {
	engine := newEngine(t)

	data := struct {
		Title   string `json:"title"`
		Command string `json:"command"`
	}{Title: "Setup Guide", Command: "pkg update\n\npkg upgrade"}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("text-filters", data, w)
	})
	assertGolden(t, "text-filters.golden", result, written)
}

func TestGoTemplateEngine_RenderString(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.Render("{{ device|trim }}", map[string]any{"device": "  cuda  "})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "cuda" {
		t.Fatalf("expected trimmed output, got %q", got)
	}

	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestGoTemplateEngine_Hooks(t *testing.T) {
	engine := newEngine(t,
		gotemplate.WithPreHooks(func(hctx *gotemplatepkg.HookContext) error {
			if hctx.TemplateName == "model" {
				hctx.TemplateName = "hello"
			}
			hctx.Data = map[string]any{"model_id": "Qwen/Qwen3-ASR-Chat"}
			return nil
		}),
		gotemplate.WithPostHooks(func(hctx *gotemplatepkg.HookContext) (string, error) {
			return strings.TrimSpace(hctx.Output) + "|", nil
		}),
	)
	engine.RegisterPostHook(func(hctx *gotemplatepkg.HookContext) (string, error) {
		return strings.ToUpper(hctx.Output), nil
	}, 10)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("model", nil, w)
	})
	want := "MODEL: QWEN/QWEN3-ASR-CHAT|"
	if result != want || written != want {
		t.Fatalf("hooked render mismatch\nwant: %q\n got: %q (written %q)", want, result, written)
	}
}

func TestGoTemplateEngine_PreHookError(t *testing.T) {
	engine := newEngine(t, gotemplate.WithPreHooks(func(*gotemplatepkg.HookContext) error {
		return fmt.Errorf("denied")
	}))

	if _, err := engine.RenderString("{{ value }}", nil); err == nil || !strings.Contains(err.Error(), "denied") {
		t.Fatalf("expected pre hook error, got %v", err)
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(templatesFS)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func assertGolden(t *testing.T, name, result, written string) {
	t.Helper()

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", name))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}
