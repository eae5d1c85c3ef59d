package vanilla_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-asrdeploy/pkg/content"
	"github.com/goliatone/go-asrdeploy/pkg/render"
	"github.com/goliatone/go-asrdeploy/pkg/renderers/vanilla"
	"github.com/goliatone/go-asrdeploy/pkg/script"
	"github.com/goliatone/go-asrdeploy/pkg/testsupport"
	"github.com/goliatone/go-asrdeploy/pkg/view"
)

func TestRenderer_GeneratorPage(t *testing.T) {
	cfg := script.Default().WithMode(script.ModeRealtime).WithAcceleration(true)
	page := generatorPage(cfg)
	page.Generator.Errors = map[string][]string{"language": {"language <b>bad</b>"}}

	renderer := newRenderer(t, vanilla.WithAssetURLPrefix("/assets"))
	output := renderString(t, renderer, page, render.RenderOptions{Theme: testThemeConfig()})

	mustContain(t, output,
		`<title>Script Generator | Qwen3-ASR Deployer</title>`,
		`<link rel="stylesheet" href="/assets/asrdeploy.css">`,
		`<script src="/assets/asrdeploy.js" defer></script>`,
		`data-theme="slate"`,
		`data-theme-variant="dark"`,
		`--color-accent: #818cf8;`,
		`aria-current="page"`,
		`<input type="radio" name="mode" value="realtime" checked>`,
		`<option value="gpu" selected>GPU (Requires Vulkan/MLC)</option>`,
		`asr_deploy_realtime.py`,
		`MODEL_ID = &quot;Qwen/Qwen3-ASR-0.6B&quot;`,
		`DEVICE = &quot;cuda&quot; # Using GPU`,
		`language &lt;b&gt;bad&lt;/b&gt;`,
		`<code>asr.py</code>`,
	)
	if strings.Contains(output, "data-gpu-warning hidden") {
		t.Fatalf("gpu warning should be visible when acceleration is selected")
	}
}

func TestRenderer_GeneratorHidesWarningOnCPU(t *testing.T) {
	renderer := newRenderer(t)
	output := renderString(t, renderer, generatorPage(script.Default()), render.RenderOptions{})

	mustContain(t, output,
		`data-gpu-warning hidden`,
		`<option value="cpu" selected>CPU (Safe for Termux)</option>`,
		`asr_deploy_file.py`,
		`href="asrdeploy.css"`,
	)
	if strings.Contains(output, "data-theme-vars") {
		t.Fatalf("expected no theme style block without a theme")
	}
}

func TestRenderer_ArchitectureGroupsTiers(t *testing.T) {
	catalog := content.Default()
	page := basePage(view.Architecture)
	page.Architecture = &catalog.Architecture

	output := renderString(t, newRenderer(t), page, render.RenderOptions{})

	if got := strings.Count(output, `<div class="tier-group">`); got != 1 {
		t.Fatalf("expected one tier group, got %d", got)
	}
	if got := strings.Count(output, `class="tier-connector"`); got != len(catalog.Architecture.Tiers)-1 {
		t.Fatalf("expected %d connectors, got %d", len(catalog.Architecture.Tiers)-1, got)
	}
	mustContain(t, output,
		`Virtualized Filesystem`,
		`Proot-Distro (Ubuntu)`,
		`<code>local_files_only=True</code>`,
	)
}

func TestRenderer_GuideStandalone(t *testing.T) {
	catalog := content.Default()
	page := basePage(view.Guide)
	page.Guide = &catalog.Guide

	output := renderString(t, newRenderer(t), page, render.RenderOptions{Standalone: true})

	if strings.Contains(output, "<html") {
		t.Fatalf("standalone output should not include the layout")
	}
	mustContain(t, output,
		`<span class="step-number">6</span>`,
		`id="step-1-command">pkg update &amp;&amp; pkg upgrade</code>`,
		`data-copy-target="#step-3-command"`,
		`Ready for Offline Use`,
	)
}

func TestRenderer_PrototypeInlineAssets(t *testing.T) {
	page := basePage(view.Prototype)
	page.Prototype = &view.PrototypeData{
		AppName:    "Qwen3 Note",
		ModelBadge: "Model: Qwen3-0.6B (Int8)",
		Phrases:    []string{`Say "hi"`, "Second"},
		IntervalMS: 2000,
		FinalizeMS: 1500,
		StreamPath: "/api/v1/demo/ws",
	}

	output := renderString(t, newRenderer(t, vanilla.WithInlineAssets()), page, render.RenderOptions{})

	mustContain(t, output,
		`data-stream-path="/api/v1/demo/ws"`,
		`data-interval-ms="2000"`,
		`Tap microphone to start...`,
		`COPY_RESET_MS`,
		`--color-accent: #4f46e5;`,
	)
	if strings.Contains(output, `src="asrdeploy.js"`) {
		t.Fatalf("inline assets should not link the script")
	}
}

func TestRenderer_Errors(t *testing.T) {
	renderer := newRenderer(t)

	if _, err := renderer.Render(context.Background(), view.Page{View: "settings"}, render.RenderOptions{}); err == nil {
		t.Fatalf("expected unknown view error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, generatorPage(script.Default()), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestAssetsFS(t *testing.T) {
	for _, name := range []string{vanilla.StylesheetName, vanilla.ScriptName} {
		data, err := fs.ReadFile(vanilla.AssetsFS(), name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("asset %s is empty", name)
		}
	}
}

func newRenderer(t *testing.T, opts ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func renderString(t *testing.T, renderer *vanilla.Renderer, page view.Page, opts render.RenderOptions) string {
	t.Helper()
	output, err := renderer.Render(testsupport.Context(), page, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(output)
}

func basePage(name view.Name) view.Page {
	return view.Page{
		View:     name,
		Title:    name.Label(),
		AppTitle: view.AppTitle,
		Footer:   "footer",
		Nav:      view.Navigation(name, ""),
	}
}

func generatorPage(cfg script.Config) view.Page {
	page := basePage(view.Generator)
	page.Generator = &view.GeneratorData{
		Config:     cfg,
		Document:   script.Render(cfg),
		Options:    view.BuildFormOptions(cfg, view.Allowed{}),
		GPUWarning: cfg.UseAcceleration,
		Copy:       content.Default().Generator,
	}
	return page
}

func testThemeConfig() *theme.RendererConfig {
	return &theme.RendererConfig{
		Theme:   "slate",
		Variant: "dark",
		Tokens:  map[string]string{"color-accent": "#818cf8"},
		CSSVars: map[string]string{"--color-accent": "#818cf8"},
	}
}

func mustContain(t *testing.T, output string, needles ...string) {
	t.Helper()
	for _, needle := range needles {
		if !strings.Contains(output, needle) {
			t.Fatalf("expected output to contain %q", needle)
		}
	}
}
