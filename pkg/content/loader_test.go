package content

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := Default()

	if got := len(catalog.Guide.Steps); got != 6 {
		t.Fatalf("expected 6 guide steps, got %d", got)
	}
	for i, step := range catalog.Guide.Steps {
		if step.Number != i+1 {
			t.Fatalf("step %d numbered %d", i, step.Number)
		}
		if step.Command == "" {
			t.Fatalf("step %q has no command", step.Title)
		}
	}
	if !catalog.Guide.Steps[5].Last || catalog.Guide.Steps[0].Last {
		t.Fatalf("only the final step should be marked last")
	}
	if catalog.Guide.Steps[0].Command != "pkg update && pkg upgrade" {
		t.Fatalf("unexpected first command %q", catalog.Guide.Steps[0].Command)
	}

	if got := len(catalog.Architecture.Tiers); got != 4 {
		t.Fatalf("expected 4 tiers, got %d", got)
	}
	if got := len(catalog.Architecture.Tiers[3].Nodes); got != 2 {
		t.Fatalf("expected the runtime tier to hold 2 nodes, got %d", got)
	}
	tiers := catalog.Architecture.Tiers
	if tiers[0].OpensGroup || tiers[1].ClosesGroup {
		t.Fatalf("ungrouped tiers must not open or close a group")
	}
	if !tiers[2].OpensGroup || tiers[2].ClosesGroup || tiers[3].OpensGroup || !tiers[3].ClosesGroup {
		t.Fatalf("expected the filesystem group to span tiers 3 and 4: %+v", tiers[2:])
	}
	if len(catalog.Architecture.Notes) != 2 {
		t.Fatalf("expected 2 architecture notes")
	}
	if !strings.Contains(catalog.Architecture.Notes[0].HTML, "<code>manylinux</code>") {
		t.Fatalf("expected inline code markup, got %q", catalog.Architecture.Notes[0].HTML)
	}

	if catalog.Generator.Prototype.AppName != "Qwen3 Note" {
		t.Fatalf("unexpected app name %q", catalog.Generator.Prototype.AppName)
	}
	if !strings.Contains(catalog.Generator.NextSteps.HTML, "<code>asr.py</code>") {
		t.Fatalf("expected next steps markup, got %q", catalog.Generator.NextSteps.HTML)
	}
}

func TestLoadFSErrors(t *testing.T) {
	base := fstest.MapFS{
		"guide.yaml":        {Data: []byte("title: G\nsteps:\n  - title: One\n")},
		"architecture.yaml": {Data: []byte("title: A\ntiers:\n  - nodes:\n      - title: Node\n")},
		"generator.yaml":    {Data: []byte("title: Gen\n")},
	}

	if _, err := LoadFS(base); err != nil {
		t.Fatalf("minimal catalog: %v", err)
	}

	empty := cloneFS(base)
	empty["generator.yaml"] = &fstest.MapFile{Data: []byte("  \n")}
	if _, err := LoadFS(empty); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}

	missing := cloneFS(base)
	delete(missing, "guide.yaml")
	if _, err := LoadFS(missing); err == nil {
		t.Fatalf("expected error for missing guide")
	}

	noSteps := cloneFS(base)
	noSteps["guide.yaml"] = &fstest.MapFile{Data: []byte("title: G\n")}
	if _, err := LoadFS(noSteps); err == nil || !strings.Contains(err.Error(), "no steps") {
		t.Fatalf("expected no steps error, got %v", err)
	}

	badTier := cloneFS(base)
	badTier["architecture.yaml"] = &fstest.MapFile{Data: []byte("tiers:\n  - group: X\n")}
	if _, err := LoadFS(badTier); err == nil || !strings.Contains(err.Error(), "tier 1") {
		t.Fatalf("expected empty tier error, got %v", err)
	}

	if _, err := LoadFS(nil); err == nil {
		t.Fatalf("expected error for nil filesystem")
	}
}

func TestRenderInline(t *testing.T) {
	cases := map[string]string{
		"":                              "",
		"plain":                         "plain",
		"use `pip`":                     "use <code>pip</code>",
		"dangling `tick":                "dangling `tick",
		"<script>alert(1)</script> `x`": "&lt;script&gt;alert(1)&lt;/script&gt; <code>x</code>",
		"`a` and `b`":                   "<code>a</code> and <code>b</code>",
	}
	for input, want := range cases {
		if got := renderInline(input); got != want {
			t.Errorf("renderInline(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSanitizeInlineStripsBlockMarkup(t *testing.T) {
	got := SanitizeInline(`<div onclick="x()"><strong>bold</strong><img src="a.png"></div>`)
	if got != "<strong>bold</strong>" {
		t.Fatalf("unexpected sanitised output %q", got)
	}
}

func cloneFS(src fstest.MapFS) fstest.MapFS {
	out := fstest.MapFS{}
	for k, v := range src {
		out[k] = v
	}
	return out
}
