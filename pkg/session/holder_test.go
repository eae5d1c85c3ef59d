package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-asrdeploy/pkg/script"
)

func TestHolder_StartsWithValidConfig(t *testing.T) {
	h := NewHolder(script.Config{Mode: "bogus"})
	if diff := cmp.Diff(script.Default(), h.Current()); diff != "" {
		t.Fatalf("invalid seed should fall back to default (-want +got):\n%s", diff)
	}
	if h.Version() != 0 {
		t.Fatalf("expected version 0, got %d", h.Version())
	}
}

func TestHolder_ReplaceNotifiesListeners(t *testing.T) {
	h := NewHolder(script.Default())

	var got []script.Config
	cancel := h.Subscribe(func(cfg script.Config) {
		got = append(got, cfg)
	})

	next := script.Default().WithMode(script.ModeRealtime)
	if err := h.Replace(next); err != nil {
		t.Fatalf("replace: %v", err)
	}
	cancel()
	cancel()
	if err := h.Replace(script.Default()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	if diff := cmp.Diff([]script.Config{next}, got); diff != "" {
		t.Fatalf("listener calls mismatch (-want +got):\n%s", diff)
	}
	if h.Version() != 2 {
		t.Fatalf("expected version 2, got %d", h.Version())
	}
}

func TestHolder_RejectsInvalidReplacement(t *testing.T) {
	h := NewHolder(script.Default())
	err := h.Replace(script.Default().WithLanguage("eng"))
	if !errors.Is(err, script.ErrInvalidLanguage) {
		t.Fatalf("expected ErrInvalidLanguage, got %v", err)
	}

	cur, err := h.Update(func(c script.Config) script.Config {
		c.ModelVariant = "huge"
		return c
	})
	if !errors.Is(err, script.ErrInvalidModelVariant) {
		t.Fatalf("expected ErrInvalidModelVariant, got %v", err)
	}
	if diff := cmp.Diff(script.Default(), cur); diff != "" {
		t.Fatalf("failed update must keep current (-want +got):\n%s", diff)
	}
	if h.Version() != 0 {
		t.Fatalf("failed updates must not bump version")
	}
}

func TestHolder_ConcurrentUpdatesAreWholeValues(t *testing.T) {
	h := NewHolder(script.Default())
	a := script.Config{Mode: script.ModeFile, ModelVariant: script.ModelSmall, TargetLanguage: script.LanguageChinese}
	b := script.Config{Mode: script.ModeRealtime, UseAcceleration: true, ModelVariant: script.ModelChat, TargetLanguage: script.LanguageAuto}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			next := a
			if i%2 == 0 {
				next = b
			}
			_ = h.Replace(next)
		}(i)
		go func() {
			defer wg.Done()
			cur := h.Current()
			if cur != a && cur != b && cur != script.Default() {
				t.Errorf("observed partial config %+v", cur)
			}
		}()
	}
	wg.Wait()

	if h.Version() != 50 {
		t.Fatalf("expected 50 replacements, got %d", h.Version())
	}
}

func TestHolder_Document(t *testing.T) {
	h := NewHolder(script.Default().WithMode(script.ModeRealtime))
	doc := h.Document()
	if doc.Filename != script.Filename(script.ModeRealtime) {
		t.Fatalf("unexpected filename %q", doc.Filename)
	}
}
