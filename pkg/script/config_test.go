package script

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	want := Config{Mode: ModeFile, ModelVariant: ModelSmall, TargetLanguage: LanguageChinese}
	if diff := cmp.Diff(want, Default()); diff != "" {
		t.Fatalf("default mismatch (-want +got):\n%s", diff)
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("default should validate: %v", err)
	}
}

func TestConfig_WithHelpersReturnCopies(t *testing.T) {
	base := Default()
	next := base.WithMode(ModeRealtime).WithAcceleration(true).WithModelVariant(ModelChat).WithLanguage(LanguageAuto)

	if diff := cmp.Diff(Default(), base); diff != "" {
		t.Fatalf("base mutated (-want +got):\n%s", diff)
	}
	want := Config{Mode: ModeRealtime, UseAcceleration: true, ModelVariant: ModelChat, TargetLanguage: LanguageAuto}
	if diff := cmp.Diff(want, next); diff != "" {
		t.Fatalf("next mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"mode", Default().WithMode("batch"), ErrInvalidMode},
		{"variant", Default().WithModelVariant("7B"), ErrInvalidModelVariant},
		{"language", Default().WithLanguage("eng"), ErrInvalidLanguage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParsers_AcceptAliases(t *testing.T) {
	modes := map[string]Mode{"file": ModeFile, " Realtime ": ModeRealtime, "real-time": ModeRealtime}
	for raw, want := range modes {
		got, err := ParseMode(raw)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %q, %v", raw, got, err)
		}
	}

	variants := map[string]ModelVariant{"0.6B": ModelSmall, "small": ModelSmall, "chat-tuned": ModelChat, "Chat": ModelChat}
	for raw, want := range variants {
		got, err := ParseModelVariant(raw)
		if err != nil || got != want {
			t.Fatalf("ParseModelVariant(%q) = %q, %v", raw, got, err)
		}
	}

	langs := map[string]Language{"zho": LanguageChinese, "fixed": LanguageChinese, "auto-detect": LanguageAuto}
	for raw, want := range langs {
		got, err := ParseLanguage(raw)
		if err != nil || got != want {
			t.Fatalf("ParseLanguage(%q) = %q, %v", raw, got, err)
		}
	}

	devices := map[string]bool{"cpu": false, "GPU": true, "cuda": true, "accelerated": true}
	for raw, want := range devices {
		got, err := ParseDevice(raw)
		if err != nil || got != want {
			t.Fatalf("ParseDevice(%q) = %v, %v", raw, got, err)
		}
	}
}

func TestParsers_RejectUnknown(t *testing.T) {
	if _, err := ParseMode("batch"); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
	if _, err := ParseModelVariant("1.7B"); !errors.Is(err, ErrInvalidModelVariant) {
		t.Fatalf("expected ErrInvalidModelVariant, got %v", err)
	}
	if _, err := ParseLanguage("eng"); !errors.Is(err, ErrInvalidLanguage) {
		t.Fatalf("expected ErrInvalidLanguage, got %v", err)
	}
	if _, err := ParseDevice("npu"); !errors.Is(err, ErrInvalidDevice) {
		t.Fatalf("expected ErrInvalidDevice, got %v", err)
	}
}

func TestFields_Apply(t *testing.T) {
	got, err := Fields{Mode: "realtime", Device: "gpu"}.Apply(Default())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := Config{Mode: ModeRealtime, UseAcceleration: true, ModelVariant: ModelSmall, TargetLanguage: LanguageChinese}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("apply mismatch (-want +got):\n%s", diff)
	}

	base := Default().WithLanguage(LanguageAuto)
	kept, err := Fields{Model: "nope"}.Apply(base)
	if !errors.Is(err, ErrInvalidModelVariant) {
		t.Fatalf("expected ErrInvalidModelVariant, got %v", err)
	}
	if diff := cmp.Diff(base, kept); diff != "" {
		t.Fatalf("failed apply should return base (-want +got):\n%s", diff)
	}
}
