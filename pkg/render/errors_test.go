package render_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-asrdeploy/pkg/render"
	"github.com/goliatone/go-asrdeploy/pkg/script"
)

func TestMapErrorPayload(t *testing.T) {
	payload := map[string][]string{
		"/body/mode":           {"Mode must be file or realtime"},
		"config.useGpu":        {" Device invalid "},
		"$.request.modelSize":  {"Unknown model"},
		"#/language":           {"Unsupported language", "Unsupported language"},
		"request/body/unknown": {"Should fall back to form errors"},
		"":                     {"Unscoped error"},
		"/body/extra":          {"   "},
	}

	mapped := render.MapErrorPayload(payload)

	wantFields := map[string][]string{
		render.FieldMode:     {"Mode must be file or realtime"},
		render.FieldDevice:   {"Device invalid"},
		render.FieldModel:    {"Unknown model"},
		render.FieldLanguage: {"Unsupported language"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	if len(mapped.Form) != 2 {
		t.Fatalf("expected two form-level errors, got %v", mapped.Form)
	}
}

func TestMapConfigError(t *testing.T) {
	cases := []struct {
		err   error
		field string
	}{
		{fmt.Errorf("%w: %q", script.ErrInvalidMode, "batch"), render.FieldMode},
		{fmt.Errorf("%w: %q", script.ErrInvalidDevice, "tpu"), render.FieldDevice},
		{fmt.Errorf("%w: %q", script.ErrInvalidModelVariant, "7B"), render.FieldModel},
		{fmt.Errorf("wrap: %w", fmt.Errorf("%w: %q", script.ErrInvalidLanguage, "fr")), render.FieldLanguage},
	}
	for _, tc := range cases {
		mapped := render.MapConfigError(tc.err)
		if got := mapped.Fields[tc.field]; len(got) != 1 || got[0] != tc.err.Error() {
			t.Fatalf("expected %q mapped to %s, got %+v", tc.err, tc.field, mapped)
		}
		if len(mapped.Form) != 0 {
			t.Fatalf("unexpected form errors %v", mapped.Form)
		}
	}

	generic := render.MapConfigError(errors.New("boom"))
	if diff := cmp.Diff([]string{"boom"}, generic.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
	if !render.MapConfigError(nil).Empty() {
		t.Fatalf("nil error should map to an empty mapping")
	}
}

func TestMergeFormErrors(t *testing.T) {
	got := render.MergeFormErrors([]string{"a", " b "}, "b", "", "c")
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}
