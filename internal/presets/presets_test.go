package presets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-asrdeploy/pkg/script"
)

func TestParse_EmptyFile(t *testing.T) {
	file, err := Parse([]byte(""), "empty.hcl")
	require.NoError(t, err)
	assert.Len(t, file.Presets, 0)
}

func TestParse_PartialPresetKeepsDefaults(t *testing.T) {
	src := `
preset "captions" {
  description = "live"
  mode        = "realtime"
}
`
	file, err := Parse([]byte(src), t.Name()+".hcl")
	require.NoError(t, err)

	if assert.Len(t, file.Presets, 1) {
		assert.Equal(t, "captions", file.Presets[0].Name)
		assert.Equal(t, "live", file.Presets[0].Description)
	}

	cfg, err := file.Lookup("captions")
	require.NoError(t, err)
	assert.Equal(t, script.Default().WithMode(script.ModeRealtime), cfg)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"syntax", `preset "x" {`, "presets: parse"},
		{"unknown attribute", "preset \"x\" {\n  speed = 2\n}\n", "presets: decode HCL"},
		{"bad value", "preset \"x\" {\n  device = \"tpu\"\n}\n", "invalid device"},
		{"duplicate", "preset \"x\" {}\npreset \"x\" {}\n", "duplicate preset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), tt.name+".hcl")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestBuiltin(t *testing.T) {
	file := Builtin()
	require.NoError(t, file.Validate())
	assert.Equal(t, []string{"gpu-chat", "live-captions", "termux-cpu"}, file.Names())

	cfg, err := file.Lookup("termux-cpu")
	require.NoError(t, err)
	assert.Equal(t, script.Default(), cfg)

	cfg, err = file.Lookup("gpu-chat")
	require.NoError(t, err)
	assert.True(t, cfg.UseAcceleration)
	assert.Equal(t, script.ModelChat, cfg.ModelVariant)

	_, err = file.Lookup("nope")
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestLoadOrBuiltin(t *testing.T) {
	dir := t.TempDir()

	file, err := LoadOrBuiltin(filepath.Join(dir, "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Builtin(), file)

	path := filepath.Join(dir, DefaultFile)
	src := `
preset "termux-cpu" {
  language = "auto"
}

preset "mine" {
  device = "gpu"
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	file, err = LoadOrBuiltin(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"gpu-chat", "live-captions", "mine", "termux-cpu"}, file.Names())

	cfg, err := file.Lookup("termux-cpu")
	require.NoError(t, err)
	assert.Equal(t, script.LanguageAuto, cfg.TargetLanguage, "file presets replace builtins")

	assert.Equal(t, "termux-cpu", file.Presets[0].Name, "replacement keeps position")
}
