// Package presets reads named script configurations from an HCL file:
//
//	preset "termux-cpu" {
//	  description = "Offline file transcription on the phone CPU"
//	  mode        = "file"
//	  device      = "cpu"
//	  model       = "0.6B"
//	  language    = "zho"
//	}
package presets

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/goliatone/go-asrdeploy/pkg/script"
)

// DefaultFile is the preset file looked up in the working directory.
const DefaultFile = ".asrdeploy.hcl"

var ErrPresetNotFound = errors.New("presets: preset not found")

// File represents a parsed preset file.
type File struct {
	Presets []PresetBlock `hcl:"preset,block"`
}

// PresetBlock is one named configuration. Omitted attributes keep the
// script defaults.
type PresetBlock struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`
	Mode        string `hcl:"mode,optional"`
	Device      string `hcl:"device,optional"`
	Model       string `hcl:"model,optional"`
	Language    string `hcl:"language,optional"`
}

// Config parses the block over script.Default.
func (p PresetBlock) Config() (script.Config, error) {
	cfg, err := script.Fields{
		Mode:     p.Mode,
		Device:   p.Device,
		Model:    p.Model,
		Language: p.Language,
	}.Apply(script.Default())
	if err != nil {
		return script.Config{}, fmt.Errorf("presets: preset %q: %w", p.Name, err)
	}
	return cfg, nil
}

// Builtin returns the presets available without a file.
func Builtin() *File {
	return &File{Presets: []PresetBlock{
		{
			Name:        "termux-cpu",
			Description: "Offline file transcription on the phone CPU",
			Mode:        string(script.ModeFile),
			Device:      script.DeviceCPU,
			Model:       string(script.ModelSmall),
			Language:    string(script.LanguageChinese),
		},
		{
			Name:        "live-captions",
			Description: "Real-time microphone captions with language detection",
			Mode:        string(script.ModeRealtime),
			Device:      script.DeviceCPU,
			Model:       string(script.ModelSmall),
			Language:    string(script.LanguageAuto),
		},
		{
			Name:        "gpu-chat",
			Description: "Chat-tuned checkpoint on a CUDA build",
			Mode:        string(script.ModeFile),
			Device:      "gpu",
			Model:       string(script.ModelChat),
			Language:    string(script.LanguageAuto),
		},
	}}
}

// Load parses filePath.
func Load(filePath string) (*File, error) {
	p := hclparse.NewParser()
	parsed, diags := p.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("presets: parse %s: %w", filePath, diags)
	}
	if parsed == nil {
		return nil, errors.New("presets: parsed file is nil")
	}
	return interpretFile(parsed)
}

// LoadOrBuiltin loads filePath and merges it over the builtin presets. A
// missing file yields the builtins alone.
func LoadOrBuiltin(filePath string) (*File, error) {
	builtin := Builtin()
	if filePath == "" {
		return builtin, nil
	}
	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		return builtin, nil
	}
	file, err := Load(filePath)
	if err != nil {
		return nil, err
	}
	return builtin.Merge(file), nil
}

// Parse decodes preset source held in memory.
func Parse(src []byte, filename string) (*File, error) {
	p := hclparse.NewParser()
	parsed, diags := p.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("presets: parse %s: %w", filename, diags)
	}
	return interpretFile(parsed)
}

func interpretFile(parsed *hcl.File) (*File, error) {
	file := &File{}
	if diags := gohcl.DecodeBody(parsed.Body, nil, file); diags.HasErrors() {
		return nil, fmt.Errorf("presets: decode HCL: %w", diags)
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return file, nil
}

// Validate rejects duplicate names and values outside the script options.
func (f *File) Validate() error {
	seen := make(map[string]struct{}, len(f.Presets))
	for _, preset := range f.Presets {
		if _, dup := seen[preset.Name]; dup {
			return fmt.Errorf("presets: duplicate preset %q", preset.Name)
		}
		seen[preset.Name] = struct{}{}
		if _, err := preset.Config(); err != nil {
			return err
		}
	}
	return nil
}

// Lookup resolves a preset by name.
func (f *File) Lookup(name string) (script.Config, error) {
	if preset, ok := f.Get(name); ok {
		return preset.Config()
	}
	return script.Config{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
}

// Get returns the block named name.
func (f *File) Get(name string) (PresetBlock, bool) {
	for _, preset := range f.Presets {
		if preset.Name == name {
			return preset, true
		}
	}
	return PresetBlock{}, false
}

// Names lists preset names in sorted order.
func (f *File) Names() []string {
	out := make([]string, 0, len(f.Presets))
	for _, preset := range f.Presets {
		out = append(out, preset.Name)
	}
	sort.Strings(out)
	return out
}

// Merge returns a file holding f's presets with other's presets replacing
// any that share a name.
func (f *File) Merge(other *File) *File {
	out := &File{}
	index := make(map[string]int)
	for _, src := range []*File{f, other} {
		if src == nil {
			continue
		}
		for _, preset := range src.Presets {
			if i, ok := index[preset.Name]; ok {
				out.Presets[i] = preset
				continue
			}
			index[preset.Name] = len(out.Presets)
			out.Presets = append(out.Presets, preset)
		}
	}
	return out
}
