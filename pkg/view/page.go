package view

import (
	"github.com/goliatone/go-asrdeploy/pkg/content"
	"github.com/goliatone/go-asrdeploy/pkg/script"
)

// AppTitle is the product name shown in the header and footer.
const AppTitle = "Qwen3-ASR Deployer"

// Page is everything a renderer needs to draw one tab. Exactly one of the
// per-view sections is set, matching View.
type Page struct {
	View     Name      `json:"view"`
	Title    string    `json:"title"`
	AppTitle string    `json:"app_title"`
	Footer   string    `json:"footer"`
	BasePath string    `json:"base_path"`
	Nav      []NavItem `json:"nav"`

	Generator    *GeneratorData        `json:"generator,omitempty"`
	Architecture *content.Architecture `json:"architecture,omitempty"`
	Guide        *content.Guide        `json:"guide,omitempty"`
	Prototype    *PrototypeData        `json:"prototype,omitempty"`
}

// Choice is one option of a form control.
type Choice struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// FormOptions lists the controls of the generator form.
type FormOptions struct {
	Modes     []Choice `json:"modes"`
	Devices   []Choice `json:"devices"`
	Models    []Choice `json:"models"`
	Languages []Choice `json:"languages"`
}

// GeneratorData backs the script generator tab.
type GeneratorData struct {
	Config     script.Config       `json:"config"`
	Document   script.Document     `json:"document"`
	Options    FormOptions         `json:"options"`
	GPUWarning bool                `json:"gpu_warning"`
	Copy       content.Generator   `json:"copy"`
	Errors     map[string][]string `json:"errors,omitempty"`
	FormErrors []string            `json:"form_errors,omitempty"`
}

// PrototypeData backs the mobile mock-up tab.
type PrototypeData struct {
	AppName    string   `json:"app_name"`
	ModelBadge string   `json:"model_badge"`
	Phrases    []string `json:"phrases"`
	IntervalMS int64    `json:"interval_ms"`
	FinalizeMS int64    `json:"finalize_ms"`
	StreamPath string   `json:"stream_path"`
	Caption    string   `json:"caption"`
}

// Allowed narrows the values offered per control. Nil slices fall back to
// every declared value.
type Allowed struct {
	Modes     []string
	Devices   []string
	Models    []string
	Languages []string
}

// BuildFormOptions turns the allowed values into choices with cfg selected.
func BuildFormOptions(cfg script.Config, allowed Allowed) FormOptions {
	modes := allowed.Modes
	if len(modes) == 0 {
		for _, m := range script.Modes() {
			modes = append(modes, string(m))
		}
	}
	devices := allowed.Devices
	if len(devices) == 0 {
		devices = []string{script.DeviceCPU, "gpu"}
	}
	models := allowed.Models
	if len(models) == 0 {
		for _, v := range script.ModelVariants() {
			models = append(models, string(v))
		}
	}
	langs := allowed.Languages
	if len(langs) == 0 {
		for _, l := range script.Languages() {
			langs = append(langs, string(l))
		}
	}

	var out FormOptions
	for _, raw := range modes {
		mode, err := script.ParseMode(raw)
		if err != nil {
			continue
		}
		out.Modes = append(out.Modes, Choice{Value: string(mode), Label: mode.Label(), Selected: mode == cfg.Mode})
	}
	for _, raw := range devices {
		accel, err := script.ParseDevice(raw)
		if err != nil {
			continue
		}
		out.Devices = append(out.Devices, deviceChoice(accel, cfg.UseAcceleration))
	}
	for _, raw := range models {
		variant, err := script.ParseModelVariant(raw)
		if err != nil {
			continue
		}
		out.Models = append(out.Models, Choice{Value: string(variant), Label: variant.Label(), Selected: variant == cfg.ModelVariant})
	}
	for _, raw := range langs {
		lang, err := script.ParseLanguage(raw)
		if err != nil {
			continue
		}
		out.Languages = append(out.Languages, Choice{Value: string(lang), Label: lang.Label(), Selected: lang == cfg.TargetLanguage})
	}
	return out
}

func deviceChoice(accel, selected bool) Choice {
	if accel {
		return Choice{Value: "gpu", Label: "GPU (Requires Vulkan/MLC)", Selected: selected}
	}
	return Choice{Value: script.DeviceCPU, Label: "CPU (Safe for Termux)", Selected: !selected}
}
