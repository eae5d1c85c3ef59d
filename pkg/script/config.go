package script

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects which execution branch the generated script carries.
type Mode string

const (
	// ModeFile transcribes a single audio file from disk.
	ModeFile Mode = "file"
	// ModeRealtime records microphone chunks in a loop until interrupted.
	ModeRealtime Mode = "realtime"
)

// ModelVariant names the published checkpoint suffix.
type ModelVariant string

const (
	// ModelSmall is the 0.6B parameter checkpoint.
	ModelSmall ModelVariant = "0.6B"
	// ModelChat is the chat-tuned checkpoint.
	ModelChat ModelVariant = "Chat"
)

// Language is the transcription language hint.
type Language string

const (
	// LanguageChinese pins decoding to Chinese.
	LanguageChinese Language = "zho"
	// LanguageAuto lets the model detect the spoken language.
	LanguageAuto Language = "auto"
)

var (
	ErrInvalidMode         = errors.New("script: invalid mode")
	ErrInvalidModelVariant = errors.New("script: invalid model variant")
	ErrInvalidLanguage     = errors.New("script: invalid language")
	ErrInvalidDevice       = errors.New("script: invalid device")
)

// Modes lists every mode in display order.
func Modes() []Mode { return []Mode{ModeFile, ModeRealtime} }

// ModelVariants lists every model variant in display order.
func ModelVariants() []ModelVariant { return []ModelVariant{ModelSmall, ModelChat} }

// Languages lists every language option in display order.
func Languages() []Language { return []Language{LanguageChinese, LanguageAuto} }

// Config is the immutable option set the composer renders. Edits go through the
// With* helpers, which return a new value.
type Config struct {
	Mode            Mode         `json:"mode" yaml:"mode"`
	UseAcceleration bool         `json:"useGpu" yaml:"use_gpu"`
	ModelVariant    ModelVariant `json:"modelSize" yaml:"model"`
	TargetLanguage  Language     `json:"language" yaml:"language"`
}

// Default returns the configuration the UI starts with.
func Default() Config {
	return Config{
		Mode:            ModeFile,
		UseAcceleration: false,
		ModelVariant:    ModelSmall,
		TargetLanguage:  LanguageChinese,
	}
}

// Validate reports the first field holding a value outside its enumeration.
func (c Config) Validate() error {
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Mode)
	}
	if !c.ModelVariant.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidModelVariant, c.ModelVariant)
	}
	if !c.TargetLanguage.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, c.TargetLanguage)
	}
	return nil
}

func (c Config) WithMode(mode Mode) Config {
	c.Mode = mode
	return c
}

func (c Config) WithAcceleration(enabled bool) Config {
	c.UseAcceleration = enabled
	return c
}

func (c Config) WithModelVariant(variant ModelVariant) Config {
	c.ModelVariant = variant
	return c
}

func (c Config) WithLanguage(lang Language) Config {
	c.TargetLanguage = lang
	return c
}

// Device returns the device token the config selects ("cuda" or "cpu").
func (c Config) Device() string {
	if c.UseAcceleration {
		return DeviceAccelerated
	}
	return DeviceCPU
}

// String renders a compact, stable summary used in logs.
func (c Config) String() string {
	return fmt.Sprintf("mode=%s device=%s model=%s language=%s", c.Mode, c.Device(), c.ModelVariant, c.TargetLanguage)
}

// Valid reports whether m is a declared mode.
func (m Mode) Valid() bool {
	return m == ModeFile || m == ModeRealtime
}

// Label is the human readable toggle caption.
func (m Mode) Label() string {
	switch m {
	case ModeRealtime:
		return "Real-time"
	default:
		return "File Input"
	}
}

// Valid reports whether v is a declared model variant.
func (v ModelVariant) Valid() bool {
	return v == ModelSmall || v == ModelChat
}

// Label is the caption shown for the model choice.
func (v ModelVariant) Label() string {
	switch v {
	case ModelChat:
		return "Qwen3-ASR Chat"
	default:
		return "Qwen3-ASR 0.6B"
	}
}

// Valid reports whether l is a declared language option.
func (l Language) Valid() bool {
	return l == LanguageChinese || l == LanguageAuto
}

// Label is the caption shown for the language choice.
func (l Language) Label() string {
	switch l {
	case LanguageAuto:
		return "Auto-detect"
	default:
		return "Chinese (Traditional/Simplified)"
	}
}

// ParseMode accepts the canonical mode names, case-insensitively.
func ParseMode(raw string) (Mode, error) {
	switch normalize(raw) {
	case "file", "file-input":
		return ModeFile, nil
	case "realtime", "real-time", "stream", "streaming":
		return ModeRealtime, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, raw)
}

// ParseModelVariant accepts checkpoint names and their descriptive aliases.
func ParseModelVariant(raw string) (ModelVariant, error) {
	switch normalize(raw) {
	case "0.6b", "small":
		return ModelSmall, nil
	case "chat", "chat-tuned":
		return ModelChat, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidModelVariant, raw)
}

// ParseLanguage accepts language codes and their descriptive aliases.
func ParseLanguage(raw string) (Language, error) {
	switch normalize(raw) {
	case "zho", "zh", "chinese", "fixed":
		return LanguageChinese, nil
	case "auto", "auto-detect", "detect":
		return LanguageAuto, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, raw)
}

// ParseDevice maps a device name to the acceleration flag.
func ParseDevice(raw string) (bool, error) {
	switch normalize(raw) {
	case "cpu":
		return false, nil
	case "gpu", "cuda", "accelerated":
		return true, nil
	}
	return false, fmt.Errorf("%w: %q", ErrInvalidDevice, raw)
}

// Fields is the string form of a Config as it arrives from flags, query
// strings, and preset files. Empty fields keep the base value.
type Fields struct {
	Mode     string
	Device   string
	Model    string
	Language string
}

// Apply parses every non-empty field over base and returns the new Config.
func (f Fields) Apply(base Config) (Config, error) {
	out := base
	if strings.TrimSpace(f.Mode) != "" {
		mode, err := ParseMode(f.Mode)
		if err != nil {
			return base, err
		}
		out.Mode = mode
	}
	if strings.TrimSpace(f.Device) != "" {
		accel, err := ParseDevice(f.Device)
		if err != nil {
			return base, err
		}
		out.UseAcceleration = accel
	}
	if strings.TrimSpace(f.Model) != "" {
		variant, err := ParseModelVariant(f.Model)
		if err != nil {
			return base, err
		}
		out.ModelVariant = variant
	}
	if strings.TrimSpace(f.Language) != "" {
		lang, err := ParseLanguage(f.Language)
		if err != nil {
			return base, err
		}
		out.TargetLanguage = lang
	}
	return out, nil
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
