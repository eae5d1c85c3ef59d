package tui

import (
	"io"
	"log/slog"
)

// OutputFormat controls how the final configuration is serialized.
type OutputFormat string

const (
	// OutputFormatScript emits the composed Python script.
	OutputFormatScript OutputFormat = "script"
	// OutputFormatJSON emits the script document as application/json.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits a human-friendly summary of the choices.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional prefixes the configurator applies to messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the Configurator.
type Option func(*Configurator)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Configurator) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithOutput sets the writer the default survey driver prints info lines to.
// It has no effect when WithPromptDriver is used.
func WithOutput(w io.Writer) Option {
	return func(c *Configurator) {
		c.out = w
	}
}

// WithOutputFormat selects the serialization used by Render.
func WithOutputFormat(format OutputFormat) Option {
	return func(c *Configurator) {
		if format != "" {
			c.outputFormat = format
		}
	}
}

// WithGPUWarning sets the message shown after GPU acceleration is chosen.
func WithGPUWarning(msg string) Option {
	return func(c *Configurator) {
		c.gpuWarning = msg
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(c *Configurator) {
		c.theme = theme
	}
}

// WithLogger sets the logger used for step tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Configurator) {
		if logger != nil {
			c.logger = logger
		}
	}
}
