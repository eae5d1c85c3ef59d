package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-asrdeploy/pkg/script"
)

// Field keys used by the generator form and the error payloads keyed to it.
const (
	FieldMode     = "mode"
	FieldDevice   = "device"
	FieldModel    = "model"
	FieldLanguage = "language"
)

// ErrorMapping splits error feedback into per-control and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// Empty reports whether the mapping carries no messages.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapConfigError attributes a configuration error to the control that caused
// it. Errors without a known sentinel become form-level messages.
func MapConfigError(err error) ErrorMapping {
	var mapping ErrorMapping
	if err == nil {
		return mapping
	}

	field := ""
	switch {
	case errors.Is(err, script.ErrInvalidMode):
		field = FieldMode
	case errors.Is(err, script.ErrInvalidDevice):
		field = FieldDevice
	case errors.Is(err, script.ErrInvalidModelVariant):
		field = FieldModel
	case errors.Is(err, script.ErrInvalidLanguage):
		field = FieldLanguage
	}

	if field == "" {
		mapping.Form = normalizeMessages([]string{err.Error()})
		return mapping
	}
	mapping.Fields = map[string][]string{field: {err.Error()}}
	return mapping
}

// MapErrorPayload normalises error payloads keyed by JSON pointers or dotted
// paths ("/body/modelSize", "config.useGpu") onto the form's field keys.
// Unknown paths are kept as form-level errors so messages are not lost.
func MapErrorPayload(payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		field, ok := fieldForPath(rawPath)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[field] = normalizeMessages(append(mapping.Fields[field], normalized...))
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func fieldForPath(raw string) (string, bool) {
	segments := dropWrapperSegments(parsePathSegments(raw))
	if len(segments) == 0 {
		return "", false
	}
	switch strings.ToLower(segments[0]) {
	case "mode":
		return FieldMode, true
	case "device", "usegpu", "use_gpu", "gpu":
		return FieldDevice, true
	case "model", "modelsize", "model_size", "variant":
		return FieldModel, true
	case "language", "lang", "targetlanguage":
		return FieldLanguage, true
	}
	return "", false
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 {
		switch strings.ToLower(out[0]) {
		case "body", "request", "payload", "data", "config":
			out = out[1:]
			continue
		}
		break
	}
	return out
}
