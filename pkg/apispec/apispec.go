// Package apispec exposes the embedded OpenAPI document of the HTTP API and
// derives option lists and request validation from it.
package apispec

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-asrdeploy/pkg/script"
	"github.com/goliatone/go-asrdeploy/pkg/view"
)

//go:embed openapi.yaml
var embeddedDocument []byte

const (
	configSchema = "ScriptConfig"
	deviceSchema = "Device"
)

var ErrInvalidConfig = errors.New("apispec: invalid script config")

// ValidationError carries schema violations keyed by JSON pointer.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+strings.Join(e.Fields[key], "; "))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidConfig, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidConfig }

// Operation summarises one documented endpoint.
type Operation struct {
	ID      string `json:"id"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Summary string `json:"summary,omitempty"`
}

// Spec is a loaded and validated API document.
type Spec struct {
	raw    []byte
	doc    *openapi3.T
	config *openapi3.Schema
	device *openapi3.Schema
}

// Load parses the embedded document.
func Load(ctx context.Context) (*Spec, error) {
	return Parse(ctx, embeddedDocument)
}

// Parse loads, validates and indexes an OpenAPI document. It must declare the
// ScriptConfig and Device component schemas.
func Parse(ctx context.Context, data []byte) (*Spec, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("apispec: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("apispec: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("apispec: validate: %w", err)
	}

	config, err := componentSchema(doc, configSchema)
	if err != nil {
		return nil, err
	}
	device, err := componentSchema(doc, deviceSchema)
	if err != nil {
		return nil, err
	}

	return &Spec{
		raw:    append([]byte(nil), data...),
		doc:    doc,
		config: config,
		device: device,
	}, nil
}

func componentSchema(doc *openapi3.T, name string) (*openapi3.Schema, error) {
	if doc.Components == nil {
		return nil, fmt.Errorf("apispec: document has no components")
	}
	ref, ok := doc.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("apispec: schema %q not defined", name)
	}
	return ref.Value, nil
}

// Raw returns the document as loaded.
func (s *Spec) Raw() []byte {
	return append([]byte(nil), s.raw...)
}

// Title and Version come from the document info block.
func (s *Spec) Title() string {
	if s.doc.Info == nil {
		return ""
	}
	return s.doc.Info.Title
}

func (s *Spec) Version() string {
	if s.doc.Info == nil {
		return ""
	}
	return s.doc.Info.Version
}

// Operations lists documented endpoints ordered by path then method.
func (s *Spec) Operations() []Operation {
	var out []Operation
	if s.doc.Paths == nil {
		return out
	}
	for path, item := range s.doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out = append(out, Operation{ID: id, Method: method, Path: path, Summary: op.Summary})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// Allowed reads the enumerations declared for each option.
func (s *Spec) Allowed() view.Allowed {
	return view.Allowed{
		Modes:     s.propertyEnum("mode"),
		Devices:   enumStrings(s.device),
		Models:    s.propertyEnum("modelSize"),
		Languages: s.propertyEnum("language"),
	}
}

func (s *Spec) propertyEnum(name string) []string {
	ref, ok := s.config.Properties[name]
	if !ok || ref == nil {
		return nil
	}
	return enumStrings(ref.Value)
}

func enumStrings(schema *openapi3.Schema) []string {
	if schema == nil {
		return nil
	}
	out := make([]string, 0, len(schema.Enum))
	for _, value := range schema.Enum {
		if str, ok := value.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

// ValidateConfig checks a decoded JSON body against ScriptConfig and reports
// every violation.
func (s *Spec) ValidateConfig(body map[string]any) error {
	if body == nil {
		body = map[string]any{}
	}
	err := s.config.VisitJSON(body, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	fields := make(map[string][]string)
	collectSchemaErrors(err, fields)
	if len(fields) == 0 {
		fields["/"] = []string{err.Error()}
	}
	return &ValidationError{Fields: fields}
}

func collectSchemaErrors(err error, fields map[string][]string) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, inner := range multi {
			collectSchemaErrors(inner, fields)
		}
		return
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		pointer := "/" + strings.Join(schemaErr.JSONPointer(), "/")
		reason := schemaErr.Reason
		if reason == "" {
			reason = schemaErr.Error()
		}
		fields[pointer] = append(fields[pointer], reason)
		return
	}
	fields["/"] = append(fields["/"], err.Error())
}

// DecodeConfig validates a JSON body and applies it over base. Absent fields
// keep the base value.
func (s *Spec) DecodeConfig(data []byte, base script.Config) (script.Config, error) {
	body := map[string]any{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &body); err != nil {
			return base, fmt.Errorf("%w: decode body: %v", ErrInvalidConfig, err)
		}
	}
	if err := s.ValidateConfig(body); err != nil {
		return base, err
	}

	var fields script.Fields
	if v, ok := body["mode"].(string); ok {
		fields.Mode = v
	}
	if v, ok := body["useGpu"].(bool); ok {
		fields.Device = script.DeviceCPU
		if v {
			fields.Device = "gpu"
		}
	}
	if v, ok := body["modelSize"].(string); ok {
		fields.Model = v
	}
	if v, ok := body["language"].(string); ok {
		fields.Language = v
	}
	return fields.Apply(base)
}
