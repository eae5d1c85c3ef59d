package orchestrator

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-asrdeploy/pkg/render"
	"github.com/goliatone/go-asrdeploy/pkg/script"
	"github.com/goliatone/go-asrdeploy/pkg/view"
)

// Page assembles the data for req.View without rendering it.
func (o *Orchestrator) Page(req Request) (view.Page, error) {
	if err := o.initialiseErr; err != nil {
		return view.Page{}, err
	}

	name := req.View
	if name == "" {
		name = view.Generator
	}
	name, err := view.Parse(string(name))
	if err != nil {
		return view.Page{}, fmt.Errorf("orchestrator: %w", err)
	}

	page := view.Page{
		View:     name,
		Title:    name.Label(),
		AppTitle: view.AppTitle,
		Footer:   defaultFooter,
		BasePath: o.basePath,
		Nav:      view.Navigation(name, o.basePath),
	}

	switch name {
	case view.Generator:
		page.Generator = o.generatorData(req.Config, req.Errors)
	case view.Architecture:
		architecture := o.catalog.Architecture
		page.Architecture = &architecture
	case view.Guide:
		guide := o.catalog.Guide
		page.Guide = &guide
	case view.Prototype:
		page.Prototype = o.prototypeData()
	}
	return page, nil
}

func (o *Orchestrator) generatorData(cfg script.Config, mapping render.ErrorMapping) *view.GeneratorData {
	if err := cfg.Validate(); err != nil {
		invalid := render.MapConfigError(err)
		mapping = mergeMappings(mapping, invalid)
		cfg = script.Default()
	}

	return &view.GeneratorData{
		Config:     cfg,
		Document:   script.Render(cfg),
		Options:    view.BuildFormOptions(cfg, o.allowed),
		GPUWarning: cfg.UseAcceleration,
		Copy:       o.catalog.Generator,
		Errors:     mapping.Fields,
		FormErrors: mapping.Form,
	}
}

func (o *Orchestrator) prototypeData() *view.PrototypeData {
	proto := o.catalog.Generator.Prototype
	return &view.PrototypeData{
		AppName:    proto.AppName,
		ModelBadge: proto.ModelBadge,
		Caption:    proto.Caption,
		Phrases:    append([]string(nil), o.demoPhrases...),
		IntervalMS: o.demoInterval.Milliseconds(),
		FinalizeMS: o.demoFinalize.Milliseconds(),
		StreamPath: o.streamPath,
	}
}

func mergeMappings(base, extra render.ErrorMapping) render.ErrorMapping {
	out := render.ErrorMapping{Form: render.MergeFormErrors(base.Form, extra.Form...)}
	for _, src := range []map[string][]string{base.Fields, extra.Fields} {
		for field, messages := range src {
			if out.Fields == nil {
				out.Fields = make(map[string][]string)
			}
			out.Fields[field] = render.MergeFormErrors(out.Fields[field], messages...)
		}
	}
	return out
}

func normalizeBasePath(prefix string) string {
	trimmed := strings.Trim(strings.TrimSpace(prefix), "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}
