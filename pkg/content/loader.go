package content

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	guideFile        = "guide.yaml"
	architectureFile = "architecture.yaml"
	generatorFile    = "generator.yaml"
)

var ErrEmptyCatalog = errors.New("content: catalog file is empty")

// Default loads the embedded catalog. The embedded files are part of the
// build, so failure is a programming error.
func Default() *Catalog {
	catalog, err := LoadFS(EmbeddedFS())
	if err != nil {
		panic(err)
	}
	return catalog
}

// LoadFS parses guide.yaml, architecture.yaml and generator.yaml from fsys
// and sanitises every markup field.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	if fsys == nil {
		return nil, errors.New("content: filesystem is nil")
	}

	catalog := &Catalog{}
	if err := decodeFile(fsys, guideFile, &catalog.Guide); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, architectureFile, &catalog.Architecture); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, generatorFile, &catalog.Generator); err != nil {
		return nil, err
	}

	if err := normaliseGuide(&catalog.Guide); err != nil {
		return nil, err
	}
	if err := normaliseArchitecture(&catalog.Architecture); err != nil {
		return nil, err
	}
	catalog.Generator.NextSteps.HTML = renderInline(catalog.Generator.NextSteps.Body)
	return catalog, nil
}

func decodeFile(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("content: read %s: %w", name, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyCatalog, name)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("content: parse %s: %w", name, err)
	}
	return nil
}

func normaliseGuide(g *Guide) error {
	if len(g.Steps) == 0 {
		return errors.New("content: guide defines no steps")
	}
	for i := range g.Steps {
		step := &g.Steps[i]
		step.Number = i + 1
		step.Last = i == len(g.Steps)-1
		step.Title = strings.TrimSpace(step.Title)
		step.Command = strings.TrimSpace(step.Command)
		if step.Title == "" {
			return fmt.Errorf("content: guide step %d has no title", step.Number)
		}
	}
	g.Callout.HTML = renderInline(g.Callout.Body)
	return nil
}

func normaliseArchitecture(a *Architecture) error {
	if len(a.Tiers) == 0 {
		return errors.New("content: architecture defines no tiers")
	}
	for i := range a.Tiers {
		tier := &a.Tiers[i]
		tier.Group = strings.TrimSpace(tier.Group)
		if len(tier.Nodes) == 0 {
			return fmt.Errorf("content: architecture tier %d has no nodes", i+1)
		}
	}
	for i := range a.Tiers {
		tier := &a.Tiers[i]
		if tier.Group == "" {
			continue
		}
		tier.OpensGroup = i == 0 || a.Tiers[i-1].Group != tier.Group
		tier.ClosesGroup = i == len(a.Tiers)-1 || a.Tiers[i+1].Group != tier.Group
	}
	for i := range a.Notes {
		a.Notes[i].HTML = renderInline(a.Notes[i].Body)
	}
	return nil
}
