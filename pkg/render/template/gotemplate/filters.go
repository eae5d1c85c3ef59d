package gotemplate

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/flosch/pongo2/v6"
)

var defaultFiltersOnce sync.Once

// registerDefaultFilters installs the helpers bundled templates rely on. pongo2
// keeps filters in a global table, so this only runs once per process.
func registerDefaultFilters() {
	defaultFiltersOnce.Do(func() {
		for name, fn := range map[string]pongo2.FilterFunction{
			"trim":      filterTrim,
			"indent":    filterIndent,
			"underline": filterUnderline,
		} {
			if !pongo2.FilterExists(name) {
				_ = pongo2.RegisterFilter(name, fn)
			}
		}
	})
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterIndent prefixes every non-blank line with param spaces (default 2).
func filterIndent(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	width := 2
	if param != nil && !param.IsNil() && param.Integer() > 0 {
		width = param.Integer()
	}
	pad := strings.Repeat(" ", width)

	lines := strings.Split(in.String(), "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines[i] = pad + line
	}
	return pongo2.AsValue(strings.Join(lines, "\n")), nil
}

// filterUnderline returns a rule as wide as the input, drawn with param
// (default "=").
func filterUnderline(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	mark := "="
	if param != nil && !param.IsNil() && param.String() != "" {
		mark = param.String()
	}
	width := utf8.RuneCountInString(strings.TrimSpace(in.String()))
	return pongo2.AsValue(strings.Repeat(mark, width)), nil
}
