package view

import (
	"errors"
	"fmt"
	"strings"
)

// Name identifies one of the application's tabs.
type Name string

const (
	Generator    Name = "generator"
	Architecture Name = "architecture"
	Guide        Name = "guide"
	Prototype    Name = "prototype"
)

// ErrUnknownView is returned by Parse for names outside All().
var ErrUnknownView = errors.New("view: unknown view")

// All lists the tabs in navigation order.
func All() []Name {
	return []Name{Generator, Architecture, Guide, Prototype}
}

// Parse resolves a tab name, case-insensitively.
func Parse(raw string) (Name, error) {
	candidate := Name(strings.ToLower(strings.Trim(strings.TrimSpace(raw), "/")))
	for _, name := range All() {
		if name == candidate {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, raw)
}

// Label is the navigation caption.
func (n Name) Label() string {
	switch n {
	case Generator:
		return "Script Generator"
	case Architecture:
		return "Architecture"
	case Guide:
		return "Setup Guide"
	case Prototype:
		return "App Prototype"
	}
	return string(n)
}

// Icon is the glyph identifier templates map to an inline icon.
func (n Name) Icon() string {
	switch n {
	case Generator:
		return "terminal"
	case Architecture:
		return "cpu"
	case Guide:
		return "book"
	case Prototype:
		return "smartphone"
	}
	return ""
}

// Path joins the view under basePath.
func (n Name) Path(basePath string) string {
	base := strings.TrimRight(basePath, "/")
	return base + "/" + string(n)
}

// NavItem is a rendered navigation entry.
type NavItem struct {
	Name   Name   `json:"name"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Path   string `json:"path"`
	Active bool   `json:"active"`
}

// Navigation builds the tab bar with active highlighted.
func Navigation(active Name, basePath string) []NavItem {
	items := make([]NavItem, 0, len(All()))
	for _, name := range All() {
		items = append(items, NavItem{
			Name:   name,
			Label:  name.Label(),
			Icon:   name.Icon(),
			Path:   name.Path(basePath),
			Active: name == active,
		})
	}
	return items
}
