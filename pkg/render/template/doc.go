// Package template defines the template engine seam renderers depend on.
// Concrete engines live in subpackages.
package template
