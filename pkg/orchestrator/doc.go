// Package orchestrator wires configuration → page data → theme → renderer,
// providing dependency injection friendly helpers for callers that prefer a
// single entry point.
package orchestrator
