package session

import (
	"sync"

	"github.com/goliatone/go-asrdeploy/pkg/script"
)

// Listener receives every configuration installed by the holder.
type Listener func(script.Config)

// Holder keeps the current configuration for an interactive surface. Values
// are replaced wholesale; readers always see a complete Config.
type Holder struct {
	mu        sync.RWMutex
	current   script.Config
	version   uint64
	listeners map[uint64]Listener
	nextID    uint64
}

// NewHolder seeds a holder with initial. An invalid initial value falls back
// to script.Default so the holder never stores an out-of-range field.
func NewHolder(initial script.Config) *Holder {
	if initial.Validate() != nil {
		initial = script.Default()
	}
	return &Holder{
		current:   initial,
		listeners: make(map[uint64]Listener),
	}
}

// Current returns the installed configuration.
func (h *Holder) Current() script.Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Version increments on every successful replacement.
func (h *Holder) Version() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.version
}

// Replace installs next after validating it.
func (h *Holder) Replace(next script.Config) error {
	if err := next.Validate(); err != nil {
		return err
	}
	h.mu.Lock()
	h.current = next
	h.version++
	listeners := h.snapshotListeners()
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return nil
}

// Update derives the next configuration from the current one. fn receives a
// copy, so partial edits inside fn are never visible to other readers.
func (h *Holder) Update(fn func(script.Config) script.Config) (script.Config, error) {
	h.mu.Lock()
	next := fn(h.current)
	if err := next.Validate(); err != nil {
		current := h.current
		h.mu.Unlock()
		return current, err
	}
	h.current = next
	h.version++
	listeners := h.snapshotListeners()
	h.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return next, nil
}

// Document composes the script for the installed configuration.
func (h *Holder) Document() script.Document {
	return script.Render(h.Current())
}

// Subscribe registers fn and returns a function that removes it.
func (h *Holder) Subscribe(fn Listener) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners, id)
			h.mu.Unlock()
		})
	}
}

func (h *Holder) snapshotListeners() []Listener {
	if len(h.listeners) == 0 {
		return nil
	}
	out := make([]Listener, 0, len(h.listeners))
	for _, fn := range h.listeners {
		out = append(out, fn)
	}
	return out
}
