package demo

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const (
	DefaultInterval      = 2 * time.Second
	DefaultFinalizeDelay = 1500 * time.Millisecond
)

// ErrRunning is returned when Start is called on a running transcript.
var ErrRunning = errors.New("demo: transcript already running")

// DefaultPhrases is the scripted text the prototype view cycles through.
func DefaultPhrases() []string {
	return []string{
		"Testing the Qwen model...",
		"Running locally on Android...",
		"Traditional Chinese support is enabled...",
		"Privacy is preserved...",
		"No server upload required.",
	}
}

// EventType distinguishes in-progress text from committed text.
type EventType string

const (
	EventPartial EventType = "partial"
	EventFinal   EventType = "final"
	EventStopped EventType = "stopped"
)

// Event is one update of the simulated transcript.
type Event struct {
	Type       EventType `json:"type"`
	Seq        int       `json:"seq"`
	Text       string    `json:"text"`
	Transcript string    `json:"transcript"`
}

// Sink receives events. It runs on the ticker goroutine or a timer goroutine
// and must not call Stop.
type Sink func(Event)

// Option configures a Transcript.
type Option func(*Transcript)

// WithInterval sets the time between phrases.
func WithInterval(d time.Duration) Option {
	return func(t *Transcript) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithFinalizeDelay sets how long a phrase stays partial before it is
// committed to the transcript.
func WithFinalizeDelay(d time.Duration) Option {
	return func(t *Transcript) {
		if d > 0 {
			t.finalizeDelay = d
		}
	}
}

// WithPhrases overrides the scripted phrases. Empty lists are ignored.
func WithPhrases(phrases []string) Option {
	return func(t *Transcript) {
		cleaned := make([]string, 0, len(phrases))
		for _, p := range phrases {
			if p = strings.TrimSpace(p); p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			t.phrases = cleaned
		}
	}
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transcript) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// Transcript fakes a streaming recognizer: every interval it publishes the
// next phrase as a partial and commits it after the finalize delay. Once Stop
// returns no further events are delivered.
type Transcript struct {
	interval      time.Duration
	finalizeDelay time.Duration
	phrases       []string
	sink          Sink
	logger        *slog.Logger

	// emitMu serialises sink calls with Stop.
	emitMu sync.Mutex

	mu      sync.Mutex
	running bool
	gen     uint64
	index   int
	seq     int
	text    strings.Builder
	timerID uint64
	pending map[uint64]*time.Timer
	cancel  context.CancelFunc
	done    chan struct{}
}

// New builds a stopped transcript delivering events to sink.
func New(sink Sink, opts ...Option) *Transcript {
	t := &Transcript{
		interval:      DefaultInterval,
		finalizeDelay: DefaultFinalizeDelay,
		phrases:       DefaultPhrases(),
		sink:          sink,
		logger:        slog.Default(),
		pending:       make(map[uint64]*time.Timer),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(t)
	}
	if t.sink == nil {
		t.sink = func(Event) {}
	}
	return t
}

// Start begins emitting events until Stop is called or ctx is cancelled.
func (t *Transcript) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return ErrRunning
	}
	t.running = true
	t.gen++
	t.index = 0
	gen := t.gen
	loopCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})
	done := t.done
	t.mu.Unlock()

	t.logger.Debug("demo transcript started", "interval", t.interval, "phrases", len(t.phrases))
	go t.loop(loopCtx, gen, done)
	return nil
}

// Stop cancels the ticker and every pending finalize timer. It is safe to
// call more than once.
func (t *Transcript) Stop() {
	cancel, done, stopped := t.halt(0)
	if !stopped {
		return
	}
	cancel()
	<-done
}

// Running reports whether the transcript is emitting events.
func (t *Transcript) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Reset clears the committed transcript. It has no effect while running.
func (t *Transcript) Reset() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return false
	}
	t.text.Reset()
	t.seq = 0
	return true
}

// Text returns the committed transcript.
func (t *Transcript) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text.String()
}

func (t *Transcript) loop(ctx context.Context, gen uint64, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if cancel, _, ok := t.halt(gen); ok {
				cancel()
			}
			return
		case <-ticker.C:
			t.tick(gen)
		}
	}
}

func (t *Transcript) tick(gen uint64) {
	t.mu.Lock()
	if !t.activeLocked(gen) {
		t.mu.Unlock()
		return
	}
	phrase := t.phrases[t.index%len(t.phrases)]
	t.seq++
	ev := Event{Type: EventPartial, Seq: t.seq, Text: phrase, Transcript: t.text.String()}
	t.mu.Unlock()

	t.emit(gen, ev)

	// The finalize timer is armed after the partial went out so the final
	// event can never overtake it.
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.activeLocked(gen) {
		return
	}
	t.timerID++
	id := t.timerID
	t.pending[id] = time.AfterFunc(t.finalizeDelay, func() {
		t.finalize(gen, phrase, id)
	})
}

func (t *Transcript) finalize(gen uint64, phrase string, id uint64) {
	t.mu.Lock()
	delete(t.pending, id)
	if !t.activeLocked(gen) {
		t.mu.Unlock()
		return
	}
	t.text.WriteString(phrase)
	t.text.WriteString(" ")
	t.index++
	t.seq++
	ev := Event{Type: EventFinal, Seq: t.seq, Text: phrase, Transcript: t.text.String()}
	t.mu.Unlock()

	t.emit(gen, ev)
}

// emit delivers ev only while generation gen is still active.
func (t *Transcript) emit(gen uint64, ev Event) {
	t.emitMu.Lock()
	defer t.emitMu.Unlock()

	t.mu.Lock()
	ok := t.activeLocked(gen)
	t.mu.Unlock()
	if !ok {
		return
	}
	t.sink(ev)
}

// halt deactivates the current generation (or only gen when non-zero) and
// stops pending timers.
func (t *Transcript) halt(gen uint64) (context.CancelFunc, chan struct{}, bool) {
	t.emitMu.Lock()
	defer t.emitMu.Unlock()

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running || (gen != 0 && gen != t.gen) {
		return nil, nil, false
	}
	t.running = false
	t.gen++
	for id, timer := range t.pending {
		timer.Stop()
		delete(t.pending, id)
	}
	t.logger.Debug("demo transcript stopped", "committed", t.index)
	return t.cancel, t.done, true
}

func (t *Transcript) activeLocked(gen uint64) bool {
	return t.running && gen == t.gen
}
