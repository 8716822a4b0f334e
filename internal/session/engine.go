// Package session runs typing attempts: the keystroke state machine and the
// repeat/new-text loop around it.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/termtyper/internal/input"
	"github.com/verte-zerg/termtyper/internal/stats"
)

// ErrEmptyReference is returned when an attempt is requested for empty text.
var ErrEmptyReference = errors.New("reference text is empty")

// State is the lifecycle stage of an attempt.
type State uint8

const (
	StateIdle State = iota
	StateActive
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// KeySource yields classified key events. input.Reader implements it.
type KeySource interface {
	ReadKey() (input.Event, error)
}

// View draws one frame. tui.Renderer implements it.
type View interface {
	Render(reference, typed []rune) error
}

// Result is the raw record of a finished attempt.
type Result struct {
	Typed      []rune
	Reference  []rune
	StartedAt  time.Time
	EndedAt    time.Time
	Cancelled  bool
	Keystrokes int
	Mistakes   int // live count of mismatching keystrokes, including corrected ones
}

// Outcome pairs a result with the metrics derived from it.
type Outcome struct {
	Result  Result
	Metrics stats.Snapshot
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine owns the typed buffer of a single attempt.
type Engine struct {
	reference []rune
	typed     []rune
	state     State
	now       func() time.Time

	startedAt  time.Time
	endedAt    time.Time
	keystrokes int
	mistakes   int
}

// NewEngine returns an idle engine for reference.
func NewEngine(reference string, opts ...Option) (*Engine, error) {
	if reference == "" {
		return nil, ErrEmptyReference
	}
	e := &Engine{
		reference: []rune(reference),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// State reports where the attempt is in its lifecycle.
func (e *Engine) State() State { return e.state }

// Typed returns a copy of the typed buffer.
func (e *Engine) Typed() []rune { return append([]rune(nil), e.typed...) }

// Reference returns a copy of the reference text.
func (e *Engine) Reference() []rune { return append([]rune(nil), e.reference...) }

// Start resets the buffer and counters and begins timing. Calling it again
// restarts the attempt with the same reference.
func (e *Engine) Start() {
	e.typed = make([]rune, 0, len(e.reference))
	e.keystrokes = 0
	e.mistakes = 0
	e.endedAt = time.Time{}
	e.startedAt = e.now()
	e.state = StateActive
}

// Apply feeds one event to the state machine and reports whether the frame
// needs to be redrawn. Events outside the active state are dropped.
func (e *Engine) Apply(ev input.Event) bool {
	if e.state != StateActive {
		return false
	}
	switch ev.Kind {
	case input.KeyPrintable:
		pos := len(e.typed)
		e.typed = append(e.typed, ev.Rune)
		e.keystrokes++
		if pos < len(e.reference) && e.reference[pos] != ev.Rune {
			e.mistakes++
		}
		if len(e.typed) == len(e.reference) {
			e.finish(StateCompleted)
		}
		return true
	case input.KeyBackspace:
		if len(e.typed) == 0 {
			return false
		}
		e.typed = e.typed[:len(e.typed)-1]
		return true
	case input.KeyEscape:
		e.finish(StateCancelled)
		return false
	default:
		return false
	}
}

func (e *Engine) finish(state State) {
	e.state = state
	e.endedAt = e.now()
}

// Result snapshots the attempt. EndedAt is zero while the attempt is running.
func (e *Engine) Result() Result {
	return Result{
		Typed:      e.Typed(),
		Reference:  e.Reference(),
		StartedAt:  e.startedAt,
		EndedAt:    e.endedAt,
		Cancelled:  e.state == StateCancelled,
		Keystrokes: e.keystrokes,
		Mistakes:   e.mistakes,
	}
}

// Run drives one attempt to completion or cancellation. An idle engine is
// started first; a finished one is restarted.
func (e *Engine) Run(keys KeySource, view View) (Outcome, error) {
	if e.state != StateActive {
		e.Start()
	}
	if err := view.Render(e.reference, e.typed); err != nil {
		return Outcome{}, fmt.Errorf("failed to render frame: %w", err)
	}
	for e.state == StateActive {
		ev, err := keys.ReadKey()
		if err != nil {
			return Outcome{}, fmt.Errorf("failed to read key: %w", err)
		}
		if !e.Apply(ev) {
			continue
		}
		if err := view.Render(e.reference, e.typed); err != nil {
			return Outcome{}, fmt.Errorf("failed to render frame: %w", err)
		}
	}
	res := e.Result()
	return Outcome{
		Result:  res,
		Metrics: stats.Compute(res.Typed, res.Reference, res.StartedAt, res.EndedAt),
	}, nil
}
