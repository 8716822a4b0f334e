package session

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/termtyper/internal/input"
)

type scriptedKeys struct {
	events []input.Event
	reads  int
	err    error
}

func (s *scriptedKeys) ReadKey() (input.Event, error) {
	if s.reads >= len(s.events) {
		if s.err != nil {
			return input.Event{}, s.err
		}
		return input.Event{}, io.EOF
	}
	ev := s.events[s.reads]
	s.reads++
	return ev, nil
}

type recordingView struct {
	frames []string
	err    error
}

func (v *recordingView) Render(_, typed []rune) error {
	if v.err != nil {
		return v.err
	}
	v.frames = append(v.frames, string(typed))
	return nil
}

// stepClock advances by step on every call.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

func keys(s string) []input.Event {
	var out []input.Event
	for _, r := range s {
		out = append(out, input.Printable(r))
	}
	return out
}

var (
	backspace = input.Event{Kind: input.KeyBackspace}
	escape    = input.Event{Kind: input.KeyEscape}
	ignore    = input.Event{Kind: input.KeyIgnored}
)

func TestNewEngineRejectsEmptyReference(t *testing.T) {
	if _, err := NewEngine(""); !errors.Is(err, ErrEmptyReference) {
		t.Fatalf("expected ErrEmptyReference, got %v", err)
	}
}

func TestRunCompletesWithMetrics(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	engine, err := NewEngine("cat", WithClock(stepClock(start, 30*time.Second)))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	src := &scriptedKeys{events: keys("cbt")}
	view := &recordingView{}

	out, err := engine.Run(src, view)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if engine.State() != StateCompleted {
		t.Fatalf("expected completed, got %s", engine.State())
	}
	if diff := cmp.Diff([]string{"", "c", "cb", "cbt"}, view.frames); diff != "" {
		t.Fatalf("frames mismatch (-want +got):\n%s", diff)
	}
	res := out.Result
	if string(res.Typed) != "cbt" || res.Cancelled || res.Keystrokes != 3 || res.Mistakes != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := res.EndedAt.Sub(res.StartedAt); got != 30*time.Second {
		t.Fatalf("expected 30s elapsed, got %s", got)
	}
	if out.Metrics.CorrectChars != 2 || out.Metrics.WPM != 1.2 {
		t.Fatalf("unexpected metrics: %+v", out.Metrics)
	}
}

func TestRunEscapeStopsProcessing(t *testing.T) {
	engine, _ := NewEngine("hello", WithClock(stepClock(time.Unix(0, 0), time.Second)))
	events := append(keys("he"), escape)
	events = append(events, keys("llo")...)
	src := &scriptedKeys{events: events}
	view := &recordingView{}

	out, err := engine.Run(src, view)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if src.reads != 3 {
		t.Fatalf("expected reading to stop at escape, read %d events", src.reads)
	}
	if !out.Result.Cancelled || string(out.Result.Typed) != "he" {
		t.Fatalf("unexpected result: %+v", out.Result)
	}
	if len(view.frames) != 3 {
		t.Fatalf("escape must not redraw, got frames %q", view.frames)
	}
	// further events are dropped once cancelled
	if engine.Apply(input.Printable('l')) || len(engine.Typed()) != 2 {
		t.Fatalf("expected events after cancel to be ignored")
	}
}

func TestRunImmediateEscapeYieldsZeroMetrics(t *testing.T) {
	start := time.Unix(0, 0)
	engine, _ := NewEngine("hi", WithClock(func() time.Time { return start }))
	out, err := engine.Run(&scriptedKeys{events: []input.Event{escape}}, &recordingView{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	m := out.Metrics
	if m.Accuracy != 0 || m.WPM != 0 || len(m.Errors) != 0 {
		t.Fatalf("expected zero metrics, got %+v", m)
	}
}

func TestIgnoredSequencesDoNotMutateOrRender(t *testing.T) {
	engine, _ := NewEngine("ab")
	events := []input.Event{input.Printable('a'), ignore, ignore, ignore, input.Printable('b')}
	view := &recordingView{}
	if _, err := engine.Run(&scriptedKeys{events: events}, view); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]string{"", "a", "ab"}, view.frames); diff != "" {
		t.Fatalf("frames mismatch (-want +got):\n%s", diff)
	}
}

func TestArrowKeysThroughReaderDoNotMutate(t *testing.T) {
	engine, _ := NewEngine("ab")
	// ESC [ A arrives as one burst, so the escape is a sequence, not a cancel.
	src := &burstSource{chunks: [][]byte{[]byte("a"), []byte("\x1b[A"), []byte("b")}}
	view := &recordingView{}
	out, err := engine.Run(input.NewReader(src, time.Millisecond), view)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.Result.Cancelled || string(out.Result.Typed) != "ab" {
		t.Fatalf("unexpected result: %+v", out.Result)
	}
	if len(view.frames) != 3 {
		t.Fatalf("expected 3 frames, got %q", view.frames)
	}
}

func TestBackspaceOnEmptyBufferIsNoop(t *testing.T) {
	engine, _ := NewEngine("ab")
	engine.Start()
	if engine.Apply(backspace) {
		t.Fatalf("backspace on empty buffer must not request a redraw")
	}
	if len(engine.Typed()) != 0 || engine.State() != StateActive {
		t.Fatalf("unexpected engine state after backspace")
	}

	engine.Apply(input.Printable('x'))
	if !engine.Apply(backspace) || len(engine.Typed()) != 0 {
		t.Fatalf("expected backspace to drop the last rune")
	}
	if engine.Result().Mistakes != 1 {
		t.Fatalf("corrected mistakes stay counted")
	}
}

func TestCompletedTypedMatchesReferenceLength(t *testing.T) {
	engine, _ := NewEngine("héllo wörld")
	events := keys("hxllo")
	events = append(events, backspace, backspace, backspace, backspace)
	events = append(events, keys("éllo wörld")...)
	events = append(events, keys("extra")...)
	src := &scriptedKeys{events: events}
	out, err := engine.Run(src, &recordingView{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(out.Result.Typed) != len(out.Result.Reference) {
		t.Fatalf("typed %d runes, reference %d", len(out.Result.Typed), len(out.Result.Reference))
	}
	if out.Metrics.Accuracy != 100 {
		t.Fatalf("expected perfect accuracy, got %v", out.Metrics.Accuracy)
	}
	if src.reads != len(events)-5 {
		t.Fatalf("expected reading to stop on completion, read %d", src.reads)
	}
}

func TestRunPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	engine, _ := NewEngine("ab")
	if _, err := engine.Run(&scriptedKeys{err: boom}, &recordingView{}); !errors.Is(err, boom) {
		t.Fatalf("expected read error, got %v", err)
	}

	engine, _ = NewEngine("ab")
	if _, err := engine.Run(&scriptedKeys{}, &recordingView{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("expected render error, got %v", err)
	}
}

func TestRunRestartsFinishedEngine(t *testing.T) {
	engine, _ := NewEngine("a")
	if _, err := engine.Run(&scriptedKeys{events: keys("b")}, &recordingView{}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	out, err := engine.Run(&scriptedKeys{events: keys("a")}, &recordingView{})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if string(out.Result.Typed) != "a" || out.Result.Mistakes != 0 {
		t.Fatalf("expected a fresh attempt, got %+v", out.Result)
	}
}

func TestStateString(t *testing.T) {
	if StateCancelled.String() != "cancelled" || State(9).String() != "state(9)" {
		t.Fatalf("unexpected state names")
	}
}

// burstSource delivers each chunk as one burst; a timed read at a chunk boundary times out.
type burstSource struct {
	chunks [][]byte
	pos    int
}

func (s *burstSource) ReadByte() (byte, error) {
	for len(s.chunks) > 0 && s.pos >= len(s.chunks[0]) {
		s.chunks = s.chunks[1:]
		s.pos = 0
	}
	if len(s.chunks) == 0 {
		return 0, io.EOF
	}
	b := s.chunks[0][s.pos]
	s.pos++
	return b, nil
}

func (s *burstSource) ReadByteTimeout(time.Duration) (byte, bool, error) {
	if len(s.chunks) == 0 || s.pos >= len(s.chunks[0]) {
		return 0, false, nil
	}
	b := s.chunks[0][s.pos]
	s.pos++
	return b, true, nil
}
