// Package input reads raw keystrokes and classifies them into typing events.
package input

import (
	"errors"
	"time"
)

// ErrTerminalUnavailable reports that the terminal mode could not be queried, set or restored.
var ErrTerminalUnavailable = errors.New("terminal unavailable")

// KeyKind classifies a single input unit.
type KeyKind uint8

const (
	// KeyIgnored is input that must not touch the typed buffer (arrow keys, control bytes).
	KeyIgnored KeyKind = iota
	// KeyPrintable carries a character to append.
	KeyPrintable
	// KeyBackspace removes the last typed character.
	KeyBackspace
	// KeyEscape cancels the attempt.
	KeyEscape
)

func (k KeyKind) String() string {
	switch k {
	case KeyPrintable:
		return "printable"
	case KeyBackspace:
		return "backspace"
	case KeyEscape:
		return "escape"
	default:
		return "ignored"
	}
}

// Event is a classified keystroke.
type Event struct {
	Kind KeyKind
	Rune rune
}

// Printable returns a printable event for r.
func Printable(r rune) Event {
	return Event{Kind: KeyPrintable, Rune: r}
}

// Source yields raw input bytes.
//
// ReadByte blocks until a byte is available. ReadByteTimeout waits at most d and
// reports ok=false when nothing arrived in time.
type Source interface {
	ReadByte() (byte, error)
	ReadByteTimeout(d time.Duration) (b byte, ok bool, err error)
}
