package input

import (
	"time"
	"unicode/utf8"
)

// DefaultEscapeTimeout is how long a lone ESC waits for the rest of a sequence.
const DefaultEscapeTimeout = 100 * time.Millisecond

const (
	keyCtrlC     = 0x03
	keyBackspace = 0x08
	keyEsc       = 0x1b
	keyDelete    = 0x7f

	// Upper bound on bytes swallowed after "ESC [" so a stuck stream cannot hang a keystroke.
	maxSequenceLen = 32
)

type escState uint8

const (
	escIdle escState = iota
	escSawEscape
	escSequence
)

var ignored = Event{Kind: KeyIgnored}

// Reader turns a byte Source into classified key events.
type Reader struct {
	src     Source
	timeout time.Duration
	state   escState
}

// NewReader wraps src. A non-positive escapeTimeout selects DefaultEscapeTimeout.
func NewReader(src Source, escapeTimeout time.Duration) *Reader {
	if escapeTimeout <= 0 {
		escapeTimeout = DefaultEscapeTimeout
	}
	return &Reader{src: src, timeout: escapeTimeout}
}

// ReadKey blocks until one input unit is available and classifies it.
func (r *Reader) ReadKey() (Event, error) {
	b, err := r.src.ReadByte()
	if err != nil {
		return Event{}, err
	}
	switch {
	case b == keyEsc:
		return r.readEscape()
	case b == keyBackspace || b == keyDelete:
		return Event{Kind: KeyBackspace}, nil
	case b == keyCtrlC:
		return Event{Kind: KeyEscape}, nil
	case b < 0x20:
		return ignored, nil
	case b < utf8.RuneSelf:
		return Printable(rune(b)), nil
	default:
		return r.readUTF8(b)
	}
}

// readEscape runs the escape sub-state machine after an ESC byte. A lone ESC is a
// cancel; anything that follows within the timeout is a sequence and is discarded.
func (r *Reader) readEscape() (Event, error) {
	r.state = escSawEscape
	defer func() { r.state = escIdle }()

	final := isCSIFinal
	consumed := 0
	for {
		b, ok, err := r.src.ReadByteTimeout(r.timeout)
		if err != nil {
			return Event{}, err
		}
		switch r.state {
		case escSawEscape:
			if !ok {
				return Event{Kind: KeyEscape}, nil
			}
			switch b {
			case keyEsc:
				// Escape pressed twice in quick succession.
				return Event{Kind: KeyEscape}, nil
			case '[':
				r.state = escSequence
			case 'O':
				final = func(byte) bool { return true }
				r.state = escSequence
			default:
				// Alt chord: ESC followed by a single key.
				return ignored, nil
			}
		case escSequence:
			consumed++
			if !ok || final(b) || consumed >= maxSequenceLen {
				return ignored, nil
			}
		default:
			return ignored, nil
		}
	}
}

func (r *Reader) readUTF8(lead byte) (Event, error) {
	size := utf8SeqLen(lead)
	if size == 0 {
		return ignored, nil
	}
	buf := make([]byte, 1, utf8.UTFMax)
	buf[0] = lead
	for len(buf) < size {
		b, ok, err := r.src.ReadByteTimeout(r.timeout)
		if err != nil {
			return Event{}, err
		}
		if !ok {
			return ignored, nil
		}
		buf = append(buf, b)
	}
	ch, _ := utf8.DecodeRune(buf)
	if ch == utf8.RuneError {
		return ignored, nil
	}
	return Printable(ch), nil
}

func utf8SeqLen(lead byte) int {
	switch {
	case lead&0xe0 == 0xc0:
		return 2
	case lead&0xf0 == 0xe0:
		return 3
	case lead&0xf8 == 0xf0:
		return 4
	default:
		return 0
	}
}

func isCSIFinal(b byte) bool {
	return b >= 0x40 && b <= 0x7e
}
