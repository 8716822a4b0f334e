//go:build !unix

package input

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Terminal is unavailable on platforms without termios and poll.
type Terminal struct{}

// Open always fails outside unix.
func Open(_, _ *os.File) (*Terminal, error) {
	return nil, fmt.Errorf("%w: raw input is only supported on unix terminals", ErrTerminalUnavailable)
}

func (t *Terminal) Close() error { return nil }

func (t *Terminal) ReadByte() (byte, error) { return 0, io.EOF }

func (t *Terminal) ReadByteTimeout(time.Duration) (byte, bool, error) { return 0, false, io.EOF }

func (t *Terminal) Size() (int, int) { return 80, 24 }

func (t *Terminal) Write(p []byte) (int, error) { return len(p), nil }
