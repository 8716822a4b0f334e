//go:build unix

package input

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// Terminal owns the raw-mode state of the controlling terminal for one typing attempt.
// Close must be deferred right after a successful Open.
type Terminal struct {
	out     *os.File
	inFd    int
	outFd   int
	saved   *term.State
	buf     []byte
	pending []byte
}

// Open saves the current mode of in and switches it to raw, unbuffered, no-echo input.
func Open(in, out *os.File) (*Terminal, error) {
	inFd := int(in.Fd())
	if !term.IsTerminal(inFd) {
		return nil, fmt.Errorf("%w: stdin is not a terminal", ErrTerminalUnavailable)
	}
	saved, err := term.MakeRaw(inFd)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to enter raw mode: %v", ErrTerminalUnavailable, err)
	}
	return &Terminal{
		out:   out,
		inFd:  inFd,
		outFd: int(out.Fd()),
		saved: saved,
		buf:   make([]byte, 64),
	}, nil
}

// Close restores the saved terminal mode. Calling it again is a no-op.
func (t *Terminal) Close() error {
	if t.saved == nil {
		return nil
	}
	err := term.Restore(t.inFd, t.saved)
	t.saved = nil
	if err != nil {
		return fmt.Errorf("%w: failed to restore terminal: %v", ErrTerminalUnavailable, err)
	}
	return nil
}

// ReadByte blocks until a byte arrives.
func (t *Terminal) ReadByte() (byte, error) {
	for {
		b, ok, err := t.read(-1)
		if err != nil {
			return 0, err
		}
		if ok {
			return b, nil
		}
	}
}

// ReadByteTimeout waits at most d for a byte.
func (t *Terminal) ReadByteTimeout(d time.Duration) (byte, bool, error) {
	ms := int(d / time.Millisecond)
	if ms < 0 {
		ms = 0
	}
	return t.read(ms)
}

func (t *Terminal) read(timeoutMs int) (byte, bool, error) {
	if len(t.pending) > 0 {
		b := t.pending[0]
		t.pending = t.pending[1:]
		return b, true, nil
	}
	fds := []unix.PollFd{{Fd: int32(t.inFd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, timeoutMs)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return 0, false, err
		}
		if n == 0 {
			return 0, false, nil
		}
		rn, err := unix.Read(t.inFd, t.buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return 0, false, err
		}
		if rn == 0 {
			return 0, false, io.EOF
		}
		t.pending = append(t.pending[:0], t.buf[1:rn]...)
		return t.buf[0], true, nil
	}
}

// Size returns the terminal width and height, falling back to 80x24.
func (t *Terminal) Size() (int, int) {
	w, h, err := term.GetSize(t.outFd)
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

// Write implements io.Writer on the terminal output.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}
