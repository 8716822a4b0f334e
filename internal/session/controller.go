package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/muesli/termenv"

	"github.com/verte-zerg/termtyper/internal/input"
	"github.com/verte-zerg/termtyper/internal/stats"
	"github.com/verte-zerg/termtyper/internal/tui"
)

const (
	repeatQuestion  = "Would you like to try the same text again?"
	newTextQuestion = "Would you like to practice with new text?"
)

// Decision tells the caller what to do once the user stops repeating a text.
type Decision uint8

const (
	DecisionNewText Decision = iota + 1
	DecisionExit
)

func (d Decision) String() string {
	switch d {
	case DecisionNewText:
		return "new-text"
	case DecisionExit:
		return "exit"
	default:
		return fmt.Sprintf("decision(%d)", uint8(d))
	}
}

// AttemptFunc runs one typing attempt over reference.
type AttemptFunc func(ctx context.Context, reference string) (Outcome, error)

// Prompter asks yes/no questions between attempts.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// Controller runs attempts over one text and asks whether to repeat it.
type Controller struct {
	Attempt  AttemptFunc
	Prompter Prompter
	Out      io.Writer
}

// Practice repeats attempts over reference until the user declines, printing
// the report after each one. Cancelled attempts are reported like finished ones.
func (c *Controller) Practice(ctx context.Context, reference string) (Decision, error) {
	if reference == "" {
		return DecisionExit, ErrEmptyReference
	}
	for {
		if err := ctx.Err(); err != nil {
			return DecisionExit, err
		}
		outcome, err := c.Attempt(ctx, reference)
		if err != nil {
			return DecisionExit, fmt.Errorf("failed to run practice attempt: %w", err)
		}
		res := outcome.Result
		if err := stats.RenderReport(c.out(), outcome.Metrics, len(res.Reference), res.Cancelled); err != nil {
			return DecisionExit, fmt.Errorf("failed to print report: %w", err)
		}

		again, err := c.Prompter.Confirm(repeatQuestion)
		if err != nil {
			return DecisionExit, err
		}
		if again {
			continue
		}
		fresh, err := c.Prompter.Confirm(newTextQuestion)
		if err != nil {
			return DecisionExit, err
		}
		if fresh {
			return DecisionNewText, nil
		}
		return DecisionExit, nil
	}
}

func (c *Controller) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// TerminalConfig configures attempts on the process terminal.
type TerminalConfig struct {
	In            *os.File
	Out           *os.File
	Margin        int
	EscapeTimeout time.Duration

	open func(in, out *os.File) (terminal, error)
}

// terminal is the raw-mode device an attempt runs on. *input.Terminal
// implements it.
type terminal interface {
	input.Source
	io.Writer
	Size() (width, height int)
	Close() error
}

func openTerminal(in, out *os.File) (terminal, error) {
	t, err := input.Open(in, out)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// TerminalAttempt returns an AttemptFunc that puts the terminal in raw mode
// for the duration of each attempt. A failed restore is returned with the
// outcome so the caller can report it.
func TerminalAttempt(cfg TerminalConfig) AttemptFunc {
	if cfg.In == nil {
		cfg.In = os.Stdin
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.open == nil {
		cfg.open = openTerminal
	}
	profile := termenv.NewOutput(cfg.Out).EnvColorProfile()
	return func(ctx context.Context, reference string) (outcome Outcome, err error) {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		engine, err := NewEngine(reference)
		if err != nil {
			return Outcome{}, err
		}
		term, err := cfg.open(cfg.In, cfg.Out)
		if err != nil {
			return Outcome{}, err
		}
		defer func() {
			_, werr := term.Write([]byte("\r\n"))
			if cerr := term.Close(); cerr != nil {
				err = errors.Join(err, cerr)
			} else if werr != nil && err == nil {
				err = fmt.Errorf("failed to write to terminal: %w", werr)
			}
		}()

		reader := input.NewReader(term, cfg.EscapeTimeout)
		view := tui.NewRenderer(term, term.Size, cfg.Margin)
		view.SetColorProfile(profile)
		return engine.Run(reader, view)
	}
}
