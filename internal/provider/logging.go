package provider

import (
	"context"
	"fmt"
	"io"
	"time"
)

// LoggingProvider writes one line per request to a writer.
type LoggingProvider struct {
	inner Provider
	w     io.Writer
	now   func() time.Time
}

// WithLogging wraps p so every call is logged to w. A nil w disables logging.
func WithLogging(p Provider, w io.Writer) Provider {
	if w == nil {
		return p
	}
	return &LoggingProvider{inner: p, w: w, now: time.Now}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := l.now()
	resp, err := l.inner.Generate(ctx, req)
	latency := l.now().Sub(start)

	model := l.inner.ModelID()
	var in, out int
	if resp != nil {
		if resp.Model != "" {
			model = resp.Model
		}
		in, out = resp.Usage.InputTokens, resp.Usage.OutputTokens
	}
	line := fmt.Sprintf("provider: model=%s topic=%q latency=%dms tokens=%d/%d", model, req.Topic, latency.Milliseconds(), in, out)
	if err != nil {
		line += fmt.Sprintf(" error=%q", err.Error())
	}
	if _, werr := fmt.Fprintln(l.w, line); werr != nil {
		// Best-effort logging.
		_ = werr
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }
