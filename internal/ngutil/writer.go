// Package ngutil holds small internal helpers shared by the bytecode VM's
// trace output and the lang package's print plumbing.
package ngutil

import (
	"io"

	"github.com/pkg/errors"
)

// TraceWriter wraps an io.Writer and latches the first write error: once a
// write fails, every subsequent Write returns that same error immediately
// rather than attempting the underlying writer again.
type TraceWriter struct {
	w   io.Writer
	Err error
}

// NewTraceWriter wraps w.
func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{w: w}
}

func (tw *TraceWriter) Write(p []byte) (n int, err error) {
	if tw.Err != nil {
		return 0, tw.Err
	}
	n, err = tw.w.Write(p)
	if err != nil {
		tw.Err = errors.Wrap(err, "trace write failed")
	}
	return n, tw.Err
}
