package ngutil_test

import (
	"errors"
	"testing"

	"github.com/Yemiez/ysen/internal/ngutil"
)

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestTraceWriterLatchesFirstError(t *testing.T) {
	boom := errors.New("boom")
	tw := ngutil.NewTraceWriter(failingWriter{boom})

	if _, err := tw.Write([]byte("a")); err == nil {
		t.Fatal("expected first write to fail")
	}
	first := tw.Err

	if _, err := tw.Write([]byte("b")); err != first {
		t.Fatalf("second write returned %v, want the latched first error %v", err, first)
	}
}
