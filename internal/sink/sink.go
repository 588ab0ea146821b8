// Package sink opens the outputs the extractor and builder write to.
package sink

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/leandrodaf/crim2s/sdk/contracts"
)

const (
	// ReportExtension is appended to every batch report path.
	ReportExtension = ".crim2s"
	// MIDIExtension is enforced on every built MIDI file.
	MIDIExtension = ".mid"
)

// EnsureMIDIExtension appends ".mid" unless path already ends with it, in any case.
func EnsureMIDIExtension(path string) (string, bool) {
	if strings.HasSuffix(strings.ToLower(path), MIDIExtension) {
		return path, false
	}
	return path + MIDIExtension, true
}

// CreateReport creates (or truncates) base + ".crim2s".
func CreateReport(base string) (*os.File, error) {
	return CreateFile(base + ReportExtension)
}

// CreateFile creates (or truncates) path for writing.
func CreateFile(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &contracts.SinkUnavailableError{Path: path, Err: err}
	}
	return f, nil
}

// WriteFile writes data to path in one go.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &contracts.SinkUnavailableError{Path: path, Err: err}
	}
	return nil
}

// OpenPipeContext is OpenPipe that gives up with a SinkUnavailableError
// wrapping ctx.Err() when ctx is done before a reader attaches.
func OpenPipeContext(ctx context.Context, path string) (*os.File, error) {
	flag, err := preparePipe(path)
	if err != nil {
		return nil, err
	}

	type opened struct {
		f   *os.File
		err error
	}
	done := make(chan opened, 1)
	go func() {
		f, err := openPipe(path, flag)
		done <- opened{f, err}
	}()

	select {
	case r := <-done:
		return r.f, r.err
	case <-ctx.Done():
		reader, _ := releasePipe(path)
		go func() {
			if r := <-done; r.f != nil {
				r.f.Close()
			}
			if reader != nil {
				reader.Close()
			}
		}()
		return nil, &contracts.SinkUnavailableError{Path: path, Err: ctx.Err()}
	}
}

type flusher interface {
	Flush() error
}

type syncer interface {
	Sync() error
}

// LineWriter serializes whole lines onto w and flushes after each one, so
// concurrent writers never interleave partial lines.
type LineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLineWriter wraps w. Buffered writers are flushed and files are synced
// after every line; the line is written in a single call either way.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: w}
}

// WriteLine writes line followed by a newline.
func (l *LineWriter) WriteLine(line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')
	if _, err := l.w.Write(buf); err != nil {
		return err
	}
	switch f := l.w.(type) {
	case flusher:
		return f.Flush()
	case syncer:
		return syncIgnoringPipes(f)
	}
	return nil
}
