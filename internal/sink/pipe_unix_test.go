//go:build !windows

package sink

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leandrodaf/crim2s/sdk/contracts"
	"golang.org/x/sys/unix"
)

func TestOpenPipeCreatesFIFO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crim2s.pipe")

	read := make(chan string, 1)
	go func() {
		// Wait for the writer to create the FIFO, then attach as reader.
		for {
			if _, err := os.Stat(path); err == nil {
				break
			}
		}
		r, err := os.Open(path)
		if err != nil {
			read <- err.Error()
			return
		}
		defer r.Close()
		line, _ := bufio.NewReader(r).ReadString('\n')
		read <- line
	}()

	w, err := OpenPipe(path)
	if err != nil {
		t.Fatalf("OpenPipe: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&fs.ModeNamedPipe == 0 {
		t.Errorf("mode = %v, want a named pipe", info.Mode())
	}

	if err := NewLineWriter(w).WriteLine("Archivo MIDI en Tiempo Real"); err != nil {
		t.Fatalf("WriteLine: %v", err)
	}
	w.Close()
	if got := <-read; got != "Archivo MIDI en Tiempo Real\n" {
		t.Errorf("reader got %q", got)
	}
}

func TestOpenPipeRejectsDirectories(t *testing.T) {
	dir := t.TempDir()
	if _, err := OpenPipe(dir); !errors.Is(err, ErrNotPipe) || !errors.Is(err, contracts.ErrSinkUnavailable) {
		t.Errorf("OpenPipe(dir) error = %v, want ErrNotPipe wrapped in SinkUnavailableError", err)
	}
}

func TestOpenPipeContextCancelledWithoutReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crim2s.pipe")
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	returned := make(chan error, 1)
	go func() {
		f, err := OpenPipeContext(ctx, path)
		if f != nil {
			f.Close()
		}
		returned <- err
	}()

	select {
	case err := <-returned:
		if !errors.Is(err, context.DeadlineExceeded) || !errors.Is(err, contracts.ErrSinkUnavailable) {
			t.Errorf("err = %v, want a SinkUnavailableError wrapping the deadline", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("OpenPipeContext still blocked after its context expired")
	}
}

func TestOpenPipeContextWithReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crim2s.pipe")
	if err := unix.Mkfifo(path, 0o666); err != nil {
		t.Fatal(err)
	}
	r, err := os.OpenFile(path, os.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	w, err := OpenPipeContext(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenPipeContext: %v", err)
	}
	w.Close()
}
