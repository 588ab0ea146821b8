//go:build !windows

package sink

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/leandrodaf/crim2s/sdk/contracts"
	"golang.org/x/sys/unix"
)

// ErrNotPipe is returned when the pipe path exists but is not a FIFO.
var ErrNotPipe = errors.New("path exists and is not a named pipe")

// OpenPipe creates a named pipe at path when it does not exist yet and opens
// it for writing. Opening blocks until a reader attaches. A regular file at
// path is truncated.
func OpenPipe(path string) (*os.File, error) {
	flag, err := preparePipe(path)
	if err != nil {
		return nil, err
	}
	return openPipe(path, flag)
}

// preparePipe makes sure path is a FIFO or a regular file and returns the
// flags to open it with.
func preparePipe(path string) (int, error) {
	flag := os.O_WRONLY
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := unix.Mkfifo(path, 0o666); err != nil {
			return 0, &contracts.SinkUnavailableError{Path: path, Err: fmt.Errorf("mkfifo: %w", err)}
		}
	case err != nil:
		return 0, &contracts.SinkUnavailableError{Path: path, Err: err}
	case info.Mode()&fs.ModeNamedPipe == 0 && !info.Mode().IsRegular():
		return 0, &contracts.SinkUnavailableError{Path: path, Err: ErrNotPipe}
	case info.Mode().IsRegular():
		flag |= os.O_TRUNC
	}
	return flag, nil
}

func openPipe(path string, flag int) (*os.File, error) {
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, &contracts.SinkUnavailableError{Path: path, Err: err}
	}
	return f, nil
}

// releasePipe attaches a non-blocking reader to path so that a writer blocked
// in open returns. The caller closes it once that open is done.
func releasePipe(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// syncIgnoringPipes fsyncs regular files; FIFOs and terminals reject fsync
// with EINVAL, which is fine since their writes are already visible.
func syncIgnoringPipes(s syncer) error {
	err := s.Sync()
	if errors.Is(err, unix.EINVAL) || errors.Is(err, unix.ENOTSUP) {
		return nil
	}
	return err
}
