//go:build windows

package sink

import (
	"errors"
	"io"
	"os"

	"github.com/leandrodaf/crim2s/sdk/contracts"
	"golang.org/x/sys/windows"
)

// OpenPipe has no FIFO to create on Windows; it writes a regular file at
// path instead, created or truncated.
func OpenPipe(path string) (*os.File, error) {
	flag, err := preparePipe(path)
	if err != nil {
		return nil, err
	}
	return openPipe(path, flag)
}

func preparePipe(string) (int, error) {
	return os.O_CREATE | os.O_WRONLY | os.O_TRUNC, nil
}

func openPipe(path string, flag int) (*os.File, error) {
	f, err := os.OpenFile(path, flag, 0o666)
	if err != nil {
		return nil, &contracts.SinkUnavailableError{Path: path, Err: err}
	}
	return f, nil
}

// releasePipe has nothing to do: opening a regular file never blocks.
func releasePipe(string) (io.Closer, error) {
	return nil, nil
}

func syncIgnoringPipes(s syncer) error {
	err := s.Sync()
	if errors.Is(err, windows.ERROR_INVALID_HANDLE) || errors.Is(err, windows.ERROR_INVALID_FUNCTION) {
		return nil
	}
	return err
}
