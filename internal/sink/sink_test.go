package sink

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/leandrodaf/crim2s/sdk/contracts"
)

func TestEnsureMIDIExtension(t *testing.T) {
	for _, c := range []struct {
		in       string
		want     string
		appended bool
	}{
		{"salida.mid", "salida.mid", false},
		{"SALIDA.MID", "SALIDA.MID", false},
		{"salida", "salida.mid", true},
		{"salida.midi", "salida.midi.mid", true},
		{"dir.mid/song", "dir.mid/song.mid", true},
	} {
		got, appended := EnsureMIDIExtension(c.in)
		if got != c.want || appended != c.appended {
			t.Errorf("EnsureMIDIExtension(%q) = (%q, %v), want (%q, %v)", c.in, got, appended, c.want, c.appended)
		}
	}
}

func TestCreateReport(t *testing.T) {
	base := filepath.Join(t.TempDir(), "song")
	f, err := CreateReport(base)
	if err != nil {
		t.Fatalf("CreateReport: %v", err)
	}
	defer f.Close()
	if f.Name() != base+".crim2s" {
		t.Errorf("report path = %q, want %q", f.Name(), base+".crim2s")
	}
}

func TestSinkUnavailable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "out")

	if _, err := CreateReport(missing); !errors.Is(err, contracts.ErrSinkUnavailable) {
		t.Errorf("CreateReport error = %v, want ErrSinkUnavailable", err)
	}
	if err := WriteFile(missing+".mid", []byte("MThd")); !errors.Is(err, contracts.ErrSinkUnavailable) {
		t.Errorf("WriteFile error = %v, want ErrSinkUnavailable", err)
	}
	var sue *contracts.SinkUnavailableError
	if _, err := OpenPipe(missing); !errors.As(err, &sue) || sue.Path != missing {
		t.Errorf("OpenPipe error = %v, want SinkUnavailableError for %q", err, missing)
	}
}

func TestLineWriterFlushesEachLine(t *testing.T) {
	var dst bytes.Buffer
	bw := bufio.NewWriterSize(&dst, 4096)
	lw := NewLineWriter(bw)

	if err := lw.WriteLine("Time=0 Track=0 note_on channel=0 note=60 velocity=64 time=0"); err != nil {
		t.Fatalf("WriteLine: %v", err)
	}
	if got, want := dst.String(), "Time=0 Track=0 note_on channel=0 note=60 velocity=64 time=0\n"; got != want {
		t.Errorf("after one line the sink holds %q, want %q", got, want)
	}
}

func TestLineWriterConcurrentLinesStayWhole(t *testing.T) {
	var dst bytes.Buffer
	lw := NewLineWriter(&dst)

	const writers, perWriter = 8, 200
	var wg sync.WaitGroup
	for w := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			line := strings.Repeat(string(rune('a'+w)), 64)
			for range perWriter {
				if err := lw.WriteLine(line); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(dst.String(), "\n"), "\n")
	if len(lines) != writers*perWriter {
		t.Fatalf("got %d lines, want %d", len(lines), writers*perWriter)
	}
	for i, l := range lines {
		if len(l) != 64 || strings.Count(l, l[:1]) != 64 {
			t.Fatalf("line %d is interleaved: %q", i, l)
		}
	}
}

func TestLineWriterSyncsFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.crim2s")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := NewLineWriter(f).WriteLine("Eventos:"); err != nil {
		t.Fatalf("WriteLine: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Eventos:\n" {
		t.Errorf("file holds %q, want %q", data, "Eventos:\n")
	}
}

func TestOpenPipeTruncatesRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.crim2s")
	if err := os.WriteFile(path, []byte("Archivo MIDI en Tiempo Real\nLEFT OVER FROM A PREVIOUS, LONGER RUN\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := OpenPipe(path)
	if err != nil {
		t.Fatalf("OpenPipe: %v", err)
	}
	if err := NewLineWriter(f).WriteLine("Eventos:"); err != nil {
		t.Fatalf("WriteLine: %v", err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Eventos:\n" {
		t.Errorf("file holds %q, want only the new line", data)
	}
}
