package timeline

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/leandrodaf/crim2s/sdk/contracts"
)

// Header lines of the .crim2s format.
const (
	sourceHeader     = "Archivo MIDI: %s\n"
	liveSourceHeader = "Archivo MIDI en Tiempo Real\n"
	ticksHeader      = "Ticks per beat: %d\n"
	totalHeader      = "Tiempo total de la canción: %d ticks\n"
	tracksHeader     = "Número de pistas: %d\n"
	eventsHeader     = "Eventos:\n"
)

// FormatEvent renders one timeline line, without the trailing newline.
func FormatEvent(e contracts.Event) string {
	return fmt.Sprintf("Time=%d Track=%d %s", e.AbsoluteTime, e.Track, e)
}

// WriteReport renders a batch report.
func WriteReport(w io.Writer, r *contracts.Report) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, sourceHeader, r.Source)
	fmt.Fprintf(bw, ticksHeader, r.TicksPerBeat)
	fmt.Fprintf(bw, totalHeader, r.Timeline.TotalTicks())
	fmt.Fprintf(bw, tracksHeader, r.TrackCount)
	bw.WriteString(eventsHeader)
	for _, e := range r.Timeline.Events {
		bw.WriteString(FormatEvent(e))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// liveHeader is written once when a stream starts. The track count is always 1.
func liveHeader(ticksPerBeat uint16) []string {
	lines := []string{
		liveSourceHeader,
		fmt.Sprintf(ticksHeader, ticksPerBeat),
		fmt.Sprintf(tracksHeader, 1),
		eventsHeader,
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\n")
	}
	return lines
}
