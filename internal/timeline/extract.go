// Package timeline merges per-track MIDI events into one time-ordered
// timeline and renders it as a .crim2s event log.
package timeline

import (
	"slices"

	"github.com/leandrodaf/crim2s/sdk/contracts"
)

// Options controls which event kinds survive extraction.
type Options struct {
	KeepProgramChanges bool
}

func (o Options) retains(e contracts.Event) bool {
	if e.IsNote() {
		return true
	}
	return o.KeepProgramChanges && e.Kind == contracts.ProgramChange
}

// Extract walks every track accumulating its deltas from zero, keeps the
// retained kinds, and stable-sorts the result by absolute time so that
// simultaneous events stay in track order.
func Extract(doc *contracts.Document, opts Options) contracts.Timeline {
	var events []contracts.Event
	for i, track := range doc.Tracks {
		var abs uint64
		for _, e := range track.Events {
			abs += uint64(e.Delta)
			if !opts.retains(e) {
				continue
			}
			e.Track, e.AbsoluteTime = i, abs
			events = append(events, e)
		}
	}

	slices.SortStableFunc(events, func(a, b contracts.Event) int {
		switch {
		case a.AbsoluteTime < b.AbsoluteTime:
			return -1
		case a.AbsoluteTime > b.AbsoluteTime:
			return 1
		}
		return 0
	})
	return contracts.Timeline{Events: events}
}

// NewReport extracts doc and wraps the timeline with its header data.
func NewReport(source string, doc *contracts.Document, opts Options) *contracts.Report {
	return &contracts.Report{
		Source:       source,
		TicksPerBeat: doc.TicksPerBeat,
		TrackCount:   len(doc.Tracks),
		Timeline:     Extract(doc, opts),
	}
}
