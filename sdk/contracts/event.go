package contracts

import "fmt"

// Event is a single timed MIDI event belonging to a track.
//
// Note and Velocity are meaningful for NoteOn and NoteOff, Program for
// ProgramChange. Delta is relative to the previous event of the same
// track; AbsoluteTime is the running sum of deltas from track start.
type Event struct {
	Kind         MIDICommand
	Channel      uint8
	Note         uint8
	Velocity     uint8
	Program      uint8
	Track        int
	Delta        uint32
	AbsoluteTime uint64
}

// IsNote reports whether the event is a NoteOn or NoteOff.
func (e Event) IsNote() bool {
	return e.Kind == NoteOn || e.Kind == NoteOff
}

// String renders the event the way message logs conventionally print it,
// e.g. "note_on channel=0 note=60 velocity=64 time=0".
func (e Event) String() string {
	switch e.Kind {
	case NoteOn, NoteOff:
		return fmt.Sprintf("%s channel=%d note=%d velocity=%d time=%d", e.Kind, e.Channel, e.Note, e.Velocity, e.Delta)
	case ProgramChange:
		return fmt.Sprintf("%s channel=%d program=%d time=%d", e.Kind, e.Channel, e.Program, e.Delta)
	default:
		return fmt.Sprintf("%s time=%d", e.Kind, e.Delta)
	}
}

// Track is an ordered sequence of delta-timed events. Tail is the silence
// between the last event and the end of the track.
type Track struct {
	Name   string
	Events []Event
	Tail   uint32
}

// Document is an in-memory multi-track MIDI file.
type Document struct {
	TicksPerBeat uint16
	Tracks       []Track
}

// Validate checks the document-level invariants.
func (d *Document) Validate() error {
	if d.TicksPerBeat == 0 {
		return &InvalidParameterError{Track: -1, Field: "ticks_per_beat", Value: 0, Reason: "must be positive"}
	}
	return nil
}

// Timeline is the globally time-ordered merge of all retained track events.
// It is read-only once built.
type Timeline struct {
	Events []Event
}

// TotalTicks returns the absolute time of the last event, or 0 when empty.
func (t Timeline) TotalTicks() uint64 {
	if len(t.Events) == 0 {
		return 0
	}
	return t.Events[len(t.Events)-1].AbsoluteTime
}

// Report is the extractor output before it is rendered to text.
type Report struct {
	Source       string
	TicksPerBeat uint16
	TrackCount   int
	Timeline     Timeline
}
