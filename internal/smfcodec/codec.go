// Package smfcodec converts between Standard MIDI File bytes and contracts.Document.
package smfcodec

import (
	"errors"
	"fmt"
	"io"

	"github.com/leandrodaf/crim2s/sdk/contracts"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var (
	// ErrNoTicksPerBeat is wrapped in a DecodeError when the header does not use metric time.
	ErrNoTicksPerBeat = errors.New("header has no ticks-per-beat resolution")
	// ErrTooManyTracks is returned when a document does not fit the 16-bit track count.
	ErrTooManyTracks = errors.New("too many tracks")
	// ErrTruncatedTrack is wrapped in a DecodeError when a track chunk ends
	// before its end-of-track event.
	ErrTruncatedTrack = errors.New("track ends without end-of-track event")
)

// Decode reads a whole MIDI container from r. source only labels errors.
func Decode(r io.Reader, source string) (doc *contracts.Document, err error) {
	// The reader panics on some malformed input, e.g. a data byte with no
	// running status in effect.
	defer func() {
		if rec := recover(); rec != nil {
			doc, err = nil, &contracts.DecodeError{Source: source, Err: fmt.Errorf("%v", rec)}
		}
	}()

	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, &contracts.DecodeError{Source: source, Err: err}
	}

	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok || ticks == 0 {
		return nil, &contracts.DecodeError{Source: source, Err: ErrNoTicksPerBeat}
	}

	doc = &contracts.Document{
		TicksPerBeat: uint16(ticks),
		Tracks:       make([]contracts.Track, 0, len(s.Tracks)),
	}
	for i, tr := range s.Tracks {
		if len(tr) == 0 || !tr[len(tr)-1].Message.Is(smf.MetaEndOfTrackMsg) {
			return nil, &contracts.DecodeError{Source: source, Err: fmt.Errorf("track %d: %w", i, ErrTruncatedTrack)}
		}
		doc.Tracks = append(doc.Tracks, decodeTrack(i, tr))
	}
	return doc, nil
}

func decodeTrack(index int, tr smf.Track) contracts.Track {
	track := contracts.Track{Events: make([]contracts.Event, 0, len(tr))}
	var abs uint64
	for _, ev := range tr {
		abs += uint64(ev.Delta)
		e := decodeMessage(ev.Message)
		e.Track, e.Delta, e.AbsoluteTime = index, ev.Delta, abs

		var name string
		if track.Name == "" && ev.Message.GetMetaTrackName(&name) {
			track.Name = name
		}
		track.Events = append(track.Events, e)
	}
	return track
}

// decodeMessage classifies a raw message by its status byte. Note-on with
// velocity 0 stays a note-on, as it was written.
func decodeMessage(msg smf.Message) contracts.Event {
	if msg.IsMeta() {
		return contracts.Event{Kind: contracts.Meta}
	}
	if len(msg) == 0 {
		return contracts.Event{Kind: contracts.SysEx}
	}

	kind, channel := contracts.SplitStatus(msg[0])
	e := contracts.Event{Kind: kind, Channel: channel}
	switch kind {
	case contracts.NoteOn, contracts.NoteOff:
		if len(msg) >= 3 {
			e.Note, e.Velocity = msg[1], msg[2]
		}
	case contracts.ProgramChange:
		if len(msg) >= 2 {
			e.Program = msg[1]
		}
	default:
		if kind >= contracts.SysEx {
			e.Kind = contracts.SysEx
		}
	}
	return e
}

// Encode writes doc as a format 1 MIDI file. Event kinds other than notes and
// program changes are not written; their deltas carry over to the next event.
func Encode(w io.Writer, doc *contracts.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if len(doc.Tracks) > 0xFFFF {
		return fmt.Errorf("%w: %d", ErrTooManyTracks, len(doc.Tracks))
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(doc.TicksPerBeat)
	for _, track := range doc.Tracks {
		if err := s.Add(encodeTrack(track)); err != nil {
			return fmt.Errorf("add track %q: %w", track.Name, err)
		}
	}

	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("write MIDI container: %w", err)
	}
	return nil
}

func encodeTrack(track contracts.Track) smf.Track {
	var tr smf.Track
	if track.Name != "" {
		tr.Add(0, smf.MetaTrackSequenceName(track.Name))
	}

	var pending uint32
	for _, e := range track.Events {
		pending += e.Delta
		var msg gomidi.Message
		switch e.Kind {
		case contracts.NoteOn:
			msg = gomidi.NoteOn(e.Channel, e.Note, e.Velocity)
		case contracts.NoteOff:
			msg = gomidi.NoteOffVelocity(e.Channel, e.Note, e.Velocity)
		case contracts.ProgramChange:
			msg = gomidi.ProgramChange(e.Channel, e.Program)
		default:
			continue
		}
		tr.Add(pending, msg)
		pending = 0
	}
	tr.Close(pending + track.Tail)
	return tr
}
