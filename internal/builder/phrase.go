// Package builder generates MIDI documents from note recipes.
package builder

import (
	"github.com/leandrodaf/crim2s/sdk/contracts"
)

const (
	maxDataByte = 127
	// maxDelta is the largest delta a variable-length quantity can carry.
	maxDelta = 0x0FFFFFFF
)

// Phrase accumulates the delta-timed events of one track. Silence added by
// Rest is folded into the delta of the next event, so no placeholder events
// are ever emitted.
type Phrase struct {
	track    int
	channel  uint8
	pending  uint32
	events   []contracts.Event
	sounding map[uint8]bool
}

func newPhrase(track int) *Phrase {
	return &Phrase{track: track, sounding: make(map[uint8]bool)}
}

func (p *Phrase) invalid(field string, value int, reason string) error {
	return &contracts.InvalidParameterError{Track: p.track, Field: field, Value: value, Reason: reason}
}

func (p *Phrase) dataByte(field string, v int) (uint8, error) {
	if v < 0 || v > maxDataByte {
		return 0, p.invalid(field, v, "out of range 0-127")
	}
	return uint8(v), nil
}

func (p *Phrase) ticks(field string, v int) (uint32, error) {
	if v < 0 {
		return 0, p.invalid(field, v, "must not be negative")
	}
	if v > maxDelta {
		return 0, p.invalid(field, v, "exceeds 0x0FFFFFFF ticks")
	}
	return uint32(v), nil
}

func (p *Phrase) emit(e contracts.Event) {
	e.Channel, e.Track, e.Delta = p.channel, p.track, p.pending
	p.pending = 0
	p.events = append(p.events, e)
}

// Rest adds silence before the next event.
func (p *Phrase) Rest(ticks int) error {
	t, err := p.ticks("silence", ticks)
	if err != nil {
		return err
	}
	if uint64(p.pending)+uint64(t) > maxDelta {
		return p.invalid("silence", ticks, "accumulated delta exceeds 0x0FFFFFFF ticks")
	}
	p.pending += t
	return nil
}

// Program selects an instrument for the rest of the track.
func (p *Phrase) Program(program int) error {
	prog, err := p.dataByte("program", program)
	if err != nil {
		return err
	}
	p.emit(contracts.Event{Kind: contracts.ProgramChange, Program: prog})
	return nil
}

// Note sounds note for duration ticks.
func (p *Phrase) Note(note, velocity, duration int) error {
	return p.Chord([]int{note}, velocity, duration)
}

// Chord starts every note together and releases them together after
// duration ticks: only the first note-on and the first note-off carry a
// non-zero delta.
func (p *Phrase) Chord(notes []int, velocity, duration int) error {
	if len(notes) == 0 {
		return p.invalid("chord_size", 0, "chord has no notes")
	}
	vel, err := p.dataByte("velocity", velocity)
	if err != nil {
		return err
	}
	dur, err := p.ticks("duration", duration)
	if err != nil {
		return err
	}

	keys := make([]uint8, len(notes))
	for i, n := range notes {
		if keys[i], err = p.dataByte("note", n); err != nil {
			return err
		}
	}

	for _, k := range keys {
		if p.sounding[k] {
			return p.invalid("note", int(k), "already sounding")
		}
		p.sounding[k] = true
		p.emit(contracts.Event{Kind: contracts.NoteOn, Note: k, Velocity: vel})
	}
	p.pending += dur
	for _, k := range keys {
		delete(p.sounding, k)
		p.emit(contracts.Event{Kind: contracts.NoteOff, Note: k, Velocity: vel})
	}
	return nil
}

// close fills absolute times and returns the finished track. Trailing
// silence is returned separately; it has no event to attach to.
func (p *Phrase) close(name string) (contracts.Track, uint32, error) {
	for k := range p.sounding {
		return contracts.Track{}, 0, p.invalid("note", int(k), "never released")
	}
	if len(p.events) == 0 {
		return contracts.Track{}, 0, p.invalid("events", 0, "recipe "+name+" produced no events")
	}
	var abs uint64
	for i := range p.events {
		abs += uint64(p.events[i].Delta)
		p.events[i].AbsoluteTime = abs
	}
	return contracts.Track{Name: name, Events: p.events}, p.pending, nil
}
