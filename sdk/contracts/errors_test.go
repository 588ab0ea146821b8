package contracts

import (
	"errors"
	"io"
	"testing"
)

func TestErrorTaxonomy(t *testing.T) {
	for _, c := range []struct {
		name     string
		err      error
		sentinel error
		unwraps  error
	}{{
		name:     "decode",
		err:      &DecodeError{Source: "song.mid", Err: io.ErrUnexpectedEOF},
		sentinel: ErrDecode,
		unwraps:  io.ErrUnexpectedEOF,
	}, {
		name:     "sink",
		err:      &SinkUnavailableError{Path: "/nope/out.crim2s", Err: io.ErrClosedPipe},
		sentinel: ErrSinkUnavailable,
		unwraps:  io.ErrClosedPipe,
	}, {
		name:     "parameter",
		err:      &InvalidParameterError{Track: 2, Field: "note", Value: 128, Reason: "out of range 0-127"},
		sentinel: ErrInvalidParameter,
	}} {
		t.Run(c.name, func(t *testing.T) {
			wrapped := errors.Join(errors.New("context"), c.err)
			if !errors.Is(wrapped, c.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", wrapped, c.sentinel)
			}
			if c.unwraps != nil && !errors.Is(c.err, c.unwraps) {
				t.Errorf("errors.Is(%v, %v) = false, want true", c.err, c.unwraps)
			}
			for _, other := range []error{ErrDecode, ErrSinkUnavailable, ErrInvalidParameter} {
				if other != c.sentinel && errors.Is(c.err, other) {
					t.Errorf("%v unexpectedly matches %v", c.err, other)
				}
			}
		})
	}

	var ipe *InvalidParameterError
	err := error(&InvalidParameterError{Track: -1, Field: "ticks_per_beat", Reason: "must be positive"})
	if !errors.As(err, &ipe) || ipe.Field != "ticks_per_beat" {
		t.Errorf("errors.As did not recover the InvalidParameterError from %v", err)
	}
	if got, want := err.Error(), "invalid parameter: ticks_per_beat=0 must be positive"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestEventString(t *testing.T) {
	for _, c := range []struct {
		e    Event
		want string
	}{
		{Event{Kind: NoteOn, Note: 60, Velocity: 64}, "note_on channel=0 note=60 velocity=64 time=0"},
		{Event{Kind: NoteOff, Channel: 9, Note: 36, Velocity: 0, Delta: 480}, "note_off channel=9 note=36 velocity=0 time=480"},
		{Event{Kind: ProgramChange, Program: 12, Delta: 5}, "program_change channel=0 program=12 time=5"},
		{Event{Kind: ControlChange, Delta: 1}, "control_change time=1"},
	} {
		if got := c.e.String(); got != c.want {
			t.Errorf("%+v.String() = %q, want %q", c.e, got, c.want)
		}
	}
}

func TestTimelineTotalTicks(t *testing.T) {
	if got := (Timeline{}).TotalTicks(); got != 0 {
		t.Errorf("empty TotalTicks() = %d, want 0", got)
	}
	tl := Timeline{Events: []Event{{AbsoluteTime: 0}, {AbsoluteTime: 480}, {AbsoluteTime: 960}}}
	if got := tl.TotalTicks(); got != 960 {
		t.Errorf("TotalTicks() = %d, want 960", got)
	}
}

func TestDocumentValidate(t *testing.T) {
	if err := (&Document{}).Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Validate() with zero ticks per beat = %v, want ErrInvalidParameter", err)
	}
	if err := (&Document{TicksPerBeat: 480}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestSplitStatus(t *testing.T) {
	for _, c := range []struct {
		status  byte
		command MIDICommand
		channel byte
	}{
		{0x90, NoteOn, 0},
		{0x8F, NoteOff, 15},
		{0xC3, ProgramChange, 3},
		{0xF0, SysEx, 0},
		{0xFF, Meta, 0},
	} {
		command, channel := SplitStatus(c.status)
		if command != c.command || channel != c.channel {
			t.Errorf("SplitStatus(0x%02X) = (%v, %d), want (%v, %d)", c.status, command, channel, c.command, c.channel)
		}
	}
}

func TestMIDIEvent(t *testing.T) {
	pc := MIDI{Command: byte(ProgramChange), Channel: 1, Note: 5}.Event(10)
	if pc.Kind != ProgramChange || pc.Program != 5 || pc.Note != 0 || pc.AbsoluteTime != 10 {
		t.Errorf("program change conversion = %+v", pc)
	}
	on := MIDI{Command: byte(NoteOn), Note: 60, Velocity: 90}.Event(3)
	if on.Kind != NoteOn || on.Note != 60 || on.Velocity != 90 || on.Track != 0 {
		t.Errorf("note on conversion = %+v", on)
	}
}

func TestMIDIEventFilter(t *testing.T) {
	var none *MIDIEventFilter
	if !none.Allows(byte(ControlChange)) {
		t.Error("nil filter should allow everything")
	}
	f := &MIDIEventFilter{Commands: []MIDICommand{NoteOn, NoteOff}}
	if !f.Allows(byte(NoteOn)) || f.Allows(byte(ControlChange)) {
		t.Errorf("filter %v allows the wrong commands", f.Commands)
	}
}

func TestDeviceSelectors(t *testing.T) {
	devices := []DeviceInfo{{Name: "Midi Through"}, {Name: "Keystation"}}

	if _, err := FirstAvailableDevice(nil); !errors.Is(err, ErrNoDeviceAvailable) {
		t.Errorf("FirstAvailableDevice(nil) error = %v, want ErrNoDeviceAvailable", err)
	}
	if id, err := FirstAvailableDevice(devices); id != 0 || err != nil {
		t.Errorf("FirstAvailableDevice = (%d, %v), want (0, nil)", id, err)
	}
	if id, err := DeviceNamed("Keystation")(devices); id != 1 || err != nil {
		t.Errorf("DeviceNamed(Keystation) = (%d, %v), want (1, nil)", id, err)
	}
	if id, err := DeviceNamed("")(devices); id != 0 || err != nil {
		t.Errorf("DeviceNamed(\"\") = (%d, %v), want (0, nil)", id, err)
	}
	if _, err := DeviceNamed("Launchpad")(devices); !errors.Is(err, ErrNoDeviceAvailable) {
		t.Errorf("DeviceNamed(Launchpad) error = %v, want ErrNoDeviceAvailable", err)
	}
}
