package contracts

import (
	"fmt"
	"time"
)

// MIDICommand represents the kind of a MIDI event: the status high nibble for
// channel messages, or SysEx/Meta for the rest.
type MIDICommand byte

const (
	// NoteOff is the MIDI command for a Note Off event (0x80).
	NoteOff MIDICommand = 0x80
	// NoteOn is the MIDI command for a Note On event (0x90).
	NoteOn MIDICommand = 0x90
	// PolyAftertouch is the MIDI command for polyphonic key pressure (0xA0).
	PolyAftertouch MIDICommand = 0xA0
	// ControlChange is the MIDI command for a controller change (0xB0).
	ControlChange MIDICommand = 0xB0
	// ProgramChange is the MIDI command for a Program Change event (0xC0).
	ProgramChange MIDICommand = 0xC0
	// ChannelAftertouch is the MIDI command for channel pressure (0xD0).
	ChannelAftertouch MIDICommand = 0xD0
	// PitchBend is the MIDI command for a pitch wheel change (0xE0).
	PitchBend MIDICommand = 0xE0
	// SysEx marks a system exclusive or other system message.
	SysEx MIDICommand = 0xF0
	// Meta marks a file-only meta event (tempo, track name, end of track...).
	Meta MIDICommand = 0xFF
)

func (c MIDICommand) String() string {
	switch c {
	case NoteOff:
		return "note_off"
	case NoteOn:
		return "note_on"
	case PolyAftertouch:
		return "polytouch"
	case ControlChange:
		return "control_change"
	case ProgramChange:
		return "program_change"
	case ChannelAftertouch:
		return "aftertouch"
	case PitchBend:
		return "pitchwheel"
	case SysEx:
		return "sysex"
	case Meta:
		return "meta"
	}
	return fmt.Sprintf("0x%02X", byte(c))
}

// MIDIEventFilter allows users to specify which MIDI commands to capture.
type MIDIEventFilter struct {
	Commands []MIDICommand // List of MIDI commands to filter.
}

// Allows reports whether command passes the filter. A nil filter allows everything.
func (f *MIDIEventFilter) Allows(command byte) bool {
	if f == nil {
		return true
	}
	for _, allowed := range f.Commands {
		if command == byte(allowed) {
			return true
		}
	}
	return false
}

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

const (
	// DefaultTicksPerBeat is the resolution used when none is configured.
	DefaultTicksPerBeat uint16 = 480
	// DefaultTempo is the fixed tempo assumed by the streaming extractor.
	DefaultTempo float64 = 120
)

// ClientOptions defines the configuration options shared by the device client,
// the extractor and the builder.
type ClientOptions struct {
	Logger             Logger           // Logger for logging events and errors.
	LogLevel           LogLevel         // Level of logging to use.
	LogFilePath        string           // File path for logging if file logging is enabled.
	MIDIEventFilter    *MIDIEventFilter // Optional filter for MIDI events to capture.
	CoreMIDIConfig     *CoreMIDIConfig  // Configuration specific to CoreMIDI.
	TicksPerBeat       uint16           // Resolution for built documents and live streams.
	Tempo              float64          // Beats per minute assumed when converting wall time to ticks.
	DeviceSelector     DeviceSelector   // Strategy used to pick the live input device.
	KeepProgramChanges bool             // Retain ProgramChange events in extracted timelines.
	Clock              func() time.Time // Wall clock used by the streaming extractor.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile redirects log output to the given file.
func WithLogFile(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithMIDIEventFilter sets the MIDI event filter for the MIDI client.
func WithMIDIEventFilter(filter MIDIEventFilter) Option {
	return func(opts *ClientOptions) {
		opts.MIDIEventFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration for the MIDI client.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ClientOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// WithTicksPerBeat sets the resolution of built documents and live streams.
func WithTicksPerBeat(tpb uint16) Option {
	return func(opts *ClientOptions) {
		opts.TicksPerBeat = tpb
	}
}

// WithTempo sets the fixed tempo, in beats per minute, used by the streaming extractor.
func WithTempo(bpm float64) Option {
	return func(opts *ClientOptions) {
		opts.Tempo = bpm
	}
}

// WithDeviceSelector sets the strategy used to pick the input device.
func WithDeviceSelector(sel DeviceSelector) Option {
	return func(opts *ClientOptions) {
		opts.DeviceSelector = sel
	}
}

// WithProgramChanges keeps ProgramChange events in extracted timelines.
func WithProgramChanges(keep bool) Option {
	return func(opts *ClientOptions) {
		opts.KeepProgramChanges = keep
	}
}

// WithClock overrides the wall clock used by the streaming extractor.
func WithClock(now func() time.Time) Option {
	return func(opts *ClientOptions) {
		opts.Clock = now
	}
}
