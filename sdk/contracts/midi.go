package contracts

// MIDI represents a live MIDI event captured from a device.
type MIDI struct {
	Timestamp uint64 // Timestamp is the capture time in Unix nanoseconds; zero when unknown.
	Command   byte   // Command is the status high nibble (e.g., Note On, Note Off).
	Channel   byte   // Channel is the zero-based MIDI channel.
	Note      byte   // Note represents the MIDI note number (0-127).
	Velocity  byte   // Velocity indicates the strength of the note being played (0-127).
}

// Event converts a live message into a timeline Event on track 0 with the given absolute time.
func (m MIDI) Event(absoluteTime uint64) Event {
	e := Event{
		Kind:         MIDICommand(m.Command),
		Channel:      m.Channel,
		Note:         m.Note,
		Velocity:     m.Velocity,
		AbsoluteTime: absoluteTime,
	}
	if e.Kind == ProgramChange {
		e.Program, e.Note, e.Velocity = m.Note, 0, 0
	}
	return e
}

// ClientMIDI defines an interface for MIDI client operations.
type ClientMIDI interface {
	Stop() error                              // Stops the MIDI client and releases resources.
	ListDevices() ([]DeviceInfo, error)       // Lists all available MIDI input devices.
	ListOutputDevices() ([]DeviceInfo, error) // Lists all available MIDI output devices.
	SelectDevice(deviceID int) error          // Selects a MIDI input device by its ID for communication.
	StartCapture(eventChannel chan MIDI)      // Starts capturing MIDI events and sends them to the specified channel.
}

// SplitStatus separates a raw status byte into its command nibble and channel.
func SplitStatus(status byte) (MIDICommand, byte) {
	if status >= 0xF0 {
		return MIDICommand(status), 0
	}
	return MIDICommand(status & 0xF0), status & 0x0F
}
