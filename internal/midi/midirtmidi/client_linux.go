//go:build linux

package midirtmidi

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leandrodaf/crim2s/sdk/contracts"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register the rtmidi (ALSA) driver
)

// Error definitions for port handling issues.
var (
	ErrNoMIDIDevices     = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice = errors.New("invalid MIDI device")
	ErrNoDeviceSelected  = errors.New("no MIDI device selected")
)

// ClientMid captures MIDI input through the rtmidi driver on Linux.
type ClientMid struct {
	logger          contracts.Logger
	eventChannel    atomic.Value // chan contracts.MIDI
	inPort          drivers.In
	stopListening   func()
	midiEventFilter *contracts.MIDIEventFilter
	mu              sync.Mutex
	capturing       bool
}

// NewMIDIClient initializes a new ClientMid.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("MIDI client created for rtmidi")
	return &ClientMid{
		logger:          options.Logger,
		midiEventFilter: options.MIDIEventFilter,
	}, nil
}

// ListDevices lists the available MIDI input ports.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	ports := gomidi.GetInPorts()
	if len(ports) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}
	devices := make([]contracts.DeviceInfo, len(ports))
	for i, port := range ports {
		devices[i] = contracts.DeviceInfo{Name: port.String(), EntityName: port.String()}
	}
	return devices, nil
}

// ListOutputDevices lists the available MIDI output ports.
func (m *ClientMid) ListOutputDevices() ([]contracts.DeviceInfo, error) {
	ports := gomidi.GetOutPorts()
	devices := make([]contracts.DeviceInfo, len(ports))
	for i, port := range ports {
		devices[i] = contracts.DeviceInfo{Name: port.String(), EntityName: port.String()}
	}
	return devices, nil
}

// SelectDevice opens the input port at index deviceID and starts listening on it.
// Messages are dropped until StartCapture provides a channel.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ports := gomidi.GetInPorts()
	if deviceID < 0 || deviceID >= len(ports) {
		m.logger.Error(ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return ErrInvalidMIDIDevice
	}

	m.disconnect()

	port := ports[deviceID]
	stop, err := gomidi.ListenTo(port, m.handleMessage)
	if err != nil {
		return fmt.Errorf("listen to %s: %w", port.String(), err)
	}
	m.inPort, m.stopListening = port, stop

	m.logger.Info("MIDI device selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", port.String()))
	return nil
}

func (m *ClientMid) handleMessage(msg gomidi.Message, timestampms int32) {
	eventChannel, _ := m.eventChannel.Load().(chan contracts.MIDI)
	if eventChannel == nil {
		return
	}

	data := msg.Bytes()
	if len(data) < 2 {
		return
	}
	command, channel := contracts.SplitStatus(data[0])
	event := contracts.MIDI{
		Timestamp: uint64(time.Now().UTC().UnixNano()),
		Command:   byte(command),
		Channel:   channel,
		Note:      data[1],
	}
	if len(data) >= 3 {
		event.Velocity = data[2]
	}
	if !m.midiEventFilter.Allows(event.Command) {
		return
	}

	select {
	case eventChannel <- event:
	default:
		m.logger.Warn("Event buffer full; dropping MIDI event")
	}
}

// StartCapture routes incoming messages from the selected port to eventChannel.
func (m *ClientMid) StartCapture(eventChannel chan contracts.MIDI) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if eventChannel == nil {
		m.logger.Error("StartCapture called with nil eventChannel")
		return
	}
	if m.inPort == nil {
		m.logger.Error(ErrNoDeviceSelected.Error())
		return
	}

	m.logger.Info("Starting MIDI event capture")
	m.eventChannel.Store(eventChannel)
	m.capturing = true
}

// Stop ends capture, closes the port and the driver.
func (m *ClientMid) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.capturing && m.inPort == nil {
		return nil
	}
	m.capturing = false
	m.eventChannel.Store((chan contracts.MIDI)(nil))
	m.disconnect()
	gomidi.CloseDriver()
	m.logger.Info("MIDI capture stopped")
	return nil
}

func (m *ClientMid) disconnect() {
	if m.stopListening != nil {
		m.stopListening()
		m.stopListening = nil
	}
	if m.inPort != nil {
		if err := m.inPort.Close(); err != nil {
			m.logger.Warn("Failed to close MIDI port", m.logger.Field().Error("error", err))
		}
		m.inPort = nil
	}
}
