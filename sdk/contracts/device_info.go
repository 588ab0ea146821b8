package contracts

import "errors"

// ErrNoDeviceAvailable is returned by a DeviceSelector when there is nothing to pick from.
var ErrNoDeviceAvailable = errors.New("no MIDI device available")

// DeviceInfo contains information about a MIDI device.
type DeviceInfo struct {
	Name         string // Device name.
	Manufacturer string // Device manufacturer.
	EntityName   string // Name of the entity to which the device belongs.
}

// DeviceSelector picks one device out of an enumeration and returns its index.
type DeviceSelector func(devices []DeviceInfo) (int, error)

// FirstAvailableDevice selects the first enumerated device.
func FirstAvailableDevice(devices []DeviceInfo) (int, error) {
	if len(devices) == 0 {
		return -1, ErrNoDeviceAvailable
	}
	return 0, nil
}

// DeviceNamed selects the first device whose name matches name exactly,
// falling back to the first available device when name is empty.
func DeviceNamed(name string) DeviceSelector {
	return func(devices []DeviceInfo) (int, error) {
		if name == "" {
			return FirstAvailableDevice(devices)
		}
		for i, d := range devices {
			if d.Name == name {
				return i, nil
			}
		}
		return -1, ErrNoDeviceAvailable
	}
}
