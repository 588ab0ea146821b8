//go:build windows

package midiwindows

import (
	"testing"
	"unsafe"

	"github.com/leandrodaf/crim2s/internal/logger"
	"github.com/leandrodaf/crim2s/sdk/contracts"
)

func newTestClient() *ClientMid {
	return &ClientMid{logger: logger.NewNopLogger()}
}

func TestDetachChannel(t *testing.T) {
	m := newTestClient()
	m.detachChannel() // before any capture
	if m.channel() != nil {
		t.Fatal("fresh client reports a capture channel")
	}

	m.eventChannel.Store(make(chan contracts.MIDI, 1))
	m.detachChannel()
	m.detachChannel()
	if m.channel() != nil {
		t.Error("channel still attached after detach")
	}
}

func TestCallbackDelivery(t *testing.T) {
	m := newTestClient()
	ch := make(chan contracts.MIDI, 1)
	m.eventChannel.Store(ch)

	// Note on, channel 2, note 60, velocity 64.
	midiInCallback(0, MIM_DATA, uintptr(unsafe.Pointer(m)), 0x403C92, 1)
	select {
	case ev := <-ch:
		if ev.Command != byte(contracts.NoteOn) || ev.Channel != 2 || ev.Note != 60 || ev.Velocity != 64 {
			t.Errorf("event = %+v", ev)
		}
	default:
		t.Fatal("event not delivered")
	}

	m.detachChannel()
	midiInCallback(0, MIM_DATA, uintptr(unsafe.Pointer(m)), 0x403C92, 1)
	if len(ch) != 0 {
		t.Error("event delivered after detach")
	}
}
