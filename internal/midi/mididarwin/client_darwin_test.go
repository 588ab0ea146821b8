//go:build darwin

package mididarwin

import (
	"testing"
	"time"

	"github.com/leandrodaf/crim2s/internal/logger"
	"github.com/leandrodaf/crim2s/sdk/contracts"
)

func TestStartCaptureTwice(t *testing.T) {
	m := &ClientMid{logger: logger.NewNopLogger()}
	first := make(chan contracts.MIDI, 1)
	second := make(chan contracts.MIDI, 1)

	done := make(chan struct{})
	go func() {
		m.StartCapture(first)
		m.StartCapture(second)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("second StartCapture did not return")
	}

	if ch, _ := m.eventChannel.Load().(chan contracts.MIDI); ch != second {
		t.Error("events are not routed to the latest channel")
	}
	if err := m.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
}
