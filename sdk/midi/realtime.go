package midi

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/leandrodaf/crim2s/internal/sink"
	"github.com/leandrodaf/crim2s/internal/timeline"
	"github.com/leandrodaf/crim2s/sdk/contracts"
)

// captureBuffer is the size of the channel between a device client and the recorder.
const captureBuffer = 100

// Stream picks an input device with the configured selector, captures from it
// and appends every note event to out, one flushed line at a time. It returns
// when ctx is cancelled.
func Stream(ctx context.Context, client contracts.ClientMIDI, out io.Writer, opts ...contracts.Option) error {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return err
	}
	log := options.Logger

	devices, err := client.ListDevices()
	if err != nil {
		return fmt.Errorf("list input devices: %w", err)
	}
	for _, d := range devices {
		log.Info("MIDI input available", log.Field().String("name", d.Name))
	}

	id, err := options.DeviceSelector(devices)
	if err != nil {
		return err
	}
	if err := client.SelectDevice(id); err != nil {
		return fmt.Errorf("select device %d: %w", id, err)
	}
	log.Info("Listening on MIDI port", log.Field().String("name", devices[id].Name))

	events := make(chan contracts.MIDI, captureBuffer)
	client.StartCapture(events)
	defer func() {
		if err := client.Stop(); err != nil {
			log.Warn("Failed to stop MIDI client", log.Field().Error("error", err))
		}
	}()

	rec := timeline.NewRecorder(sink.NewLineWriter(out), timeline.RecorderConfig{
		TicksPerBeat: options.TicksPerBeat,
		Tempo:        options.Tempo,
		Options:      timeline.Options{KeepProgramChanges: options.KeepProgramChanges},
		Clock:        options.Clock,
		Logger:       log,
	})
	return rec.Run(ctx, events)
}

// StreamToPipe is Stream writing into the named pipe at path, which is
// created first when it does not exist. Waiting for a reader to attach ends
// when ctx is cancelled.
func StreamToPipe(ctx context.Context, client contracts.ClientMIDI, path string, opts ...contracts.Option) error {
	pipe, err := sink.OpenPipeContext(ctx, path)
	if err != nil {
		return err
	}
	defer pipe.Close()
	return Stream(ctx, client, pipe, opts...)
}

// Ports lists input and output devices. Both lists are always attempted;
// failures are joined into err alongside whatever was listed.
func Ports(client contracts.ClientMIDI) (inputs, outputs []contracts.DeviceInfo, err error) {
	inputs, inErr := client.ListDevices()
	outputs, outErr := client.ListOutputDevices()
	return inputs, outputs, errors.Join(inErr, outErr)
}
