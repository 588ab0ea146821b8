// Command realtimextractor streams live note events from the first MIDI
// input into a named pipe, in .crim2s format.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/leandrodaf/crim2s/internal/logger"
	"github.com/leandrodaf/crim2s/sdk/contracts"
	"github.com/leandrodaf/crim2s/sdk/midi"
	"github.com/urfave/cli/v3"
)

var errUsage = errors.New("uso: realtimextractor <nombre_del_pipe>")

func main() {
	log := logger.NewZapLogger()
	defer log.Sync()

	cmd := &cli.Command{
		Name:      "realtimextractor",
		Usage:     "append live MIDI note events to a named pipe until interrupted",
		ArgsUsage: "<nombre_del_pipe>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "bpm", Value: int(contracts.DefaultTempo), Usage: "fixed tempo used to convert elapsed time into ticks"},
			&cli.IntFlag{Name: "ticks-per-beat", Value: int(contracts.DefaultTicksPerBeat), Usage: "resolution written in the header"},
			&cli.StringFlag{Name: "device", Usage: "input device name (default: first available)"},
			&cli.BoolFlag{Name: "debug", Usage: "log every received event"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errUsage
			}
			tpb := int(cmd.Int("ticks-per-beat"))
			if tpb <= 0 || tpb > 0xFFFF {
				return &contracts.InvalidParameterError{Track: -1, Field: "ticks_per_beat", Value: tpb, Reason: "out of range 1-65535"}
			}

			opts := []contracts.Option{
				contracts.WithLogger(log),
				contracts.WithTempo(float64(cmd.Int("bpm"))),
				contracts.WithTicksPerBeat(uint16(tpb)),
				contracts.WithDeviceSelector(contracts.DeviceNamed(cmd.String("device"))),
				contracts.WithMIDIEventFilter(contracts.MIDIEventFilter{
					Commands: []contracts.MIDICommand{contracts.NoteOn, contracts.NoteOff},
				}),
			}
			if cmd.Bool("debug") {
				opts = append(opts, contracts.WithLogLevel(contracts.DebugLevel))
			}

			client, err := midi.NewMIDIClient(opts...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return midi.StreamToPipe(ctx, client, cmd.Args().Get(0), opts...)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Error("realtimextractor failed", log.Field().Error("error", err))
		log.Sync()
		os.Exit(1)
	}
}
