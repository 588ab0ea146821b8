// Command midixtractor converts a MIDI file into a .crim2s event log.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/leandrodaf/crim2s/internal/logger"
	"github.com/leandrodaf/crim2s/sdk/contracts"
	"github.com/leandrodaf/crim2s/sdk/midi"
	"github.com/urfave/cli/v3"
)

var errUsage = errors.New("uso: midixtractor <ruta_al_archivo_midi> <archivo_de_salida>")

func main() {
	log := logger.NewZapLogger()
	defer log.Sync()

	cmd := &cli.Command{
		Name:      "midixtractor",
		Usage:     "write every note event of a MIDI file, in time order, to <salida>.crim2s",
		ArgsUsage: "<ruta_al_archivo_midi> <archivo_de_salida>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "program-changes", Usage: "keep program_change events in the log"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				return errUsage
			}
			opts := []contracts.Option{
				contracts.WithLogger(log),
				contracts.WithProgramChanges(cmd.Bool("program-changes")),
			}
			if cmd.Bool("debug") {
				opts = append(opts, contracts.WithLogLevel(contracts.DebugLevel))
			}

			report, err := midi.ExtractFile(cmd.Args().Get(0), opts...)
			if err != nil {
				return err
			}
			path, err := midi.WriteReport(report, cmd.Args().Get(1))
			if err != nil {
				return err
			}
			fmt.Printf("Eventos escritos en %s (%d eventos, %d ticks)\n",
				path, len(report.Timeline.Events), report.Timeline.TotalTicks())
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Error("midixtractor failed", log.Field().Error("error", err))
		log.Sync()
		os.Exit(1)
	}
}
