// Command midikreatore writes algorithmically generated MIDI files.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/leandrodaf/crim2s/internal/builder"
	"github.com/leandrodaf/crim2s/internal/logger"
	"github.com/leandrodaf/crim2s/sdk/contracts"
	"github.com/leandrodaf/crim2s/sdk/midi"
	"github.com/urfave/cli/v3"
)

var errUsage = errors.New("uso: midikreatore <generador> <nombre_del_archivo.mid>")

// generator turns the parsed flags into the recipes for one file.
type generator func(cmd *cli.Command, ticksPerBeat int) []midi.Recipe

func main() {
	log := logger.NewZapLogger()
	defer log.Sync()

	cmd := &cli.Command{
		Name:  "midikreatore",
		Usage: "generate MIDI files from scales, chords and random notes",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "ticks-per-beat", Value: int(contracts.DefaultTicksPerBeat), Usage: "file resolution"},
			&cli.IntFlag{Name: "seed", Usage: "random seed (default: current time)"},
			&cli.IntFlag{Name: "count", Value: 50, Usage: "number of random notes"},
		},
		Commands: []*cli.Command{
			subcommand(log, "chromatic", "every note from 1 to 127, one beat each", func(_ *cli.Command, tpb int) []midi.Recipe {
				return builder.Chromatic(tpb)
			}),
			subcommand(log, "chords", "notes 60-79 followed by 2, 3 and 5 note chords", func(_ *cli.Command, tpb int) []midi.Recipe {
				return builder.ScaleAndChords(tpb)
			}),
			subcommand(log, "multitrack", "even notes, odd notes, random notes and a chord progression", func(cmd *cli.Command, tpb int) []midi.Recipe {
				return builder.Multitrack(tpb, int(cmd.Int("count")), newRand(cmd, log))
			}),
			subcommand(log, "random", "a single track of random notes", func(cmd *cli.Command, tpb int) []midi.Recipe {
				return []midi.Recipe{builder.RandomNotes(tpb, int(cmd.Int("count")), newRand(cmd, log))}
			}),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Error("midikreatore failed", log.Field().Error("error", err))
		log.Sync()
		os.Exit(1)
	}
}

func subcommand(log contracts.Logger, name, usage string, gen generator) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<nombre_del_archivo.mid>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errUsage
			}
			tpb := int(cmd.Int("ticks-per-beat"))
			if tpb <= 0 || tpb > 0xFFFF {
				return &contracts.InvalidParameterError{Track: -1, Field: "ticks_per_beat", Value: tpb, Reason: "out of range 1-65535"}
			}

			path, err := midi.CreateFile(cmd.Args().Get(0), gen(cmd, tpb),
				contracts.WithLogger(log),
				contracts.WithTicksPerBeat(uint16(tpb)),
			)
			if err != nil {
				return err
			}
			fmt.Printf("Archivo MIDI '%s' creado con éxito.\n", path)
			return nil
		},
	}
}

func newRand(cmd *cli.Command, log contracts.Logger) *rand.Rand {
	seed := int64(cmd.Int("seed"))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info("Random seed", log.Field().Int64("seed", seed))
	return rand.New(rand.NewSource(seed))
}
