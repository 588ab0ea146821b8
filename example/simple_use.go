package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leandrodaf/crim2s/internal/logger"
	"github.com/leandrodaf/crim2s/sdk/contracts"
	"github.com/leandrodaf/crim2s/sdk/midi"
)

func main() {
	log := logger.NewZapLogger()

	recipes := []midi.Recipe{
		midi.ChordProgression{
			Title:    "I-IV-V-I",
			Chords:   [][]int{{0, 4, 7}, {5, 9, 12}, {7, 11, 14}, {0, 4, 7}},
			Roots:    []int{60},
			Velocity: 64,
			Duration: 960,
			Silence:  480,
		},
	}

	path, err := midi.CreateFile(filepath.Join(os.TempDir(), "progression"), recipes,
		contracts.WithLogger(log),
		contracts.WithTicksPerBeat(480),
	)
	if err != nil {
		log.Error("Failed to create MIDI file", log.Field().Error("error", err))
		return
	}

	report, err := midi.ExtractFile(path, contracts.WithLogger(log))
	if err != nil {
		log.Error("Failed to extract MIDI file", log.Field().Error("error", err))
		return
	}

	fmt.Println("Total ticks:", report.Timeline.TotalTicks())
	for _, e := range report.Timeline.Events {
		log.Info("MIDI Event",
			log.Field().Uint64("Time", e.AbsoluteTime),
			log.Field().Int("Track", e.Track),
			log.Field().String("Event", e.String()),
		)
	}
}
