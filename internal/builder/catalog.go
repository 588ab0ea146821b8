package builder

import "math/rand"

// DefaultVelocity is the intensity used by the stock generators.
const DefaultVelocity = 64

// Chromatic walks notes 1 to 127, one beat each with one beat of silence.
func Chromatic(ticksPerBeat int) []Recipe {
	return []Recipe{
		ScaleWalk{
			Title:    "Escala Cromática",
			Low:      1,
			High:     127,
			Velocity: DefaultVelocity,
			Duration: ticksPerBeat,
			Silence:  ticksPerBeat,
			Program:  Instrument(0),
		},
	}
}

// ScaleAndChords plays notes 60 to 79 for two beats each, then a 2, 3 and
// 5 note chord over C, all on one track. There is no silence after the
// final chord.
func ScaleAndChords(ticksPerBeat int) []Recipe {
	return []Recipe{
		Sequence{
			Title: "Escala y Acordes",
			Parts: []Recipe{
				ScaleWalk{
					Low:      60,
					High:     79,
					Velocity: DefaultVelocity,
					Duration: 2 * ticksPerBeat,
					Silence:  ticksPerBeat,
					Program:  Instrument(0),
				},
				ChordProgression{
					Chords: [][]int{
						{0, 4},
						{0, 4, 7},
					},
					Roots:    []int{60},
					Velocity: DefaultVelocity,
					Duration: 2 * ticksPerBeat,
					Silence:  ticksPerBeat,
				},
				// The track ends on the last release.
				ChordProgression{
					Chords:   [][]int{{0, 4, 7, 11, 14}},
					Roots:    []int{60},
					Velocity: DefaultVelocity,
					Duration: 2 * ticksPerBeat,
				},
			},
		},
	}
}

// MajorProgression is I-IV-V-I as intervals over the tonic.
var MajorProgression = [][]int{
	{0, 4, 7},
	{5, 9, 12},
	{7, 11, 14},
	{0, 4, 7},
}

// Multitrack builds four tracks: even notes, odd notes, randomNotes random
// notes drawn from rng, and the major progression over C4, D4 and E4.
func Multitrack(ticksPerBeat int, randomNotes int, rng *rand.Rand) []Recipe {
	parity := ParitySplit(21, 108, DefaultVelocity, ticksPerBeat, ticksPerBeat/2, Instrument(0))
	return []Recipe{
		parity[0],
		parity[1],
		RandomNotes(ticksPerBeat, randomNotes, rng),
		ChordProgression{
			Title:    "Progresión de Acordes",
			Chords:   MajorProgression,
			Roots:    []int{60, 62, 64},
			Velocity: DefaultVelocity,
			Duration: 2 * ticksPerBeat,
			Silence:  ticksPerBeat,
			Program:  Instrument(0),
		},
	}
}

// RandomNotes is count notes over the piano range, lasting half a beat to
// four beats, each followed by up to a beat of silence.
func RandomNotes(ticksPerBeat int, count int, rng *rand.Rand) Recipe {
	return Randomized{
		Title:      "Notas Aleatorias",
		Count:      count,
		NoteMin:    21,
		NoteMax:    108,
		DurMin:     ticksPerBeat / 2,
		DurMax:     4 * ticksPerBeat,
		SilenceMin: 0,
		SilenceMax: ticksPerBeat,
		Velocity:   DefaultVelocity,
		Program:    Instrument(0),
		Rand:       rng,
	}
}
