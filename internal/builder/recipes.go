package builder

import (
	"math/rand"
)

// Recipe is a pure description of one track's notes.
type Recipe interface {
	Name() string
	Compose(p *Phrase) error
}

// Instrument returns a pointer to program, for recipes that open with a program change.
func Instrument(program int) *int {
	return &program
}

func composeProgram(p *Phrase, program *int) error {
	if program == nil {
		return nil
	}
	return p.Program(*program)
}

// ScaleWalk plays every Step-th note from Low to High inclusive, each held
// for Duration ticks and followed by Silence ticks.
type ScaleWalk struct {
	Title    string
	Low      int
	High     int
	Step     int
	Velocity int
	Duration int
	Silence  int
	Program  *int
}

func (s ScaleWalk) Name() string { return s.Title }

func (s ScaleWalk) Compose(p *Phrase) error {
	if err := composeProgram(p, s.Program); err != nil {
		return err
	}
	step := s.Step
	if step <= 0 {
		step = 1
	}
	for note := s.Low; note <= s.High; note += step {
		if err := p.Note(note, s.Velocity, s.Duration); err != nil {
			return err
		}
		if err := p.Rest(s.Silence); err != nil {
			return err
		}
	}
	return nil
}

// ParitySplit returns two walks over the half-open range [low, high): the
// first plays the even notes, the second the odd ones.
func ParitySplit(low, high, velocity, duration, silence int, program *int) [2]Recipe {
	firstEven, firstOdd := low, low+1
	if low%2 != 0 {
		firstEven, firstOdd = low+1, low
	}
	return [2]Recipe{
		ScaleWalk{Title: "Notas Pares", Low: firstEven, High: high - 1, Step: 2,
			Velocity: velocity, Duration: duration, Silence: silence, Program: program},
		ScaleWalk{Title: "Notas Impares", Low: firstOdd, High: high - 1, Step: 2,
			Velocity: velocity, Duration: duration, Silence: silence, Program: program},
	}
}

// Randomized plays Count notes with pitch, duration and following silence
// each drawn uniformly from their inclusive bounds. The same seed always
// yields the same notes.
type Randomized struct {
	Title      string
	Count      int
	NoteMin    int
	NoteMax    int
	DurMin     int
	DurMax     int
	SilenceMin int
	SilenceMax int
	Velocity   int
	Program    *int
	Rand       *rand.Rand
}

func (r Randomized) Name() string { return r.Title }

func (r Randomized) Compose(p *Phrase) error {
	if r.Rand == nil {
		return p.invalid("rand", 0, "no random source")
	}
	if err := composeProgram(p, r.Program); err != nil {
		return err
	}
	for range r.Count {
		note, err := between(r.Rand, p, "note", r.NoteMin, r.NoteMax)
		if err != nil {
			return err
		}
		dur, err := between(r.Rand, p, "duration", r.DurMin, r.DurMax)
		if err != nil {
			return err
		}
		if err := p.Note(note, r.Velocity, dur); err != nil {
			return err
		}
		silence, err := between(r.Rand, p, "silence", r.SilenceMin, r.SilenceMax)
		if err != nil {
			return err
		}
		if err := p.Rest(silence); err != nil {
			return err
		}
	}
	return nil
}

func between(rng *rand.Rand, p *Phrase, field string, lo, hi int) (int, error) {
	if hi < lo {
		return 0, p.invalid(field, hi, "upper bound below lower bound")
	}
	return lo + rng.Intn(hi-lo+1), nil
}

// ChordProgression replays Chords, given as intervals over a root, once per
// root in Roots. Each chord sounds for Duration ticks, then rests Silence.
type ChordProgression struct {
	Title    string
	Chords   [][]int
	Roots    []int
	Velocity int
	Duration int
	Silence  int
	Program  *int
}

func (c ChordProgression) Name() string { return c.Title }

func (c ChordProgression) Compose(p *Phrase) error {
	if err := composeProgram(p, c.Program); err != nil {
		return err
	}
	for _, root := range c.Roots {
		for _, chord := range c.Chords {
			notes := make([]int, len(chord))
			for i, interval := range chord {
				notes[i] = root + interval
			}
			if err := p.Chord(notes, c.Velocity, c.Duration); err != nil {
				return err
			}
			if err := p.Rest(c.Silence); err != nil {
				return err
			}
		}
	}
	return nil
}

// Sequence plays several recipes one after another on a single track.
type Sequence struct {
	Title string
	Parts []Recipe
}

func (s Sequence) Name() string { return s.Title }

func (s Sequence) Compose(p *Phrase) error {
	for _, part := range s.Parts {
		if err := part.Compose(p); err != nil {
			return err
		}
	}
	return nil
}
