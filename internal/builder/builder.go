package builder

import (
	"github.com/leandrodaf/crim2s/sdk/contracts"
)

// Builder turns recipes into a Document, one track per recipe.
type Builder struct {
	ticksPerBeat uint16
	logger       contracts.Logger
}

// New creates a Builder from the resolved client options.
func New(options *contracts.ClientOptions) *Builder {
	tpb := options.TicksPerBeat
	if tpb == 0 {
		tpb = contracts.DefaultTicksPerBeat
	}
	return &Builder{ticksPerBeat: tpb, logger: options.Logger}
}

// TicksPerBeat reports the resolution of built documents.
func (b *Builder) TicksPerBeat() int {
	return int(b.ticksPerBeat)
}

// Build composes every recipe, in order. Any out-of-range value or empty
// recipe aborts the whole build; no partial document is returned.
func (b *Builder) Build(recipes ...Recipe) (*contracts.Document, error) {
	if len(recipes) == 0 {
		return nil, &contracts.InvalidParameterError{Track: -1, Field: "tracks", Value: 0, Reason: "at least one recipe is required"}
	}

	doc := &contracts.Document{
		TicksPerBeat: b.ticksPerBeat,
		Tracks:       make([]contracts.Track, 0, len(recipes)),
	}
	for i, recipe := range recipes {
		p := newPhrase(i)
		if err := recipe.Compose(p); err != nil {
			return nil, err
		}
		track, tail, err := p.close(recipe.Name())
		if err != nil {
			return nil, err
		}
		track.Tail = tail
		doc.Tracks = append(doc.Tracks, track)

		if b.logger != nil {
			b.logger.Debug("track composed",
				b.logger.Field().Int("track", i),
				b.logger.Field().String("name", track.Name),
				b.logger.Field().Int("events", len(track.Events)))
		}
	}
	return doc, nil
}
