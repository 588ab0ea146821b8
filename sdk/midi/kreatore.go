package midi

import (
	"bytes"

	"github.com/leandrodaf/crim2s/internal/builder"
	"github.com/leandrodaf/crim2s/internal/sink"
	"github.com/leandrodaf/crim2s/internal/smfcodec"
	"github.com/leandrodaf/crim2s/sdk/contracts"
)

// Recipe types re-exported for callers outside this module.
type (
	Recipe           = builder.Recipe
	Phrase           = builder.Phrase
	ScaleWalk        = builder.ScaleWalk
	Randomized       = builder.Randomized
	ChordProgression = builder.ChordProgression
	Sequence         = builder.Sequence
)

// Build composes recipes into a document at the configured resolution.
func Build(recipes []Recipe, opts ...contracts.Option) (*contracts.Document, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	return builder.New(&options).Build(recipes...)
}

// CreateFile builds recipes and saves them as a MIDI file. A ".mid" extension
// is appended when path lacks one; the final path is returned. Nothing is
// written unless the whole document builds and encodes.
func CreateFile(path string, recipes []Recipe, opts ...contracts.Option) (string, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return "", err
	}

	doc, err := builder.New(&options).Build(recipes...)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := smfcodec.Encode(&buf, doc); err != nil {
		return "", err
	}

	path, appended := sink.EnsureMIDIExtension(path)
	if appended {
		options.Logger.Warn("File extension is not .mid; appending it", options.Logger.Field().String("path", path))
	}
	if err := sink.WriteFile(path, buf.Bytes()); err != nil {
		return "", err
	}
	options.Logger.Info("MIDI file created",
		options.Logger.Field().String("path", path),
		options.Logger.Field().Int("tracks", len(doc.Tracks)))
	return path, nil
}
