package midi

import (
	"fmt"
	"io"
	"os"

	"github.com/leandrodaf/crim2s/internal/sink"
	"github.com/leandrodaf/crim2s/internal/smfcodec"
	"github.com/leandrodaf/crim2s/internal/timeline"
	"github.com/leandrodaf/crim2s/sdk/contracts"
)

// Extract decodes a MIDI container from r and builds its timeline report.
// source is recorded in the report header.
func Extract(r io.Reader, source string, opts ...contracts.Option) (*contracts.Report, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	doc, err := smfcodec.Decode(r, source)
	if err != nil {
		return nil, err
	}

	report := timeline.NewReport(source, doc, timeline.Options{KeepProgramChanges: options.KeepProgramChanges})
	options.Logger.Debug("Timeline extracted",
		options.Logger.Field().String("source", source),
		options.Logger.Field().Int("tracks", report.TrackCount),
		options.Logger.Field().Int("events", len(report.Timeline.Events)),
		options.Logger.Field().Uint64("totalTicks", report.Timeline.TotalTicks()))
	return report, nil
}

// ExtractFile is Extract over the file at path.
func ExtractFile(path string, opts ...contracts.Option) (*contracts.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open MIDI file: %w", err)
	}
	defer f.Close()
	return Extract(f, path, opts...)
}

// WriteReport renders report into outBase + ".crim2s" and returns that path.
func WriteReport(report *contracts.Report, outBase string) (string, error) {
	f, err := sink.CreateReport(outBase)
	if err != nil {
		return "", err
	}
	if err := timeline.WriteReport(f, report); err != nil {
		f.Close()
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	return f.Name(), nil
}
