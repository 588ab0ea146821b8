package timeline

import (
	"context"
	"errors"
	"time"

	"github.com/leandrodaf/crim2s/sdk/contracts"
	"golang.org/x/sync/errgroup"
)

// ErrRecorderStarted is returned when Start is called twice.
var ErrRecorderStarted = errors.New("recorder already started")

// LineWriter writes one complete line and flushes it before returning.
// Implementations must be safe for concurrent use.
type LineWriter interface {
	WriteLine(line string) error
}

// RecorderConfig configures a streaming Recorder.
type RecorderConfig struct {
	TicksPerBeat uint16
	// Tempo is the fixed bpm used to turn elapsed wall time into ticks.
	// Tempo changes in the live stream are not tracked.
	Tempo   float64
	Options Options
	Clock   func() time.Time
	Logger  contracts.Logger
}

// Recorder appends live events to a sink as they arrive. Arrival order is
// taken as temporal order, so nothing is sorted.
type Recorder struct {
	out    LineWriter
	cfg    RecorderConfig
	start  time.Time
	active bool
}

// NewRecorder returns a recorder that owns out for its whole lifetime.
func NewRecorder(out LineWriter, cfg RecorderConfig) *Recorder {
	if cfg.TicksPerBeat == 0 {
		cfg.TicksPerBeat = contracts.DefaultTicksPerBeat
	}
	if cfg.Tempo <= 0 {
		cfg.Tempo = contracts.DefaultTempo
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Recorder{out: out, cfg: cfg}
}

// Start writes the header and marks the stream start time.
func (r *Recorder) Start() error {
	if r.active {
		return ErrRecorderStarted
	}
	r.start = r.cfg.Clock()
	r.active = true
	for _, line := range liveHeader(r.cfg.TicksPerBeat) {
		if err := r.out.WriteLine(line); err != nil {
			return err
		}
	}
	return nil
}

// Ticks converts the time elapsed since Start into ticks at the fixed tempo.
func (r *Recorder) Ticks(at time.Time) uint64 {
	elapsed := at.Sub(r.start)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed.Seconds() * float64(r.cfg.TicksPerBeat) * r.cfg.Tempo / 60)
}

// Record timestamps a single live message and writes it if it is retained.
// It reports whether a line was written.
func (r *Recorder) Record(m contracts.MIDI) (bool, error) {
	at := r.cfg.Clock()
	if m.Timestamp != 0 {
		at = time.Unix(0, int64(m.Timestamp))
	}

	e := m.Event(r.Ticks(at))
	if !r.cfg.Options.retains(e) {
		return false, nil
	}
	if err := r.out.WriteLine(FormatEvent(e)); err != nil {
		return false, err
	}
	if r.cfg.Logger != nil {
		r.cfg.Logger.Debug("live event recorded",
			r.cfg.Logger.Field().Uint64("time", e.AbsoluteTime),
			r.cfg.Logger.Field().String("event", e.String()))
	}
	return true, nil
}

// Run writes the header and then records every event from sources until all
// of them close or ctx is cancelled. Events from several sources are written
// in arrival order; each line reaches the sink whole.
func (r *Recorder) Run(ctx context.Context, sources ...<-chan contracts.MIDI) error {
	if err := r.Start(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, src := range sources {
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case m, ok := <-src:
					if !ok {
						return nil
					}
					if _, err := r.Record(m); err != nil {
						return err
					}
				}
			}
		})
	}
	return g.Wait()
}
