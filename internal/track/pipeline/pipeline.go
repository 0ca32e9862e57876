// Package pipeline runs the reconstruction stages in order, taking every
// tunable from a config.TrackConfig.
package pipeline

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/banshee-data/trackgeo/internal/config"
	"github.com/banshee-data/trackgeo/internal/geo"
	"github.com/banshee-data/trackgeo/internal/monitoring"
	"github.com/banshee-data/trackgeo/internal/track"
	"github.com/banshee-data/trackgeo/internal/track/arclength"
	"github.com/banshee-data/trackgeo/internal/track/bank"
	"github.com/banshee-data/trackgeo/internal/track/centerline"
	"github.com/banshee-data/trackgeo/internal/track/outlier"
	"github.com/banshee-data/trackgeo/internal/track/resample"
	"github.com/banshee-data/trackgeo/internal/track/smooth"
)

// Pipeline holds a validated configuration and the stage implementations it
// selects. A Pipeline is safe to reuse across runs; it keeps no per-run
// state.
type Pipeline struct {
	cfg       *config.TrackConfig
	resampler resample.Resampler
	strategy  centerline.Strategy
}

// Result is the output of one Centerline run.
type Result struct {
	RunID string

	// Inside and Outside are the boundaries after low-pass filtering and
	// resampling, as handed to the engine.
	Inside  track.Path
	Outside track.Path

	Engine *centerline.Result

	// Distance is the arc length of each Engine.Center point.
	Distance []float64
}

// New validates cfg and resolves its stage selections. A nil cfg uses the
// built-in defaults.
func New(cfg *config.TrackConfig) (*Pipeline, error) {
	if cfg == nil {
		cfg = config.EmptyTrackConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	strategy, err := centerline.ParseStrategy(cfg.GetNearest())
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return &Pipeline{
		cfg:       cfg,
		resampler: resample.Spline{Kind: cfg.GetSpline()},
		strategy:  strategy,
	}, nil
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() *config.TrackConfig { return p.cfg }

// PrepareBoundary converts raw geodetic samples into the local frame and
// drops outliers. The returned indices identify the retained rows of raw so
// callers can carry extra per-row data along.
func (p *Pipeline) PrepareBoundary(raw []geo.LLA, origin geo.Origin) (track.Path, []int, error) {
	if len(raw) == 0 {
		return nil, nil, fmt.Errorf("pipeline: %w", track.ErrEmptyBoundary)
	}
	local := geo.PathToLocal(raw, origin)
	keep, err := outlier.Indices(local, p.cfg.GetOutlierThreshold())
	if err != nil {
		return nil, nil, fmt.Errorf("pipeline: %w", err)
	}
	if dropped := len(local) - len(keep); dropped > 0 {
		monitoring.Logf("pipeline: dropped %d of %d boundary points beyond %.1fm", dropped, len(local), p.cfg.GetOutlierThreshold())
	}
	return local.Subset(keep), keep, nil
}

// Centerline resamples both boundaries and runs the correspondence engine.
func (p *Pipeline) Centerline(inside, outside track.Path) (*Result, error) {
	r := &Result{RunID: uuid.NewString()}
	logf := monitoring.RunLogger(r.RunID)

	var err error
	if r.Inside, err = p.prepare(logf, "inside", inside); err != nil {
		return nil, err
	}
	if r.Outside, err = p.prepare(logf, "outside", outside); err != nil {
		return nil, err
	}

	r.Engine, err = centerline.Compute(r.Inside, r.Outside, centerline.Options{
		Window:   p.cfg.GetSmoothingWindow(),
		Clamp:    p.cfg.GetBankAngleClamp(),
		Negate:   p.cfg.GetBankAngleNegate(),
		Strategy: p.strategy,
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	logf("centerline: %d stations (window=%d nearest=%s)", len(r.Engine.Center), p.cfg.GetSmoothingWindow(), p.cfg.GetNearest())

	if p.cfg.GetArcLengthPlanar() {
		r.Distance, err = arclength.Planar(r.Engine.Center)
	} else {
		r.Distance, err = arclength.Cumulative(r.Engine.Center)
	}
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	logf("arc length: %.3fm", r.Distance[len(r.Distance)-1])
	return r, nil
}

func (p *Pipeline) prepare(logf func(string, ...interface{}), name string, b track.Path) (track.Path, error) {
	in := len(b)
	if p.cfg.GetLowPassEnabled() {
		var err error
		b, err = smooth.LowPassDedup(b, p.cfg.GetLowPassAlpha(), p.cfg.GetLowPassTolerance())
		if err != nil {
			return nil, fmt.Errorf("pipeline: %s low-pass: %w", name, err)
		}
		logf("%s: low-pass kept %d of %d points", name, len(b), in)
	}
	out, err := p.resampler.Resample(b, p.cfg.GetResampleCount())
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s resample: %w", name, err)
	}
	logf("%s: resampled %d -> %d points (%s)", name, len(b), len(out), p.cfg.GetSpline())
	return out, nil
}

// ComputedStations pairs each centerline point with the bank angle the
// engine measured between the boundaries.
func (p *Pipeline) ComputedStations(r *Result) []track.Station {
	return track.NewStations(r.Engine.Center, r.Distance, r.Engine.Bank)
}

// TableStations assigns each station the angle of the table row whose
// distance is nearest the station's arc length.
func (p *Pipeline) TableStations(r *Result, tableDist, tableAngle []float64) ([]track.Station, error) {
	angles, err := arclength.MapByNearestDistance(r.Distance, tableDist, tableAngle)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return track.NewStations(r.Engine.Center, r.Distance, angles), nil
}

// SampleStations interpolates sparse samples from src across every station.
func (p *Pipeline) SampleStations(r *Result, src bank.Source) ([]track.Station, error) {
	angles, err := bank.Interpolate(src, len(r.Engine.Center))
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return track.NewStations(r.Engine.Center, r.Distance, angles), nil
}

// Candidates returns the station indices offered for manual bank entry.
func (p *Pipeline) Candidates(r *Result) []int {
	return bank.CandidateAbscissas(len(r.Engine.Center), p.cfg.GetCandidateAbscissas())
}
