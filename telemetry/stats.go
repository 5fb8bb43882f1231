package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats summarizes the sky over a window of frames.
type WindowStats struct {
	WindowStartFrame uint64 `csv:"window_start"`
	WindowEndFrame   uint64 `csv:"window_end"`
	Frames           int    `csv:"frames"`

	// Sun position at the end of the window
	SunX float64 `csv:"sun_x"`
	SunY float64 `csv:"sun_y"`

	NightFraction float64 `csv:"night_fraction"`
	CycleMean     float64 `csv:"cycle_mean"`

	// Mean grid density per frame
	CloudCoverMean float64 `csv:"cloud_cover_mean"`
	CloudCoverStd  float64 `csv:"cloud_cover_std"`
	CloudCoverP90  float64 `csv:"cloud_cover_p90"`

	// Density summed under the sun disc
	SunCoverageMean float64 `csv:"sun_coverage_mean"`
	SunCoverageMax  float64 `csv:"sun_coverage_max"`

	DarkenMean float64 `csv:"darken_mean"`
	DarkenMax  float64 `csv:"darken_max"`

	StarAlphaMean float64 `csv:"star_alpha_mean"`
}

// Summary holds the moments of one sampled series.
type Summary struct {
	Mean, Std, P90, Max float64
}

// Summarize computes mean, sample standard deviation, 90th percentile and max.
// Empty input yields zeros; a single value has zero spread.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{
		Mean: stat.Mean(sorted, nil),
		P90:  stat.Quantile(0.9, stat.Empirical, sorted, nil),
		Max:  floats.Max(sorted),
	}
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartFrame),
		slog.Uint64("window_end", s.WindowEndFrame),
		slog.Int("frames", s.Frames),
		slog.Float64("sun_x", s.SunX),
		slog.Float64("sun_y", s.SunY),
		slog.Float64("night_fraction", s.NightFraction),
		slog.Float64("cycle_mean", s.CycleMean),
		slog.Float64("cloud_cover_mean", s.CloudCoverMean),
		slog.Float64("cloud_cover_std", s.CloudCoverStd),
		slog.Float64("cloud_cover_p90", s.CloudCoverP90),
		slog.Float64("sun_coverage_mean", s.SunCoverageMean),
		slog.Float64("sun_coverage_max", s.SunCoverageMax),
		slog.Float64("darken_mean", s.DarkenMean),
		slog.Float64("darken_max", s.DarkenMax),
		slog.Float64("star_alpha_mean", s.StarAlphaMean),
	)
}

// LogStats logs the headline window numbers.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"night", s.NightFraction,
		"cloud_cover", s.CloudCoverMean,
		"sun_coverage", s.SunCoverageMean,
		"darken", s.DarkenMean,
		"stars", s.StarAlphaMean,
	)
}
