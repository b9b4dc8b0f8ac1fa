package analysis

import (
	"math"

	"github.com/astrolens/astrolens/internal/lightcurve"
)

// TrendConfig parameterizes the slope-based flare and eclipse scans, which
// work on the cumulative count curve rather than on binned rates.
type TrendConfig struct {
	GroupSize        int     // samples per regression group
	Sigma            float64 // significance of a slope over the slope population
	ClusterThreshold float64 // fraction of flagged groups required to call a cluster
	EclipseSlopeMax  float64 // slopes at or below this are eclipse candidates
}

func (c TrendConfig) validate() error {
	if c.GroupSize < 2 {
		return ErrInvalidParameter
	}
	if c.Sigma <= 0 {
		return ErrInvalidParameter
	}
	if c.ClusterThreshold <= 0 || c.ClusterThreshold > 1 {
		return ErrInvalidParameter
	}
	return nil
}

// Interval is a candidate event time range on the raw sample clock.
type Interval struct {
	Start float64
	End   float64
}

// FlareScan reports whether the cumulative count curve shows a clustered run
// of regression slopes significantly above the slope population mean. It is
// a cheap yes/no screen, complementary to the rate-threshold state detector.
func FlareScan(series *lightcurve.TimeSeries, cfg TrendConfig) (bool, error) {
	slopes, _, err := groupSlopes(series, cfg)
	if err != nil {
		return false, err
	}

	mean, stddev := meanStddev(slopes)
	if stddev == 0 {
		// A constant slope population has no outliers.
		return false, nil
	}
	flagged := make([]bool, len(slopes))
	for i, s := range slopes {
		flagged[i] = s >= mean+cfg.Sigma*stddev
	}

	// Cluster check: a window of GroupSize consecutive groups must exceed
	// the threshold fraction of flagged members.
	for i := 0; i+cfg.GroupSize <= len(flagged); i += cfg.GroupSize {
		hits := 0
		for j := i; j < i+cfg.GroupSize; j++ {
			if flagged[j] {
				hits++
			}
		}
		if float64(hits)/float64(cfg.GroupSize) >= cfg.ClusterThreshold {
			return true, nil
		}
	}
	return false, nil
}

// EclipseScan finds runs of near-flat cumulative count growth, the signature
// of the source dropping out. Runs of at least two consecutive low-slope
// groups are reported as candidate intervals.
func EclipseScan(series *lightcurve.TimeSeries, cfg TrendConfig) ([]Interval, error) {
	slopes, starts, err := groupSlopes(series, cfg)
	if err != nil {
		return nil, err
	}

	var intervals []Interval
	runStart := -1
	for i, s := range slopes {
		if s <= cfg.EclipseSlopeMax {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart >= 0 && i-runStart > 1 {
			intervals = append(intervals, Interval{Start: starts[runStart], End: starts[i]})
		}
		runStart = -1
	}
	if runStart >= 0 && len(slopes)-runStart > 1 {
		intervals = append(intervals, Interval{Start: starts[runStart], End: series.MaxTime()})
	}
	return intervals, nil
}

// groupSlopes cuts the cumulative curve into GroupSize-sample groups and
// returns the regression slope of each, plus each group's start time.
// Degenerate groups (zero variance) contribute slope 0.
func groupSlopes(series *lightcurve.TimeSeries, cfg TrendConfig) ([]float64, []float64, error) {
	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}
	if series == nil || series.Len() == 0 {
		return nil, nil, ErrEmptySeries
	}
	if series.Len() < cfg.GroupSize {
		return nil, nil, ErrInsufficientData
	}

	cumulative := Cumulative(series)
	numGroups := len(cumulative) / cfg.GroupSize

	slopes := make([]float64, numGroups)
	starts := make([]float64, numGroups)
	for g := 0; g < numGroups; g++ {
		group := cumulative[g*cfg.GroupSize : (g+1)*cfg.GroupSize]
		starts[g] = group[0].Time
		slopes[g] = regressionSlope(group)
	}
	return slopes, starts, nil
}

// regressionSlope is the least-squares slope r*std(y)/std(x) of a cumulative
// count group. NaN (a constant group) collapses to 0.
func regressionSlope(points []CumulativePoint) float64 {
	n := float64(len(points))

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.Time
		sumY += p.Total
	}
	meanX := sumX / n
	meanY := sumY / n

	var covXY, varX float64
	for _, p := range points {
		dx := p.Time - meanX
		covXY += dx * (p.Total - meanY)
		varX += dx * dx
	}

	if varX == 0 {
		return 0
	}
	slope := covXY / varX
	if math.IsNaN(slope) {
		return 0
	}
	return slope
}

func meanStddev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}
