package analysis

import (
	"math"

	"github.com/astrolens/astrolens/internal/lightcurve"
)

// BinMode selects what value a bin carries.
type BinMode int

const (
	// ModeCount sums raw photon counts per bin.
	ModeCount BinMode = iota
	// ModeRate divides summed counts by the bin's covered duration.
	ModeRate
)

func (m BinMode) String() string {
	switch m {
	case ModeCount:
		return "count"
	case ModeRate:
		return "rate"
	default:
		return "unknown"
	}
}

// ParseBinMode parses a configuration string into a BinMode.
func ParseBinMode(s string) (BinMode, error) {
	switch s {
	case "count":
		return ModeCount, nil
	case "rate":
		return ModeRate, nil
	default:
		return 0, ErrInvalidParameter
	}
}

// Bin is one aggregation interval. Value is a count or a rate depending on
// the mode the series was produced with.
type Bin struct {
	Start float64
	End   float64
	Value float64
}

// Duration returns the covered time of the bin.
func (b Bin) Duration() float64 { return b.End - b.Start }

// BinnedSeries is an ordered sequence of contiguous, non-overlapping bins.
type BinnedSeries struct {
	Mode BinMode
	Bins []Bin
}

// uniformWidth reports the common bin width, or false when widths differ
// beyond floating tolerance (including a short trailing bin).
func (bs BinnedSeries) uniformWidth() (float64, bool) {
	if len(bs.Bins) == 0 {
		return 0, false
	}
	width := bs.Bins[0].Duration()
	for _, b := range bs.Bins[1:] {
		if math.Abs(b.Duration()-width) > 1e-9*math.Max(1, width) {
			return 0, false
		}
	}
	return width, true
}

// BinSeries aggregates a time series into fixed-width bins anchored at the
// series start. Every grid interval up to the last sample is emitted, empty
// ones with value 0, so the output covers the observation contiguously. The
// trailing bin may be shorter than width when the span is not an exact
// multiple.
func BinSeries(series *lightcurve.TimeSeries, width float64, mode BinMode) (BinnedSeries, error) {
	if series == nil || series.Len() == 0 {
		return BinnedSeries{}, ErrEmptySeries
	}
	span := series.Span()
	if width <= 0 || width > span {
		return BinnedSeries{}, ErrInvalidParameter
	}

	minTime := series.MinTime()
	maxTime := series.MaxTime()
	// Half-open [start, start+width) membership: a sample sitting exactly on
	// the last grid boundary opens one more (possibly shorter) bin.
	numBins := int(math.Floor(span/width)) + 1

	sums := make([]float64, numBins)
	for i := 0; i < series.Len(); i++ {
		s := series.At(i)
		idx := int((s.Time - minTime) / width)
		// Guard against floating-point overshoot at the last boundary.
		if idx >= numBins {
			idx = numBins - 1
		}
		sums[idx] += s.Counts
	}

	bins := make([]Bin, numBins)
	for i := range bins {
		start := minTime + float64(i)*width
		end := math.Min(start+width, maxTime)
		value := sums[i]
		if mode == ModeRate {
			d := end - start
			if d <= 0 {
				// A sample on the very last grid boundary opens a zero-length
				// bin; rate it over the nominal width.
				d = width
			}
			value = sums[i] / d
		}
		bins[i] = Bin{Start: start, End: end, Value: value}
	}
	return BinnedSeries{Mode: mode, Bins: bins}, nil
}

// TrimRaggedTail drops a trailing bin shorter than the leading bin width,
// leaving the uniform grid that spectral estimation requires. Series without
// a ragged tail are returned unchanged.
func TrimRaggedTail(binned BinnedSeries) BinnedSeries {
	n := len(binned.Bins)
	if n < 2 {
		return binned
	}
	head := binned.Bins[0].Duration()
	if binned.Bins[n-1].Duration() < head-1e-9*math.Max(1, head) {
		return BinnedSeries{Mode: binned.Mode, Bins: binned.Bins[:n-1]}
	}
	return binned
}
