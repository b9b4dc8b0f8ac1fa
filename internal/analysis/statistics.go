package analysis

import (
	"math"

	"github.com/astrolens/astrolens/internal/lightcurve"
)

// Summary holds the scalar statistics of a single observation, together
// with the identification passed through from its metadata.
type Summary struct {
	TotalCounts       float64
	ObservationTimeKs float64
	RateKs            float64 // counts per kilosecond; NaN when the span is degenerate
	RateS             float64 // counts per second; NaN when the span is degenerate

	ObsID  string
	Coords string
	RA     float64
	Dec    float64
	Galaxy string
}

// Summarize computes the observation-level statistics of a time series.
// A degenerate span (single sample, or all samples at one instant) yields
// NaN rates rather than a division by zero.
func Summarize(series *lightcurve.TimeSeries, meta lightcurve.Metadata) (Summary, error) {
	if series == nil || series.Len() == 0 {
		return Summary{}, ErrEmptySeries
	}

	var total float64
	for i := 0; i < series.Len(); i++ {
		total += series.At(i).Counts
	}

	spanKs := series.Span() / 1000

	rateKs := math.NaN()
	rateS := math.NaN()
	if spanKs > 0 {
		rateKs = total / spanKs
		rateS = rateKs / 1000
	}

	return Summary{
		TotalCounts:       total,
		ObservationTimeKs: spanKs,
		RateKs:            rateKs,
		RateS:             rateS,
		ObsID:             meta.ObsID,
		Coords:            meta.Coords,
		RA:                meta.RA,
		Dec:               meta.Dec,
		Galaxy:            meta.Galaxy,
	}, nil
}
