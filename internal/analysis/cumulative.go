package analysis

import "github.com/astrolens/astrolens/internal/lightcurve"

// CumulativePoint is one step of a running photon-count total.
type CumulativePoint struct {
	Time  float64
	Total float64
}

// Cumulative returns the running total of counts over time, one point per
// input sample. An empty series yields an empty result, not an error.
func Cumulative(series *lightcurve.TimeSeries) []CumulativePoint {
	if series == nil || series.Len() == 0 {
		return nil
	}
	points := make([]CumulativePoint, series.Len())
	var total float64
	for i := 0; i < series.Len(); i++ {
		s := series.At(i)
		total += s.Counts
		points[i] = CumulativePoint{Time: s.Time, Total: total}
	}
	return points
}
