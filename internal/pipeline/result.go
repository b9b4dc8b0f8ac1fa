package pipeline

import "github.com/astrolens/astrolens/internal/analysis"

// AnalysisResult is the full per-lightcurve output of one analyzer worker.
// Err is set when any stage of the chain rejected the observation; the other
// fields are only meaningful when Err is nil.
type AnalysisResult struct {
	ObsID  string
	Galaxy string

	Summary    analysis.Summary
	Binned     analysis.BinnedSeries
	PSD        analysis.PSD
	Segments   analysis.StateSegmentation
	FlareFound bool
	Eclipses   []analysis.Interval

	Err error
}

// stateCounts tallies segments per state for reporting.
func (r *AnalysisResult) stateCounts() map[analysis.State]int {
	counts := make(map[analysis.State]int)
	for _, seg := range r.Segments {
		counts[seg.State]++
	}
	return counts
}
