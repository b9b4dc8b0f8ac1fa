package lightcurve

// FrameTime is the native Chandra ACIS frame time in seconds. Raw lightcurve
// tables are sampled on this cadence, one row per frame.
const FrameTime = 3.241039999999654

// Sample is a single photon-count observation at a point in time.
// Time is in seconds; Counts is the photon count recorded at that time.
type Sample struct {
	Time   float64
	Counts float64
}

// Metadata carries the source identification attached to a lightcurve at
// load time. It is never recomputed downstream.
type Metadata struct {
	ObsID  string
	Coords string // J2000, "HH MM SS.SSS +/- DD MM SS"
	RA     float64
	Dec    float64
	Galaxy string
}

// TimeSeries is an immutable, time-ordered sequence of samples. Construct one
// with NewTimeSeries; downstream analysis only ever reads it.
type TimeSeries struct {
	samples []Sample
}

// NewTimeSeries validates and copies the given samples into a TimeSeries.
// Sample times must be non-decreasing and counts non-negative.
func NewTimeSeries(samples []Sample) (*TimeSeries, error) {
	for i, s := range samples {
		if s.Counts < 0 {
			return nil, ErrNegativeCounts
		}
		if i > 0 && s.Time < samples[i-1].Time {
			return nil, ErrUnorderedSamples
		}
	}
	owned := make([]Sample, len(samples))
	copy(owned, samples)
	return &TimeSeries{samples: owned}, nil
}

// Len returns the number of samples.
func (ts *TimeSeries) Len() int { return len(ts.samples) }

// At returns the i-th sample.
func (ts *TimeSeries) At(i int) Sample { return ts.samples[i] }

// MinTime returns the time of the first sample. Callers must check Len first.
func (ts *TimeSeries) MinTime() float64 { return ts.samples[0].Time }

// MaxTime returns the time of the last sample. Callers must check Len first.
func (ts *TimeSeries) MaxTime() float64 { return ts.samples[len(ts.samples)-1].Time }

// Span returns MaxTime-MinTime, or 0 for series with fewer than two samples.
func (ts *TimeSeries) Span() float64 {
	if len(ts.samples) < 2 {
		return 0
	}
	return ts.MaxTime() - ts.MinTime()
}
