package analysis

import "sort"

// State classifies the behaviour of a source over an interval.
type State int

const (
	StateQuiescent State = iota
	StateFlare
	StateEclipse
)

func (s State) String() string {
	switch s {
	case StateQuiescent:
		return "quiescent"
	case StateFlare:
		return "flare"
	case StateEclipse:
		return "eclipse"
	default:
		return "unknown"
	}
}

// StateSegment is a maximal run of bins sharing one state.
type StateSegment struct {
	Start float64
	End   float64
	State State
}

// StateSegmentation covers the full binned time range with no gaps.
type StateSegmentation []StateSegment

// StateConfig holds the thresholds of the state detector. Flare and eclipse
// thresholds are multipliers over the median rate; MinRunLength is the
// number of consecutive bins needed to confirm a state change.
type StateConfig struct {
	FlareThreshold   float64
	EclipseThreshold float64
	MinRunLength     int
}

func (c StateConfig) validate() error {
	if c.FlareThreshold <= 0 || c.EclipseThreshold <= 0 {
		return ErrInvalidParameter
	}
	if c.EclipseThreshold >= c.FlareThreshold {
		return ErrInvalidParameter
	}
	if c.MinRunLength < 1 {
		return ErrInvalidParameter
	}
	return nil
}

type stateRun struct {
	start  int // first bin index
	length int
	state  State
}

// DetectStates segments a rate-binned series into quiescent, flare and
// eclipse intervals. Bins are first labelled against the median rate, then
// runs shorter than MinRunLength are reabsorbed so single-bin noise does not
// surface as an astrophysical event.
func DetectStates(binned BinnedSeries, cfg StateConfig) (StateSegmentation, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if binned.Mode != ModeRate {
		return nil, ErrInvalidParameter
	}
	if len(binned.Bins) == 0 {
		return nil, ErrEmptySeries
	}

	med := medianValue(binned.Bins)
	if med == 0 {
		// Thresholds relative to a zero baseline are degenerate; report the
		// whole range as quiescent rather than a spurious eclipse.
		return StateSegmentation{{
			Start: binned.Bins[0].Start,
			End:   binned.Bins[len(binned.Bins)-1].End,
			State: StateQuiescent,
		}}, nil
	}

	labels := make([]State, len(binned.Bins))
	for i, b := range binned.Bins {
		switch {
		case b.Value >= med*cfg.FlareThreshold:
			labels[i] = StateFlare
		case b.Value <= med*cfg.EclipseThreshold:
			labels[i] = StateEclipse
		default:
			labels[i] = StateQuiescent
		}
	}

	runs := compressRuns(labels)
	runs = absorbShortRuns(runs, cfg.MinRunLength)

	segments := make(StateSegmentation, len(runs))
	for i, r := range runs {
		segments[i] = StateSegment{
			Start: binned.Bins[r.start].Start,
			End:   binned.Bins[r.start+r.length-1].End,
			State: r.state,
		}
	}
	return segments, nil
}

func medianValue(bins []Bin) float64 {
	values := make([]float64, len(bins))
	for i, b := range bins {
		values[i] = b.Value
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid]) / 2
	}
	return values[mid]
}

func compressRuns(labels []State) []stateRun {
	var runs []stateRun
	for i, l := range labels {
		if len(runs) > 0 && runs[len(runs)-1].state == l {
			runs[len(runs)-1].length++
			continue
		}
		runs = append(runs, stateRun{start: i, length: 1, state: l})
	}
	return runs
}

// absorbShortRuns relabels flare/eclipse runs shorter than minRun. Interior
// short runs become quiescent; a short run at a sequence boundary adopts the
// state of its single neighbour. Quiescent runs are never reabsorbed, the
// baseline state is not noise.
func absorbShortRuns(runs []stateRun, minRun int) []stateRun {
	if len(runs) < 2 {
		return runs
	}

	relabelled := make([]stateRun, len(runs))
	copy(relabelled, runs)
	for i, r := range relabelled {
		if r.state == StateQuiescent || r.length >= minRun {
			continue
		}
		switch {
		case i == 0:
			relabelled[i].state = relabelled[i+1].state
		case i == len(relabelled)-1:
			relabelled[i].state = relabelled[i-1].state
		default:
			relabelled[i].state = StateQuiescent
		}
	}

	// Coalesce neighbours that now share a state.
	merged := relabelled[:1]
	for _, r := range relabelled[1:] {
		last := &merged[len(merged)-1]
		if last.state == r.state {
			last.length += r.length
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
