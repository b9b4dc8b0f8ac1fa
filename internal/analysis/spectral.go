package analysis

import (
	"math"
	"sort"
)

// minSpectralBins is the shortest series for which a periodogram is
// statistically meaningful.
const minSpectralBins = 4

// SpectralPoint is one frequency bin of a power spectral density estimate.
type SpectralPoint struct {
	Frequency float64
	Power     float64
}

// PeriodCandidate is a significant periodogram peak, reported as a period.
type PeriodCandidate struct {
	Period    float64
	Frequency float64
	Power     float64
}

// PSD is a one-sided power spectral density estimate over a uniformly
// binned series.
type PSD struct {
	Points     []SpectralPoint
	Resolution float64 // frequency step, 1/(N*dt)
	Nyquist    float64 // highest resolvable frequency, 1/(2*dt)
	Candidates []PeriodCandidate
}

// EstimatePSD computes a one-sided periodogram of the bin values. Peaks whose
// power exceeds mean+sigma*stddev of the spectrum become period candidates,
// ordered by power, then by lower frequency. The zero-frequency bin carries
// the series mean and is excluded from candidate selection.
func EstimatePSD(binned BinnedSeries, sigma float64) (PSD, error) {
	if sigma <= 0 {
		return PSD{}, ErrInvalidParameter
	}
	n := len(binned.Bins)
	if n < minSpectralBins {
		return PSD{}, ErrInsufficientData
	}
	dt, ok := binned.uniformWidth()
	if !ok {
		return PSD{}, ErrNonUniformSampling
	}

	values := make([]float64, n)
	for i, b := range binned.Bins {
		values[i] = b.Value
	}

	fs := 1 / dt
	points := periodogram(values, fs)

	psd := PSD{
		Points:     points,
		Resolution: 1 / (float64(n) * dt),
		Nyquist:    fs / 2,
	}
	psd.Candidates = peakCandidates(points, sigma)
	return psd, nil
}

// periodogram evaluates the one-sided DFT periodogram with density scaling,
// matching the conventional scipy.signal.periodogram output. O(N^2) is
// acceptable at lightcurve bin counts.
func periodogram(values []float64, fs float64) []SpectralPoint {
	n := len(values)
	half := n / 2
	points := make([]SpectralPoint, half+1)

	for k := 0; k <= half; k++ {
		var re, im float64
		for j, v := range values {
			angle := 2 * math.Pi * float64(k) * float64(j) / float64(n)
			re += v * math.Cos(angle)
			im -= v * math.Sin(angle)
		}
		power := (re*re + im*im) / (fs * float64(n))
		// One-sided spectrum doubles interior bins; DC and Nyquist are unique.
		if k != 0 && !(n%2 == 0 && k == half) {
			power *= 2
		}
		points[k] = SpectralPoint{
			Frequency: float64(k) * fs / float64(n),
			Power:     power,
		}
	}
	return points
}

// peakCandidates selects spectral peaks significantly above the spectrum
// mean. The DC bin is skipped both in the statistics and as a candidate.
func peakCandidates(points []SpectralPoint, sigma float64) []PeriodCandidate {
	if len(points) < 2 {
		return nil
	}

	var sum, sumSq float64
	n := 0
	for _, p := range points[1:] {
		sum += p.Power
		sumSq += p.Power * p.Power
		n++
	}
	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	threshold := mean + sigma*math.Sqrt(variance)

	var candidates []PeriodCandidate
	for _, p := range points[1:] {
		if p.Power > threshold && p.Frequency > 0 {
			candidates = append(candidates, PeriodCandidate{
				Period:    1 / p.Frequency,
				Frequency: p.Frequency,
				Power:     p.Power,
			})
		}
	}

	// Strongest first; on equal power prefer the longer period.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Power != candidates[j].Power {
			return candidates[i].Power > candidates[j].Power
		}
		return candidates[i].Frequency < candidates[j].Frequency
	})
	return candidates
}
