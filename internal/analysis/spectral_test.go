package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniformBins builds a rate-mode grid of the given values with bin width dt.
func uniformBins(values []float64, dt float64) BinnedSeries {
	bins := make([]Bin, len(values))
	for i, v := range values {
		bins[i] = Bin{
			Start: float64(i) * dt,
			End:   float64(i+1) * dt,
			Value: v,
		}
	}
	return BinnedSeries{Mode: ModeRate, Bins: bins}
}

func TestEstimatePSD_InvalidSigma(t *testing.T) {
	_, err := EstimatePSD(uniformBins([]float64{1, 2, 3, 4}, 1), 0)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestEstimatePSD_InsufficientData(t *testing.T) {
	_, err := EstimatePSD(uniformBins([]float64{1, 2, 3}, 1), 3)
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestEstimatePSD_NonUniformSampling(t *testing.T) {
	binned := uniformBins([]float64{1, 2, 3, 4, 5}, 1)
	binned.Bins[4].End = binned.Bins[4].Start + 0.5 // ragged tail

	_, err := EstimatePSD(binned, 3)
	require.ErrorIs(t, err, ErrNonUniformSampling)
}

func TestEstimatePSD_SinusoidPeak(t *testing.T) {
	const (
		n      = 128
		dt     = 1.0
		period = 16.0
	)
	values := make([]float64, n)
	for i := range values {
		values[i] = 10 + 5*math.Sin(2*math.Pi*float64(i)*dt/period)
	}

	psd, err := EstimatePSD(uniformBins(values, dt), 3)
	require.NoError(t, err)

	assert.InDelta(t, 1.0/(n*dt), psd.Resolution, 1e-12)
	assert.InDelta(t, 1.0/(2*dt), psd.Nyquist, 1e-12)
	require.Len(t, psd.Points, n/2+1)

	require.NotEmpty(t, psd.Candidates, "pure sinusoid must yield a significant peak")
	top := psd.Candidates[0]
	// The peak must land within one frequency-resolution bin of the true period.
	assert.InDelta(t, 1/period, top.Frequency, psd.Resolution)
	assert.Greater(t, top.Power, 0.0)

	// The DC bin never becomes a candidate even though it dominates the power.
	for _, c := range psd.Candidates {
		assert.Greater(t, c.Frequency, 0.0)
	}
}

func TestEstimatePSD_CandidateOrdering(t *testing.T) {
	const n = 64
	values := make([]float64, n)
	for i := range values {
		// Strong slow component plus a weaker fast one.
		values[i] = 20*math.Sin(2*math.Pi*float64(i)/32) + 15*math.Sin(2*math.Pi*float64(i)/8)
	}

	psd, err := EstimatePSD(uniformBins(values, 1), 1)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(psd.Candidates), 2)

	assert.InDelta(t, 1.0/32, psd.Candidates[0].Frequency, psd.Resolution)
	assert.InDelta(t, 1.0/8, psd.Candidates[1].Frequency, psd.Resolution)
	assert.GreaterOrEqual(t, psd.Candidates[0].Power, psd.Candidates[1].Power)
}
