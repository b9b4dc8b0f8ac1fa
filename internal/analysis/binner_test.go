package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrolens/astrolens/internal/lightcurve"
)

func mustSeries(t *testing.T, samples []lightcurve.Sample) *lightcurve.TimeSeries {
	t.Helper()
	ts, err := lightcurve.NewTimeSeries(samples)
	require.NoError(t, err)
	return ts
}

func rampSeries(t *testing.T, n int) *lightcurve.TimeSeries {
	t.Helper()
	samples := make([]lightcurve.Sample, n)
	for i := range samples {
		samples[i] = lightcurve.Sample{Time: float64(i), Counts: float64(i%4 + 1)}
	}
	return mustSeries(t, samples)
}

func TestBinSeries_InvalidParameters(t *testing.T) {
	series := rampSeries(t, 10)

	for _, width := range []float64{0, -1, 100} {
		_, err := BinSeries(series, width, ModeCount)
		require.ErrorIs(t, err, ErrInvalidParameter, "width=%v", width)
	}
}

func TestBinSeries_EmptySeries(t *testing.T) {
	empty := mustSeries(t, nil)

	_, err := BinSeries(empty, 1, ModeCount)
	require.ErrorIs(t, err, ErrEmptySeries)
}

func TestBinSeries_CountConservation(t *testing.T) {
	series := rampSeries(t, 20)

	var total float64
	for i := 0; i < series.Len(); i++ {
		total += series.At(i).Counts
	}

	for _, width := range []float64{1, 2.5, 3, 7, 19} {
		binned, err := BinSeries(series, width, ModeCount)
		require.NoError(t, err)

		var sum float64
		for _, b := range binned.Bins {
			sum += b.Value
		}
		assert.InDelta(t, total, sum, 1e-9, "width=%v", width)
	}
}

func TestBinSeries_ContiguousNonOverlapping(t *testing.T) {
	series := rampSeries(t, 20)

	binned, err := BinSeries(series, 3, ModeCount)
	require.NoError(t, err)
	require.NotEmpty(t, binned.Bins)

	assert.Equal(t, series.MinTime(), binned.Bins[0].Start)
	assert.Equal(t, series.MaxTime(), binned.Bins[len(binned.Bins)-1].End)
	for i := 1; i < len(binned.Bins); i++ {
		assert.Equal(t, binned.Bins[i-1].End, binned.Bins[i].Start)
	}
}

func TestBinSeries_EmptyBinsEmitted(t *testing.T) {
	series := mustSeries(t, []lightcurve.Sample{
		{Time: 0, Counts: 3},
		{Time: 10, Counts: 7},
	})

	binned, err := BinSeries(series, 2, ModeCount)
	require.NoError(t, err)

	require.Len(t, binned.Bins, 6)
	values := make([]float64, len(binned.Bins))
	for i, b := range binned.Bins {
		values[i] = b.Value
	}
	assert.Equal(t, []float64{3, 0, 0, 0, 0, 7}, values)
}

func TestBinSeries_RateMode(t *testing.T) {
	samples := make([]lightcurve.Sample, 5)
	for i := range samples {
		samples[i] = lightcurve.Sample{Time: float64(i), Counts: 10}
	}
	series := mustSeries(t, samples)

	binned, err := BinSeries(series, 2, ModeRate)
	require.NoError(t, err)

	require.Len(t, binned.Bins, 3)
	assert.InDelta(t, 10, binned.Bins[0].Value, 1e-9) // 20 counts over 2s
	assert.InDelta(t, 10, binned.Bins[1].Value, 1e-9)
	// Zero-length trailing bin is rated over the nominal width.
	assert.InDelta(t, 5, binned.Bins[2].Value, 1e-9)

	// Rate times covered duration recovers the counts for full-width bins.
	var recovered float64
	for _, b := range binned.Bins[:2] {
		recovered += b.Value * b.Duration()
	}
	assert.InDelta(t, 40, recovered, 1e-9)
}

func TestTrimRaggedTail(t *testing.T) {
	series := rampSeries(t, 21) // span 20, width 3 leaves a ragged tail
	binned, err := BinSeries(series, 3, ModeCount)
	require.NoError(t, err)
	require.Len(t, binned.Bins, 7)

	trimmed := TrimRaggedTail(binned)
	require.Len(t, trimmed.Bins, 6)

	_, uniform := trimmed.uniformWidth()
	assert.True(t, uniform)

	// Already-uniform series pass through untouched.
	again := TrimRaggedTail(trimmed)
	assert.Equal(t, trimmed, again)
}
