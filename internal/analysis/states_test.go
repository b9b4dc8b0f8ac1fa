package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultStateConfig() StateConfig {
	return StateConfig{
		FlareThreshold:   2,
		EclipseThreshold: 0.2,
		MinRunLength:     2,
	}
}

func TestDetectStates_InvalidConfig(t *testing.T) {
	binned := uniformBins([]float64{1, 1, 1, 1}, 1)

	cases := map[string]StateConfig{
		"zero flare threshold":      {FlareThreshold: 0, EclipseThreshold: 0.2, MinRunLength: 2},
		"negative eclipse":          {FlareThreshold: 2, EclipseThreshold: -1, MinRunLength: 2},
		"eclipse at or above flare": {FlareThreshold: 2, EclipseThreshold: 2, MinRunLength: 2},
		"zero min run length":       {FlareThreshold: 2, EclipseThreshold: 0.2, MinRunLength: 0},
	}
	for name, cfg := range cases {
		_, err := DetectStates(binned, cfg)
		assert.ErrorIs(t, err, ErrInvalidParameter, name)
	}
}

func TestDetectStates_RequiresRateMode(t *testing.T) {
	binned := uniformBins([]float64{1, 1, 1, 1}, 1)
	binned.Mode = ModeCount

	_, err := DetectStates(binned, defaultStateConfig())
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestDetectStates_EmptySeries(t *testing.T) {
	_, err := DetectStates(BinnedSeries{Mode: ModeRate}, defaultStateConfig())
	require.ErrorIs(t, err, ErrEmptySeries)
}

func TestDetectStates_ConstantRate(t *testing.T) {
	binned := uniformBins([]float64{5, 5, 5, 5, 5, 5}, 10)

	segments, err := DetectStates(binned, defaultStateConfig())
	require.NoError(t, err)

	require.Len(t, segments, 1)
	assert.Equal(t, StateQuiescent, segments[0].State)
	assert.Equal(t, 0.0, segments[0].Start)
	assert.Equal(t, 60.0, segments[0].End)
}

func TestDetectStates_SingleBinSpikeAbsorbed(t *testing.T) {
	binned := uniformBins([]float64{5, 5, 50, 5, 5}, 1)

	segments, err := DetectStates(binned, defaultStateConfig())
	require.NoError(t, err)

	require.Len(t, segments, 1)
	assert.Equal(t, StateQuiescent, segments[0].State)
}

func TestDetectStates_SustainedFlare(t *testing.T) {
	binned := uniformBins([]float64{5, 5, 50, 50, 5, 5}, 1)

	segments, err := DetectStates(binned, defaultStateConfig())
	require.NoError(t, err)

	require.Len(t, segments, 3)
	assert.Equal(t, StateQuiescent, segments[0].State)
	assert.Equal(t, StateFlare, segments[1].State)
	assert.Equal(t, StateQuiescent, segments[2].State)

	assert.Equal(t, 2.0, segments[1].Start)
	assert.Equal(t, 4.0, segments[1].End)
}

func TestDetectStates_EclipseRun(t *testing.T) {
	binned := uniformBins([]float64{5, 5, 0.5, 0.5, 0.5, 5, 5}, 1)

	segments, err := DetectStates(binned, defaultStateConfig())
	require.NoError(t, err)

	require.Len(t, segments, 3)
	assert.Equal(t, StateEclipse, segments[1].State)
	assert.Equal(t, 2.0, segments[1].Start)
	assert.Equal(t, 5.0, segments[1].End)
}

func TestDetectStates_BoundaryRunAdoptsNeighbour(t *testing.T) {
	binned := uniformBins([]float64{50, 5, 5, 5, 5}, 1)

	segments, err := DetectStates(binned, defaultStateConfig())
	require.NoError(t, err)

	require.Len(t, segments, 1)
	assert.Equal(t, StateQuiescent, segments[0].State)
}

func TestDetectStates_AllZeroRates(t *testing.T) {
	binned := uniformBins([]float64{0, 0, 0, 0}, 1)

	segments, err := DetectStates(binned, defaultStateConfig())
	require.NoError(t, err)

	require.Len(t, segments, 1)
	assert.Equal(t, StateQuiescent, segments[0].State)
	assert.Equal(t, 0.0, segments[0].Start)
	assert.Equal(t, 4.0, segments[0].End)
}

func TestDetectStates_FullCoverage(t *testing.T) {
	binned := uniformBins([]float64{5, 50, 50, 5, 0.5, 0.5, 5, 5}, 2)

	segments, err := DetectStates(binned, defaultStateConfig())
	require.NoError(t, err)
	require.NotEmpty(t, segments)

	assert.Equal(t, binned.Bins[0].Start, segments[0].Start)
	assert.Equal(t, binned.Bins[len(binned.Bins)-1].End, segments[len(segments)-1].End)
	for i := 1; i < len(segments); i++ {
		assert.Equal(t, segments[i-1].End, segments[i].Start, "segments must tile the range")
	}
}
