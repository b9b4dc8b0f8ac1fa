package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrolens/astrolens/internal/lightcurve"
)

func TestCumulative_Empty(t *testing.T) {
	empty := mustSeries(t, nil)
	assert.Empty(t, Cumulative(empty))
}

func TestCumulative(t *testing.T) {
	series := mustSeries(t, []lightcurve.Sample{
		{Time: 0, Counts: 5},
		{Time: 1, Counts: 0},
		{Time: 2, Counts: 3},
		{Time: 3, Counts: 2},
	})

	points := Cumulative(series)
	require.Len(t, points, 4)

	assert.Equal(t, CumulativePoint{Time: 0, Total: 5}, points[0])
	assert.Equal(t, CumulativePoint{Time: 1, Total: 5}, points[1])
	assert.Equal(t, CumulativePoint{Time: 2, Total: 8}, points[2])
	assert.Equal(t, CumulativePoint{Time: 3, Total: 10}, points[3])
}

func TestCumulative_MonotonicNonDecreasing(t *testing.T) {
	series := rampSeries(t, 50)

	points := Cumulative(series)
	require.Len(t, points, 50)
	for i := 1; i < len(points); i++ {
		assert.GreaterOrEqual(t, points[i].Total, points[i-1].Total)
	}
}
