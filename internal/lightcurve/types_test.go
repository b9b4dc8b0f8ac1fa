package lightcurve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeSeries_Validation(t *testing.T) {
	_, err := NewTimeSeries([]Sample{{Time: 0, Counts: -1}})
	require.ErrorIs(t, err, ErrNegativeCounts)

	_, err = NewTimeSeries([]Sample{{Time: 5, Counts: 1}, {Time: 4, Counts: 1}})
	require.ErrorIs(t, err, ErrUnorderedSamples)
}

func TestTimeSeries_Immutable(t *testing.T) {
	input := []Sample{{Time: 0, Counts: 1}, {Time: 1, Counts: 2}}
	ts, err := NewTimeSeries(input)
	require.NoError(t, err)

	// Mutating the caller's slice must not leak into the series.
	input[0].Counts = 99
	assert.Equal(t, 1.0, ts.At(0).Counts)
}

func TestTimeSeries_SpanAccessors(t *testing.T) {
	ts, err := NewTimeSeries([]Sample{{Time: 2, Counts: 0}, {Time: 7, Counts: 3}})
	require.NoError(t, err)

	assert.Equal(t, 2, ts.Len())
	assert.Equal(t, 2.0, ts.MinTime())
	assert.Equal(t, 7.0, ts.MaxTime())
	assert.Equal(t, 5.0, ts.Span())

	single, err := NewTimeSeries([]Sample{{Time: 3, Counts: 1}})
	require.NoError(t, err)
	assert.Zero(t, single.Span())
}
