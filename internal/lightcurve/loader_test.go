package lightcurve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapResolver map[string]string

func (m mapResolver) GalaxyFor(path string) (string, bool) {
	g, ok := m[filepath.Base(path)]
	return g, ok
}

func writeCurve(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const testHeader = "TIME_BIN TIME_MIN TIME TIME_MAX COUNTS STAT_ERR AREA EXPOSURE COUNT_RATE COUNT_RATE_ERR\n"

func TestLoadASCII(t *testing.T) {
	content := testHeader +
		"1 0.000 1.620 3.241 5 0.1 100 3.241 1.54 0.1\n" +
		"2 3.241 4.861 6.482 3 0.1 100 3.241 0.93 0.1\n" +
		"3 6.482 8.102 9.723 9 0.1 100 0.000 0.00 0.0\n" +
		"4 9.723 11.343 12.964 2 0.1 100 3.241 0.62 0.1\n"
	path := writeCurve(t, "J123456.7+765432_13773_lc.txt", content)

	resolver := mapResolver{"J123456.7+765432_13773_lc.txt": "M31"}
	series, meta, err := LoadASCII(path, resolver)
	require.NoError(t, err)

	require.Equal(t, 4, series.Len())
	assert.InDelta(t, 1.620, series.At(0).Time, 1e-9)
	assert.InDelta(t, 5, series.At(0).Counts, 1e-9)
	// Zero-exposure frames contribute no counts.
	assert.Zero(t, series.At(2).Counts)
	assert.InDelta(t, 2, series.At(3).Counts, 1e-9)

	assert.Equal(t, "13773", meta.ObsID)
	assert.Equal(t, "12 34 56.7 +76 54 32", meta.Coords)
	assert.Equal(t, "M31", meta.Galaxy)
	assert.InDelta(t, 188.73625, meta.RA, 1e-5)
	assert.InDelta(t, 76.908889, meta.Dec, 1e-5)
}

func TestLoadASCII_NoHeader(t *testing.T) {
	content := "1 0.000 1.620 3.241 5 0.1 100 3.241 1.54 0.1\n" +
		"2 3.241 4.861 6.482 3 0.1 100 3.241 0.93 0.1\n"
	path := writeCurve(t, "J123456.7+765432_13773_lc.txt", content)

	series, _, err := LoadASCII(path, NoGalaxy{})
	require.NoError(t, err)
	assert.Equal(t, 2, series.Len())
}

func TestLoadASCII_EmptyTable(t *testing.T) {
	path := writeCurve(t, "J123456.7+765432_13773_lc.txt", testHeader)

	_, _, err := LoadASCII(path, NoGalaxy{})
	require.ErrorIs(t, err, ErrEmptyTable)
}

func TestLoadASCII_MalformedRow(t *testing.T) {
	content := testHeader + "1 2 three 4 5 6 7 8 9 10\n"
	path := writeCurve(t, "J123456.7+765432_13773_lc.txt", content)

	_, _, err := LoadASCII(path, NoGalaxy{})
	require.ErrorIs(t, err, ErrMalformedRow)
}

func TestLoadASCII_ShortRow(t *testing.T) {
	content := testHeader + "1 2 3\n"
	path := writeCurve(t, "J123456.7+765432_13773_lc.txt", content)

	_, _, err := LoadASCII(path, NoGalaxy{})
	require.ErrorIs(t, err, ErrMalformedRow)
}
