package lightcurve

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// ExtractCoords recovers the J2000 source coordinates encoded in a lightcurve
// filename of the form JHHMMSS.S±DDMMSS_<obsid>_lc.<ext>. The result is a
// sexagesimal string, "HH MM SS.S ±DD MM SS".
func ExtractCoords(path string) (string, error) {
	name := filepath.Base(path)

	sign := "-"
	if strings.Contains(name, "+") {
		sign = "+"
	}

	token := strings.SplitN(name, "_", 2)[0]
	token = strings.TrimPrefix(token, "J")

	parts := strings.SplitN(token, sign, 2)
	if len(parts) != 2 || len(parts[0]) < 6 || len(parts[1]) < 6 {
		return "", fmt.Errorf("%w: %q", ErrBadCoordinates, name)
	}

	ra := parts[0]
	dec := parts[1]
	coords := ra[0:2] + " " + ra[2:4] + " " + ra[4:] +
		" " + sign + dec[0:2] + " " + dec[2:4] + " " + dec[4:]
	return coords, nil
}

// ToDegrees converts a sexagesimal J2000 coordinate string, as produced by
// ExtractCoords, to (ra, dec) in decimal degrees.
func ToDegrees(coords string) (float64, float64, error) {
	fields := strings.Fields(coords)
	if len(fields) != 6 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadCoordinates, coords)
	}

	vals := make([]float64, 6)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimPrefix(f, "+"), 64)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrBadCoordinates, coords)
		}
		vals[i] = v
	}

	ra := (vals[0] + vals[1]/60 + vals[2]/3600) * 15

	dec := math.Abs(vals[3]) + vals[4]/60 + vals[5]/3600
	if strings.HasPrefix(fields[3], "-") {
		dec = -dec
	}
	return ra, dec, nil
}
