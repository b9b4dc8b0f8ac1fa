package lightcurve

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Column layout of a dmextract ASCII lightcurve table.
const (
	colTime     = 2
	colCounts   = 4
	colExposure = 7
	numColumns  = 10
)

// GalaxyResolver maps a lightcurve file to the designation of its host
// galaxy. Implementations typically consult a catalog keyed by the file's
// source coordinates; the loader treats it as an opaque capability.
type GalaxyResolver interface {
	GalaxyFor(path string) (string, bool)
}

// NoGalaxy is a GalaxyResolver that never resolves. Useful when lightcurves
// are analyzed outside any catalog context.
type NoGalaxy struct{}

func (NoGalaxy) GalaxyFor(string) (string, bool) { return "", false }

// LoadASCII reads a ten-column ASCII lightcurve table and returns its
// samples together with metadata recovered from the filename. Rows with zero
// EXPOSURE contribute zero counts, matching the detector dead-time
// convention of the upstream extraction tooling.
func LoadASCII(path string, resolver GalaxyResolver) (*TimeSeries, Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Metadata{}, err
	}
	defer f.Close()

	var samples []Sample
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			// Header rows start with a column name rather than a number.
			if line[0] == '#' || isAlpha(line[0]) {
				continue
			}
		}

		fields := strings.Fields(line)
		if len(fields) < numColumns {
			return nil, Metadata{}, fmt.Errorf("%w: %q", ErrMalformedRow, line)
		}

		t, err := strconv.ParseFloat(fields[colTime], 64)
		if err != nil {
			return nil, Metadata{}, fmt.Errorf("%w: %q", ErrMalformedRow, line)
		}
		counts, err := strconv.ParseFloat(fields[colCounts], 64)
		if err != nil {
			return nil, Metadata{}, fmt.Errorf("%w: %q", ErrMalformedRow, line)
		}
		exposure, err := strconv.ParseFloat(fields[colExposure], 64)
		if err != nil {
			return nil, Metadata{}, fmt.Errorf("%w: %q", ErrMalformedRow, line)
		}

		if exposure <= 0 {
			counts = 0
		}
		samples = append(samples, Sample{Time: t, Counts: counts})
	}
	if err := scanner.Err(); err != nil {
		return nil, Metadata{}, err
	}
	if len(samples) == 0 {
		return nil, Metadata{}, ErrEmptyTable
	}

	ts, err := NewTimeSeries(samples)
	if err != nil {
		return nil, Metadata{}, err
	}

	meta, err := metadataFromPath(path, resolver)
	if err != nil {
		return nil, Metadata{}, err
	}
	return ts, meta, nil
}

func metadataFromPath(path string, resolver GalaxyResolver) (Metadata, error) {
	coords, err := ExtractCoords(path)
	if err != nil {
		return Metadata{}, err
	}
	ra, dec, err := ToDegrees(coords)
	if err != nil {
		return Metadata{}, err
	}

	meta := Metadata{Coords: coords, RA: ra, Dec: dec}

	name := filepath.Base(path)
	if parts := strings.Split(name, "_"); len(parts) >= 2 {
		meta.ObsID = parts[1]
	}
	if resolver != nil {
		if galaxy, ok := resolver.GalaxyFor(path); ok {
			meta.Galaxy = galaxy
		}
	}
	return meta, nil
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
