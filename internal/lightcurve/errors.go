package lightcurve

import "errors"

var (
	ErrNegativeCounts   = errors.New("sample counts cannot be negative")
	ErrUnorderedSamples = errors.New("sample times must be non-decreasing")
	ErrMalformedRow     = errors.New("malformed lightcurve table row")
	ErrEmptyTable       = errors.New("lightcurve table contains no data rows")
	ErrBadCoordinates   = errors.New("cannot extract J2000 coordinates from filename")
)
