package analysis

import "errors"

var (
	ErrInvalidParameter   = errors.New("invalid analysis parameter")
	ErrEmptySeries        = errors.New("series contains no samples")
	ErrNonUniformSampling = errors.New("binned series does not have uniform bin width")
	ErrInsufficientData   = errors.New("series too short for this estimate")
)
