package message

import "errors"

var (
	ErrJSONUnmarshalFailed = errors.New("failed to unmarshal observation JSON")
	ErrMissingObsID        = errors.New("observation message missing obsid")
	ErrEmptyObservation    = errors.New("observation message carries no samples")
	ErrLengthMismatch      = errors.New("times and counts arrays differ in length")
)
