package message

import (
	"encoding/json"
	"fmt"
)

// Parse decodes an observation message from its JSON wire form. It returns
// ErrJSONUnmarshalFailed (wrapping the original error) if decoding fails.
func Parse(data []byte) (*ObservationMessage, error) {
	var msg ObservationMessage

	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJSONUnmarshalFailed, err)
	}
	if msg.ObsID == "" {
		return nil, ErrMissingObsID
	}
	return &msg, nil
}
