package message

import (
	"github.com/astrolens/astrolens/internal/lightcurve"
)

// ObservationMessage is the wire form of a decoded lightcurve: identification
// plus parallel time/counts arrays. Producers (the FITS/ASCII conversion
// layer) are expected to emit samples already ordered by time.
type ObservationMessage struct {
	ObsID  string    `json:"obsid"`
	Coords string    `json:"coords,omitempty"`
	RA     float64   `json:"ra"`
	Dec    float64   `json:"dec"`
	Galaxy string    `json:"galaxy,omitempty"`
	Times  []float64 `json:"times"`
	Counts []float64 `json:"counts"`
}

// TimeSeries converts the message payload into the engine's immutable series
// representation, validating ordering and non-negative counts.
func (m *ObservationMessage) TimeSeries() (*lightcurve.TimeSeries, error) {
	if len(m.Times) == 0 {
		return nil, ErrEmptyObservation
	}
	if len(m.Times) != len(m.Counts) {
		return nil, ErrLengthMismatch
	}

	samples := make([]lightcurve.Sample, len(m.Times))
	for i := range m.Times {
		samples[i] = lightcurve.Sample{Time: m.Times[i], Counts: m.Counts[i]}
	}
	return lightcurve.NewTimeSeries(samples)
}

// Metadata returns the identification fields as engine metadata.
func (m *ObservationMessage) Metadata() lightcurve.Metadata {
	return lightcurve.Metadata{
		ObsID:  m.ObsID,
		Coords: m.Coords,
		RA:     m.RA,
		Dec:    m.Dec,
		Galaxy: m.Galaxy,
	}
}
