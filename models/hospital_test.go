package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceFrom(t *testing.T) {
	// Kenyatta National Hospital, Nairobi.
	h := Hospital{Coordinates: Coordinates{Latitude: -1.3006, Longitude: 36.8065}}

	assert.InDelta(t, 0, h.DistanceFrom(-1.3006, 36.8065), 0.001)

	// Nairobi to Mombasa is roughly 440 km great-circle.
	assert.InDelta(t, 440, h.DistanceFrom(-4.0435, 39.6682), 10)

	// Symmetry with a second hospital at the far point.
	other := Hospital{Coordinates: Coordinates{Latitude: -4.0435, Longitude: 39.6682}}
	assert.InDelta(t, h.DistanceFrom(-4.0435, 39.6682), other.DistanceFrom(-1.3006, 36.8065), 0.001)
}
