package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStatus_Valid verifies the nine known statuses and rejection of others.
func TestStatus_Valid(t *testing.T) {
	for _, s := range StatusOrder {
		assert.True(t, s.Valid(), "status %s", s)
	}
	assert.False(t, Status("teleported").Valid())
	assert.False(t, Status("").Valid())
}

// TestStatus_Label verifies French labels and the raw-value fallback.
func TestStatus_Label(t *testing.T) {
	assert.Equal(t, "Devis demandé", StatusQuoteRequested.Label())
	assert.Equal(t, "Arrivé au port de Lomé", StatusArrivedPort.Label())
	assert.Equal(t, "Annulé", StatusCancelled.Label())
	assert.Equal(t, "mystery", Status("mystery").Label())
}

// TestStatus_Position verifies canonical ordering and the unknown fallback.
func TestStatus_Position(t *testing.T) {
	assert.Equal(t, 0, StatusQuoteRequested.Position())
	assert.Equal(t, 4, StatusInTransit.Position())
	assert.Equal(t, 7, StatusDelivered.Position())
	assert.Equal(t, 8, StatusCancelled.Position())
	assert.Equal(t, 0, Status("mystery").Position())
}
