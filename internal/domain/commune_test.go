package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommuneRecord_Density(t *testing.T) {
	c := CommuneRecord{Name: "Lyon", Population: 516092, SurfaceKm2: Known(4780)}
	d, ok := c.Density().Value()
	assert.True(t, ok)
	assert.Equal(t, 107.97, d)

	c.SurfaceKm2 = Known(0)
	assert.False(t, c.Density().IsKnown())

	c.SurfaceKm2 = Unavailable()
	assert.False(t, c.Density().IsKnown())
}

func TestSameName(t *testing.T) {
	assert.True(t, SameName("Lyon", "lyon"))
	assert.True(t, SameName("SAINT-ÉTIENNE", "saint-étienne"))
	assert.True(t, SameName(" Paris", "PARIS "))
	// NFD и NFC формы считаются одним названием
	assert.True(t, SameName("Saint-E\u0301tienne", "Saint-Étienne"))
	assert.False(t, SameName("Saint-Etienne", "Saint-Étienne"))
	assert.False(t, SameName("Lyon", "Lyons"))
}
