package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPOI(t *testing.T) {
	tests := []struct {
		name     string
		tags     map[string]string
		expected POICategory
	}{
		{"school", map[string]string{"amenity": "school"}, POICategorySchool},
		{"hospital", map[string]string{"amenity": "hospital"}, POICategoryHospital},
		{"park", map[string]string{"leisure": "park"}, POICategoryPark},
		{"station", map[string]string{"railway": "station"}, POICategoryStation},
		{"tourism only", map[string]string{"tourism": "museum"}, POICategoryOther},
		{"tourism wins over leisure", map[string]string{"tourism": "museum", "leisure": "park"}, POICategoryOther},
		{"amenity wins over railway", map[string]string{"amenity": "school", "railway": "station"}, POICategorySchool},
		{"empty amenity skipped", map[string]string{"amenity": "", "leisure": "park"}, POICategoryPark},
		{"unknown amenity", map[string]string{"amenity": "cafe"}, POICategoryOther},
		{"no candidate tag", map[string]string{"name": "Somewhere"}, POICategoryOther},
		{"nil tags", nil, POICategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyPOI(tt.tags))
		})
	}
}

func TestNewPointOfInterest(t *testing.T) {
	p := NewPointOfInterest(map[string]string{"leisure": "park"}, 45.76, 4.83)
	assert.Equal(t, UnnamedPOI, p.Name)
	assert.Equal(t, POICategoryPark, p.Category)
	assert.Equal(t, LatLon{Lat: 45.76, Lon: 4.83}, p.Coordinates)

	p = NewPointOfInterest(map[string]string{"name": "Gare Part-Dieu", "railway": "station"}, 45.76, 4.86)
	assert.Equal(t, "Gare Part-Dieu", p.Name)
	assert.Equal(t, "gare", p.Category.Label())
}

func TestCountPOIsByCategory(t *testing.T) {
	counts := CountPOIsByCategory([]PointOfInterest{
		{Category: POICategorySchool},
		{Category: POICategorySchool},
		{Category: POICategoryPark},
	})

	assert.Equal(t, 2, counts[POICategorySchool])
	assert.Equal(t, 1, counts[POICategoryPark])
	assert.Equal(t, 0, counts[POICategoryHospital])
	assert.Len(t, counts, len(POICategories()))
}
