package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type cityRequest struct {
	City string `validate:"required,max=100,cityname"`
}

func TestValidate_CityName(t *testing.T) {
	valid := []string{"Lyon", "Saint-Étienne", "L'Haÿ-les-Roses", "Aix en Provence"}
	for _, name := range valid {
		assert.NoError(t, Validate(&cityRequest{City: name}), name)
	}

	invalid := []string{"", "-Lyon", "Lyon; DROP", "75056", "Lyon 3e", "Paris<script>"}
	for _, name := range invalid {
		assert.Error(t, Validate(&cityRequest{City: name}), name)
	}
}

func TestGetValidator_CityNameRegistered(t *testing.T) {
	v := GetValidator()
	assert.NotPanics(t, func() {
		assert.NoError(t, v.Var("Villeurbanne", "cityname"))
		assert.Error(t, v.Var("Marseille 13", "cityname"))
	})
}
