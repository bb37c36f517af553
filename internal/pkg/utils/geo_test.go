package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(45.764, 4.8357))
	assert.True(t, ValidateCoordinates(-21.1151, 55.5364))
	assert.False(t, ValidateCoordinates(91, 0))
	assert.False(t, ValidateCoordinates(0, -181))
}
