package domain

import (
	"errors"
	"testing"

	apperrors "github.com/city-fighting/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeINSEECode(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"75056", "75056"},
		{"75056.0", "75056"},
		{"1001", "01001"},
		{"1001.0", "01001"},
		{" 69123 ", "69123"},
		{`"13055"`, "13055"},
		{"1001,0", "01001"},
		{"2A004", "2A004"},
		{"2b033", "2B033"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			code, err := NormalizeINSEECode(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, code)
		})
	}
}

func TestNormalizeINSEECode_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "NaN", "abc", "-5", "123456", "2C004"} {
		t.Run(raw, func(t *testing.T) {
			_, err := NormalizeINSEECode(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidINSEECode))
		})
	}
}

func TestNormalizeINSEECode_Idempotent(t *testing.T) {
	for _, raw := range []string{"1001.0", "75056", "2A004"} {
		once, err := NormalizeINSEECode(raw)
		require.NoError(t, err)
		twice, err := NormalizeINSEECode(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}
