package swap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	swaperrors "github.com/lugondev/swapcpi/internal/errors"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{"0", 0, false},
		{"1000000", 1_000_000, false},
		{"1_000_000", 1_000_000, false},
		{" 42 ", 42, false},
		{"007", 7, false},
		{"000", 0, false},
		{"0x10", 16, false},
		{"18446744073709551615", 18446744073709551615, false},
		{"18446744073709551616", 0, true},
		{"-1", 0, true},
		{"1.5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, swaperrors.ErrInvalidAmount), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUIAmount(t *testing.T) {
	tests := []struct {
		input    string
		decimals uint8
		want     uint64
		wantErr  bool
	}{
		{"1.5", 6, 1_500_000, false},
		{"1", 9, 1_000_000_000, false},
		{"0.000001", 6, 1, false},
		{"0.0000001", 6, 0, true},
		{"-2", 6, 0, true},
		{"18446744073709.551616", 6, 0, true},
		{"not a number", 6, 0, true},
		{"1", 20, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseUIAmount(tt.input, tt.decimals)
			if tt.wantErr {
				assert.True(t, errors.Is(err, swaperrors.ErrInvalidAmount), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatUIAmount(t *testing.T) {
	assert.Equal(t, "1.5", FormatUIAmount(1_500_000, 6))
	assert.Equal(t, "0.000001", FormatUIAmount(1, 6))
	assert.Equal(t, "42", FormatUIAmount(42, 0))
}
