package swap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	swaperrors "github.com/lugondev/swapcpi/internal/errors"
)

func TestModeZeroValueIsExactIn(t *testing.T) {
	var m Mode
	assert.Equal(t, ExactIn, m)
	assert.Equal(t, "exact_in", m.String())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"exact_in", ExactIn, false},
		{"exact-in", ExactIn, false},
		{"ExactIn", ExactIn, false},
		{"in", ExactIn, false},
		{"exact_out", ExactOut, false},
		{"ExactOut", ExactOut, false},
		{"OUT", ExactOut, false},
		{"base_output", ExactOut, false},
		{"sideways", ExactIn, true},
		{"", ExactIn, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, swaperrors.ErrInvalidMode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModeText(t *testing.T) {
	text, err := ExactOut.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "exact_out", string(text))

	var m Mode
	require.NoError(t, m.UnmarshalText([]byte("exact-out")))
	assert.Equal(t, ExactOut, m)

	_, err = Mode(3).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "mode(3)", Mode(3).String())
}
