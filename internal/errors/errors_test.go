package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwapErrorIsMatchesByCode(t *testing.T) {
	err := NotEnoughAccountKeys("raydium_cpmm", 14, 3)
	assert.True(t, Is(err, ErrNotEnoughAccountKeys))
	assert.False(t, Is(err, ErrInvalidAccountData))
	assert.Equal(t, 14, err.Details["want"])

	wrapped := fmt.Errorf("dispatch: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotEnoughAccountKeys))

	var swapErr *SwapError
	require.True(t, As(wrapped, &swapErr))
	assert.Equal(t, ErrCodeNotEnoughAccountKeys, swapErr.Code)
}

func TestWithCauseDoesNotMutateSentinel(t *testing.T) {
	cause := errors.New("boom")
	err := InvokeFailed(cause)

	assert.Nil(t, ErrInvokeFailed.Cause)
	assert.Same(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "INVOKE_FAILED: invoke failed: boom", err.Error())

	detailed := err.WithDetails(map[string]any{"logs": []string{"x"}})
	assert.Nil(t, err.Details)
	assert.Same(t, cause, detailed.Cause)
}

func TestInvalidInstructionData(t *testing.T) {
	err := InvalidInstructionData("want 24 bytes, got 3")
	assert.True(t, Is(err, ErrInvalidInstructionData))
	assert.Equal(t, "INVALID_INSTRUCTION_DATA: invalid instruction data: want 24 bytes, got 3", err.Error())
}

func TestCustomAndWrap(t *testing.T) {
	assert.Equal(t, "CUSTOM: pool paused", Custom("pool paused").Error())
	assert.Nil(t, Wrap(nil, "ignored"))

	err := Wrap(ErrInvalidMode, "parse flag")
	assert.EqualError(t, err, "parse flag: INVALID_MODE: invalid swap mode")
	assert.True(t, Is(err, ErrInvalidMode))

	joined := Join(ErrMissingSigner, ErrReadonlyAccount)
	assert.True(t, Is(joined, ErrMissingSigner))
	assert.True(t, Is(joined, ErrReadonlyAccount))
}
