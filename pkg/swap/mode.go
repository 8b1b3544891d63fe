package swap

import (
	"fmt"

	bin "github.com/gagliardetto/binary"

	swaperrors "github.com/lugondev/swapcpi/internal/errors"
)

// Mode selects which side of a swap is fixed.
type Mode uint8

const (
	// ExactIn spends exactly amount_in and requires at least amount_out.
	ExactIn Mode = iota

	// ExactOut receives exactly amount_out and spends at most amount_in.
	ExactOut
)

// String returns the snake_case name of the mode.
func (m Mode) String() string {
	switch m {
	case ExactIn:
		return "exact_in"
	case ExactOut:
		return "exact_out"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ExactIn || m == ExactOut
}

// ParseMode parses a mode name. It accepts "exact_in", "exact-in", "ExactIn",
// "in" and the matching spellings for ExactOut, using Anchor's snake casing.
func ParseMode(s string) (Mode, error) {
	switch bin.ToRustSnakeCase(s) {
	case "exact_in", "in", "base_input":
		return ExactIn, nil
	case "exact_out", "out", "base_output":
		return ExactOut, nil
	}
	return ExactIn, swaperrors.ErrInvalidMode.WithDetails(map[string]any{"mode": s})
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, swaperrors.ErrInvalidMode.WithDetails(map[string]any{"mode": uint8(m)})
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
