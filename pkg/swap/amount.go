package swap

import (
	"math/big"
	"strings"

	cosmath "cosmossdk.io/math"
	"github.com/shopspring/decimal"

	swaperrors "github.com/lugondev/swapcpi/internal/errors"
)

// MaxDecimals is the largest mint decimals value accepted by ParseUIAmount.
const MaxDecimals = 19

// ParseAmount parses a base-unit token amount. The value must be a
// non-negative integer that fits in a u64. Underscores are accepted as digit
// separators and 0x, 0o and 0b prefixes select another base; a plain leading
// zero is still decimal.
func ParseAmount(s string) (uint64, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if raw == "" {
		return 0, invalidAmount(s, "empty amount")
	}
	if len(raw) > 1 && raw[0] == '0' && raw[1] >= '0' && raw[1] <= '9' {
		raw = strings.TrimLeft(raw, "0")
		if raw == "" {
			raw = "0"
		}
	}

	v, ok := cosmath.NewIntFromString(raw)
	if !ok {
		return 0, invalidAmount(s, "not an integer or out of range")
	}
	if v.IsNegative() {
		return 0, invalidAmount(s, "negative amount")
	}
	if !v.IsUint64() {
		return 0, invalidAmount(s, "amount overflows u64")
	}
	return v.Uint64(), nil
}

// ParseUIAmount converts a human readable amount such as "1.5" into base units
// for a mint with the given decimals. Precision beyond decimals is rejected
// rather than rounded.
func ParseUIAmount(s string, decimals uint8) (uint64, error) {
	if decimals > MaxDecimals {
		return 0, invalidAmount(s, "too many decimals")
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, swaperrors.ErrInvalidAmount.WithCause(err).WithDetails(map[string]any{"amount": s})
	}
	if d.IsNegative() {
		return 0, invalidAmount(s, "negative amount")
	}

	base := d.Shift(int32(decimals))
	if !base.IsInteger() {
		return 0, invalidAmount(s, "more precision than the mint supports")
	}

	v := base.BigInt()
	if !v.IsUint64() {
		return 0, invalidAmount(s, "amount overflows u64")
	}
	return v.Uint64(), nil
}

// FormatUIAmount renders a base-unit amount with the given decimals.
func FormatUIAmount(amount uint64, decimals uint8) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -int32(decimals)).String()
}

func invalidAmount(amount, reason string) error {
	return swaperrors.ErrInvalidAmount.WithDetails(map[string]any{
		"amount": amount,
		"reason": reason,
	})
}
