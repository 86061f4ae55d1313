package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string into minor currency units at the
// given scale. The conversion is exact: digits beyond the scale are rejected,
// never rounded away.
func ParseAmount(s string, scale int32) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	shifted := d.Shift(scale)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than %d decimal places", s, scale)
	}
	units := shifted.BigInt()
	if !units.IsInt64() {
		return 0, fmt.Errorf("amount %q overflows minor units at scale %d", s, scale)
	}
	return units.Int64(), nil
}

// FormatAmount renders minor currency units as a fixed-scale decimal string.
func FormatAmount(units int64, scale int32) string {
	return decimal.New(units, -scale).StringFixed(scale)
}
