// Package types - Money
package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Cents is a monetary amount in minor currency units.
// NEVER use float64 for money calculations.
type Cents int64

// centsPerUnit converts whole currency units to cents
const centsPerUnit = 100

// FromWhole converts whole currency units to cents
func FromWhole(units int64) Cents {
	return Cents(units * centsPerUnit)
}

// Decimal returns the amount in whole currency units
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats the amount as "$1234.50"
func (c Cents) String() string {
	if c < 0 {
		return "-$" + (-c).Decimal().StringFixed(2)
	}
	return "$" + c.Decimal().StringFixed(2)
}

// Signed formats the amount with an explicit sign, for deltas
func (c Cents) Signed() string {
	if c >= 0 {
		return "+" + c.String()
	}
	return c.String()
}

// ParseCents parses "$12.50", "12.5" or "-3" into cents.
// Amounts with fractions of a cent are rejected.
func ParseCents(s string) (Cents, error) {
	raw := strings.TrimSpace(s)
	neg := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "$")

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if neg {
		d = d.Neg()
	}

	scaled := d.Shift(2)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("invalid amount %q: fractional cents", s)
	}
	return Cents(scaled.IntPart()), nil
}
