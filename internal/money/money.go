// Package money converts between the wire representation of prices
// (decimal reais) and the internal one (integer centavos). Totals are
// always accumulated in centavos; decimals exist only at the boundary.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CentavosFromDecimal converts a price in reais to centavos,
// rounding half-up at the second decimal place.
func CentavosFromDecimal(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// ParseCentavos parses a decimal string such as "49.90" into centavos.
func ParseCentavos(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("negative price %q", s)
	}
	return CentavosFromDecimal(d), nil
}

// FormatBRL renders centavos as "R$ 49.90".
func FormatBRL(centavos int64) string {
	return "R$ " + decimal.New(centavos, -2).StringFixed(2)
}
