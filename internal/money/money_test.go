package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCentavosFromDecimal(t *testing.T) {
	assert.Equal(t, int64(4990), CentavosFromDecimal(decimal.NewFromFloat(49.90)))
	assert.Equal(t, int64(0), CentavosFromDecimal(decimal.Zero))
	// Rounds at the second decimal place.
	assert.Equal(t, int64(1000), CentavosFromDecimal(decimal.NewFromFloat(9.999)))
}

func TestParseCentavos(t *testing.T) {
	c, err := ParseCentavos("49.90")
	assert.NoError(t, err)
	assert.Equal(t, int64(4990), c)

	_, err = ParseCentavos("abc")
	assert.Error(t, err)

	_, err = ParseCentavos("-1.00")
	assert.Error(t, err)
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 49.90", FormatBRL(4990))
	assert.Equal(t, "R$ 109.80", FormatBRL(10980))
	assert.Equal(t, "R$ 0.00", FormatBRL(0))
	assert.Equal(t, "R$ 0.05", FormatBRL(5))
}
