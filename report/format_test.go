package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,234", FormatCurrency(Defined(1234.4)))
	assert.Equal(t, "$1,234,568", FormatCurrency(Defined(1234567.5)))
	assert.Equal(t, "$0", FormatCurrency(Defined(0.2)))
	assert.Equal(t, NA, FormatCurrency(Undefined()))
}

func TestFormatSqft(t *testing.T) {
	assert.Equal(t, "1,234.5", FormatSqft(Defined(1234.5)))
	assert.Equal(t, NA, FormatSqft(Undefined()))
}
