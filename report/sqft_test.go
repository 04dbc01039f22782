package report

import (
	"testing"

	"financials/models"

	"github.com/stretchr/testify/assert"
)

func TestAverageSquareFootage(t *testing.T) {
	units := []models.Unit{
		{PropertyID: 1, UnitNumber: 1, SquareFootage: 800},
		{PropertyID: 1, UnitNumber: 2, SquareFootage: 1000},
		{PropertyID: 2, UnitNumber: 1, SquareFootage: 650},
	}
	avg := AverageSquareFootage(units)
	assert.Equal(t, 900.0, avg[1])
	assert.Equal(t, 650.0, avg[2])

	assert.Equal(t, Defined(900), AvgSqftValue(avg, 1))
	assert.False(t, AvgSqftValue(avg, 3).Valid)
}

func TestValue_Div(t *testing.T) {
	assert.Equal(t, Defined(5), Defined(10).Div(Defined(2)))
	assert.False(t, Defined(10).Div(Defined(0)).Valid)
	assert.False(t, Defined(10).Div(Undefined()).Valid)
	assert.False(t, Undefined().Div(Defined(2)).Valid)
}
