package upload

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"financials/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportExpenses_GroupsByProperty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	data := buildXLSX(t, ExpensesSheet, [][]interface{}{
		expenseHeader(),
		expenseLine("Oak", 10, "Garden", "Austin", 1, 2024, 100),
		expenseLine("Pine", 4, "Townhouse", "Dallas", 1, 2024, 40),
		expenseLine("Oak", 10, "Garden", "Austin", 2, 2024, 200),
		expenseLine("Oak", 10, "Garden", "Austin", 3, 2024, 300),
	})
	table, err := ReadTable(bytes.NewReader(data), "expenses.xlsx", ExpensesSheet)
	require.NoError(t, err)
	rows, err := ParseExpenseRows(table)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	res := NewImporter(s, nil).ImportExpenses(ctx, rows)
	require.Len(t, res.Properties, 2)
	assert.Equal(t, "Oak", res.Properties[0].PropertyName)
	assert.Equal(t, 3, res.Properties[0].ExpensesCreated)
	assert.Equal(t, 1, res.Properties[1].ExpensesCreated)

	props, err := s.ListProperties(ctx)
	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Equal(t, 10, props[0].Units)

	expenses, err := s.ListExpenses(ctx, &props[0].ID)
	require.NoError(t, err)
	var payroll float64
	for _, e := range expenses {
		payroll += e.Payroll
	}
	assert.Equal(t, 600.0, payroll)
}

func TestParseExpenseRows_MissingColumns(t *testing.T) {
	table, err := ReadTable(csvOf("property_name,units,month,year", "Oak,1,1,2024"), "e.csv", "")
	require.NoError(t, err)

	_, err = ParseExpenseRows(table)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Error(), models.CategoryPayroll)
}

func TestParseExpenseRows_MalformedCellsRejectWholeBatch(t *testing.T) {
	bad := expenseLine("Oak", 10, "Garden", "Austin", 13, 2024, 100)
	neg := expenseLine("Oak", 10, "Garden", "Austin", 2, 2024, -5)
	data := buildXLSX(t, ExpensesSheet, [][]interface{}{
		expenseHeader(),
		expenseLine("Oak", 10, "Garden", "Austin", 1, 2024, 100),
		bad,
		neg,
	})
	table, err := ReadTable(bytes.NewReader(data), "expenses.xlsx", ExpensesSheet)
	require.NoError(t, err)

	_, err = ParseExpenseRows(table)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Len(t, vErr.Problems, 2)
	assert.Contains(t, vErr.Problems[0], "第 3 行")
	assert.Contains(t, vErr.Problems[1], "不能为负数")
}

func TestParseExpenseRows_RejectsNonFiniteAmounts(t *testing.T) {
	inf := expenseLine("Oak", 10, "Garden", "Austin", 2, 2024, 0)
	inf[4] = "Inf"
	nan := expenseLine("Oak", 10, "Garden", "Austin", 3, 2024, 0)
	nan[4] = "NaN"
	data := buildXLSX(t, ExpensesSheet, [][]interface{}{
		expenseHeader(),
		inf,
		nan,
	})
	table, err := ReadTable(bytes.NewReader(data), "expenses.xlsx", ExpensesSheet)
	require.NoError(t, err)

	_, err = ParseExpenseRows(table)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Len(t, vErr.Problems, 2)
	assert.Contains(t, vErr.Problems[0], "第 2 行")
	assert.Contains(t, vErr.Problems[0], models.CategoryPayroll)
	assert.Contains(t, vErr.Problems[1], "第 3 行")
}

func TestParseExpenseRows_UnitsAndYearBounds(t *testing.T) {
	data := buildXLSX(t, ExpensesSheet, [][]interface{}{
		expenseHeader(),
		expenseLine("Oak", 0, "Garden", "Austin", 1, 2024, 100),
		expenseLine("Elm", -4, "Garden", "Austin", 1, -7, 100),
		expenseLine("Ash", 5, "Garden", "Austin", 1, MaxYear+1, 100),
		expenseLine("Fir", 5, "Garden", "Austin", 1, MinYear, 100),
	})
	table, err := ReadTable(bytes.NewReader(data), "expenses.xlsx", ExpensesSheet)
	require.NoError(t, err)

	_, err = ParseExpenseRows(table)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Len(t, vErr.Problems, 4)
	assert.Contains(t, vErr.Problems[0], "第 2 行: units")
	assert.Contains(t, vErr.Problems[1], "第 3 行: units")
	assert.Contains(t, vErr.Problems[2], "第 3 行: year")
	assert.Contains(t, vErr.Problems[3], "第 4 行: year")
}

func TestParseExpenseRows_Empty(t *testing.T) {
	table, err := ReadTable(bytes.NewReader(buildXLSX(t, ExpensesSheet, [][]interface{}{expenseHeader()})), "e.xlsx", ExpensesSheet)
	require.NoError(t, err)
	_, err = ParseExpenseRows(table)
	assert.Error(t, err)
}

func TestImportExpenses_PropertyFailureSkipsItsRows(t *testing.T) {
	base := newTestStore(t)
	fs := &flakyStore{
		RecordStore: base,
		failProperty: "Broken",
		failExpense: func(e *models.Expense) bool { return e.Month == 2 },
	}
	rows := []ExpenseRow{
		{Row: 2, PropertyName: "Broken", Units: 1, Month: 1, Year: 2024},
		{Row: 3, PropertyName: "Good", Units: 1, Month: 1, Year: 2024},
		{Row: 4, PropertyName: "Good", Units: 1, Month: 2, Year: 2024},
		{Row: 5, PropertyName: "Broken", Units: 1, Month: 2, Year: 2024},
	}

	res := NewImporter(fs, nil).ImportExpenses(context.Background(), rows)
	require.Len(t, res.Properties, 2)

	broken := res.Properties[0]
	assert.NotEmpty(t, broken.Error)
	assert.Zero(t, broken.PropertyID)
	assert.Equal(t, 2, broken.ExpensesSkipped)

	good := res.Properties[1]
	assert.Equal(t, 1, good.ExpensesCreated)
	require.Len(t, good.Failures, 1)
	assert.Equal(t, 4, good.Failures[0].Row)
	assert.Equal(t, "2024-02", good.Failures[0].Item)

	all, err := base.ListExpenses(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
