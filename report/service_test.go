package report

import (
	"context"
	"errors"
	"testing"

	"financials/models"
	"financials/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	store.RecordStore
	props    []models.Property
	expenses []models.Expense
	units    []models.Unit
	err      error
}

func (f *fakeStore) ListProperties(context.Context) ([]models.Property, error) {
	return f.props, f.err
}

func (f *fakeStore) ListExpenses(context.Context, *uint) ([]models.Expense, error) {
	return f.expenses, nil
}

func (f *fakeStore) ListUnits(context.Context, *uint) ([]models.Unit, error) {
	return f.units, nil
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		props: []models.Property{
			{ID: 1, Name: "P", Units: 10, PropertyType: "High Rise", Location: "Dallas"},
			{ID: 2, Name: "Q", Units: 0, PropertyType: "Townhouse", Location: "Austin"},
		},
		expenses: []models.Expense{
			{ID: 1, PropertyID: 1, Year: 2024, Month: 1, Payroll: 100},
			{ID: 2, PropertyID: 1, Year: 2024, Month: 2, Payroll: 200},
			{ID: 3, PropertyID: 1, Year: 2024, Month: 3, Payroll: 300},
			{ID: 4, PropertyID: 2, Year: 2024, Month: 3, Payroll: 50},
		},
		units: []models.Unit{
			{PropertyID: 1, UnitNumber: 1, SquareFootage: 50},
			{PropertyID: 1, UnitNumber: 2, SquareFootage: 150},
		},
	}
}

func TestService_Summary(t *testing.T) {
	svc := NewService(newFakeStore(), nil)

	res, err := svc.Summary(context.Background(), Request{
		Options: Options{Mode: ModeTrailing3, Normalization: NormalizePerUnit},
	})
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, Defined(60), res.Rows[0].Value(models.CategoryPayroll))
	assert.Equal(t, Defined(100), res.Rows[0].Property.AvgSqft)
	assert.False(t, res.Rows[1].Value(models.CategoryPayroll).Valid)
	assert.False(t, res.Rows[1].Property.AvgSqft.Valid)
}

func TestService_SummaryPerSqft(t *testing.T) {
	svc := NewService(newFakeStore(), nil)

	res, err := svc.Summary(context.Background(), Request{
		Options: Options{Mode: ModeTrailing12, Normalization: NormalizePerSqft},
	})
	require.NoError(t, err)
	assert.Equal(t, Defined(6), res.Rows[0].Value(models.CategoryPayroll))
	assert.False(t, res.Rows[1].Value(models.CategoryPayroll).Valid)
}

func TestService_SummaryFilteredToNothing(t *testing.T) {
	svc := NewService(newFakeStore(), nil)

	res, err := svc.Summary(context.Background(), Request{
		Filter:  Filter{Types: []string{"Garden"}},
		Options: Options{Mode: ModeTrailing12},
	})
	require.NoError(t, err)
	assert.True(t, res.Empty())
}

func TestService_SelectedProperty(t *testing.T) {
	svc := NewService(newFakeStore(), nil)

	res, err := svc.Summary(context.Background(), Request{
		Filter:  Filter{PropertyIDs: []uint{2}},
		Options: Options{Mode: ModeMonthly},
	})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Q", res.Rows[0].Property.Name)
}

func TestService_StoreFailure(t *testing.T) {
	fs := newFakeStore()
	fs.err = &store.OpError{Op: "list properties", Err: store.ErrRejected}
	svc := NewService(fs, nil)

	_, err := svc.Summary(context.Background(), Request{Options: Options{Mode: ModeTrailing3}})
	assert.True(t, errors.Is(err, store.ErrRejected))

	_, err = svc.Filters(context.Background())
	assert.Error(t, err)
}

func TestService_BoxPlotAndFilters(t *testing.T) {
	svc := NewService(newFakeStore(), nil)

	boxes, err := svc.BoxPlot(context.Background(), Filter{Locations: []string{"Dallas"}}, models.CategoryPayroll, false)
	require.NoError(t, err)
	require.Len(t, boxes, 1)
	assert.Equal(t, 200.0, boxes[0].Median)

	opts, err := svc.Filters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, opts.MinUnits)
	assert.Equal(t, 10, opts.MaxUnits)
}
