package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"financials/config"
	"financials/database"
	"financials/models"
	"financials/store"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestStore(t *testing.T) *store.GormStore {
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, "release")
	require.NoError(t, err)
	return store.NewGormStore(db)
}

// buildXLSX 生成单个工作表的 xlsx 内容
func buildXLSX(t *testing.T, sheet string, rows [][]interface{}) []byte {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func expenseHeader() []interface{} {
	var h []interface{}
	for _, c := range ExpenseColumns() {
		h = append(h, c)
	}
	return h
}

func expenseLine(name string, units int, ptype, loc string, month, year int, payroll float64) []interface{} {
	row := []interface{}{name, units, ptype, loc}
	for i := 0; i < models.NumCategories; i++ {
		if i == 0 {
			row = append(row, payroll)
		} else {
			row = append(row, 0)
		}
	}
	return append(row, month, year)
}

func csvOf(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n"))
}

// flakyStore 按条件注入写入失败
type flakyStore struct {
	store.RecordStore
	failProperty  string
	failExpense   func(*models.Expense) bool
	failUnit      func(*models.Unit) bool
	listUnitsErr  error
	listPropsErr  error
	duplicateUnit func(*models.Unit) bool
}

func (f *flakyStore) ListProperties(ctx context.Context) ([]models.Property, error) {
	if f.listPropsErr != nil {
		return nil, f.listPropsErr
	}
	return f.RecordStore.ListProperties(ctx)
}

func (f *flakyStore) CreateProperty(ctx context.Context, p *models.Property) error {
	if p.Name == f.failProperty {
		return &store.OpError{Op: "create property", Err: store.ErrRejected}
	}
	return f.RecordStore.CreateProperty(ctx, p)
}

func (f *flakyStore) CreateExpense(ctx context.Context, e *models.Expense) error {
	if f.failExpense != nil && f.failExpense(e) {
		return &store.OpError{Op: "create expense", Err: store.ErrRejected}
	}
	return f.RecordStore.CreateExpense(ctx, e)
}

func (f *flakyStore) ListUnits(ctx context.Context, id *uint) ([]models.Unit, error) {
	if f.listUnitsErr != nil {
		return nil, f.listUnitsErr
	}
	return f.RecordStore.ListUnits(ctx, id)
}

func (f *flakyStore) CreateUnit(ctx context.Context, u *models.Unit) error {
	if f.duplicateUnit != nil && f.duplicateUnit(u) {
		return &store.OpError{Op: "create unit", Err: store.ErrDuplicate}
	}
	if f.failUnit != nil && f.failUnit(u) {
		return &store.OpError{Op: "create unit", Err: errors.New("connection reset")}
	}
	return f.RecordStore.CreateUnit(ctx, u)
}

func unitCSV(rows ...UnitRow) *strings.Reader {
	lines := []string{"property_name,unit_number,square_footage"}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s,%d,%g", r.PropertyName, r.UnitNumber, r.SquareFootage))
	}
	return csvOf(lines...)
}
