package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"financials/config"
	"financials/database"
	"financials/models"
	"financials/report"
	"financials/router"
	"financials/store"
	"financials/upload"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newServer 启动一个使用内存 sqlite 的完整 API 服务
func newServer(t *testing.T) *httptest.Server {
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, "release")
	require.NoError(t, err)
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		Upload: config.UploadConfig{MaxFileMB: 1, RateLimit: 100, RateWindow: time.Minute},
	}
	srv := httptest.NewServer(router.SetupRouter(cfg, router.NewDeps(store.NewGormStore(db), zap.NewNop())))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_RecordLifecycle(t *testing.T) {
	c := New(newServer(t).URL + "/api/")
	ctx := context.Background()

	p := &models.Property{Name: "Oak", Units: 10, PropertyType: "Garden", Location: "Austin"}
	require.NoError(t, c.CreateProperty(ctx, p))
	require.NotZero(t, p.ID)

	e := &models.Expense{PropertyID: p.ID, Year: 2024, Month: 5, Payroll: 1000, ManagementFees: 50}
	require.NoError(t, c.CreateExpense(ctx, e))
	require.NotZero(t, e.ID)

	u := &models.Unit{PropertyID: p.ID, UnitNumber: 1, SquareFootage: 750}
	require.NoError(t, c.CreateUnit(ctx, u))

	err := c.CreateUnit(ctx, &models.Unit{PropertyID: p.ID, UnitNumber: 1, SquareFootage: 750})
	assert.ErrorIs(t, err, store.ErrDuplicate)
	var opErr *store.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "create unit", opErr.Op)

	got, err := c.GetProperty(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Expenses, 1)
	assert.Equal(t, 50.0, got.Expenses[0].ManagementFees)

	_, err = c.GetProperty(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)

	expenses, err := c.ListExpenses(ctx, &p.ID)
	require.NoError(t, err)
	assert.Len(t, expenses, 1)

	units, err := c.ListUnits(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, units, 1)
}

func TestClient_ServesImporterAndReports(t *testing.T) {
	c := New(newServer(t).URL + "/api")
	ctx := context.Background()

	im := upload.NewImporter(c, zap.NewNop())
	rows := []upload.ExpenseRow{
		{Row: 2, PropertyName: "Elm", Units: 4, PropertyType: "Garden", Location: "Austin", Month: 1, Year: 2024},
		{Row: 3, PropertyName: "Elm", Units: 4, PropertyType: "Garden", Location: "Austin", Month: 2, Year: 2024},
	}
	rows[0].Amounts[0] = 400
	rows[1].Amounts[0] = 800
	imported := im.ImportExpenses(ctx, rows)
	require.Len(t, imported.Properties, 1)
	assert.Equal(t, 2, imported.Properties[0].ExpensesCreated)

	reconciled, err := im.ReconcileUnits(ctx, []upload.UnitRow{
		{Row: 2, PropertyName: "Elm", UnitNumber: 1, SquareFootage: 600},
		{Row: 3, PropertyName: "Elm", UnitNumber: 1, SquareFootage: 600},
	}, nil)
	require.NoError(t, err)
	assert.Len(t, reconciled.Created, 1)
	assert.Len(t, reconciled.Skipped, 1)

	result, err := report.NewService(c, zap.NewNop()).Summary(ctx, report.Request{
		Options: report.Options{Mode: report.ModeTrailing3, Normalization: report.NormalizePerUnit},
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, report.Defined(300), result.Rows[0].Value(models.CategoryPayroll))
}

func TestClient_StatusMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"code":500,"message":"数据库不可用"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListProperties(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrRejected)
	assert.Contains(t, err.Error(), "数据库不可用")
	assert.Contains(t, err.Error(), "list properties")
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).ListUnits(context.Background(), nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, store.ErrNotFound))
	var opErr *store.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "list units", opErr.Op)
}

func TestNew_DefaultBaseURL(t *testing.T) {
	c := New("  ")
	assert.Equal(t, DefaultBaseURL, c.httpClient.BaseURL)
}
