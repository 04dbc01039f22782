package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"financials/config"
	"financials/database"
	"financials/models"
	"financials/report"
	"financials/store"
	"financials/upload"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupStore(t *testing.T) *store.GormStore {
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, "release")
	require.NoError(t, err)
	return store.NewGormStore(db)
}

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *store.GormStore, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return mock, store.NewGormStore(gormDB), func() {
		sqlDB.Close()
	}
}

// newTestRouter 注册与正式路由相同路径的处理器
func newTestRouter(s store.RecordStore, maxFileMB int) *gin.Engine {
	r := gin.New()
	logger := zap.NewNop()

	propertyHandler := NewPropertyHandler(s)
	expenseHandler := NewExpenseHandler(s)
	unitHandler := NewUnitHandler(s)
	reportHandler := NewReportHandler(report.NewService(s, logger))
	uploadHandler := NewUploadHandler(s, upload.NewImporter(s, logger), maxFileMB)
	templateHandler := NewTemplateHandler(s)

	g := r.Group("/api")
	g.GET("/properties", propertyHandler.List)
	g.POST("/properties", propertyHandler.Create)
	g.GET("/properties/:id", propertyHandler.Get)
	g.GET("/expenses", expenseHandler.List)
	g.POST("/expenses", expenseHandler.Create)
	g.GET("/units", unitHandler.List)
	g.POST("/units", unitHandler.Create)
	g.GET("/reports/filters", reportHandler.Filters)
	g.GET("/reports/summary", reportHandler.Summary)
	g.GET("/reports/summary/export", reportHandler.ExportExcel)
	g.GET("/reports/boxplot", reportHandler.BoxPlot)
	g.POST("/uploads/expenses", uploadHandler.Expenses)
	g.POST("/uploads/units", uploadHandler.Units)
	g.GET("/templates/expenses", templateHandler.Expenses)
	g.GET("/templates/units", templateHandler.Units)
	return r
}

func performRequest(r http.Handler, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	return performRequest(r, http.MethodPost, path, bytes.NewBufferString(body), "application/json")
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	return performRequest(r, http.MethodGet, path, nil, "")
}

// decodeResponse 解析通用响应，data 保留为原始 JSON
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, data interface{}) Response {
	t.Helper()
	var raw struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	if data != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return Response{Code: raw.Code, Message: raw.Message}
}

func seedProperty(t *testing.T, s store.RecordStore, name string, units int, propertyType, location string) models.Property {
	t.Helper()
	p := models.Property{Name: name, Units: units, PropertyType: propertyType, Location: location}
	require.NoError(t, s.CreateProperty(context.Background(), &p))
	return p
}

func seedExpense(t *testing.T, s store.RecordStore, propertyID uint, year, month int, payroll float64) {
	t.Helper()
	e := models.Expense{PropertyID: propertyID, Year: year, Month: month, Payroll: payroll, Taxes: payroll / 2}
	require.NoError(t, s.CreateExpense(context.Background(), &e))
}

func seedUnit(t *testing.T, s store.RecordStore, propertyID uint, number int, sqft float64) {
	t.Helper()
	u := models.Unit{PropertyID: propertyID, UnitNumber: number, SquareFootage: sqft}
	require.NoError(t, s.CreateUnit(context.Background(), &u))
}

// multipartFile 构造只含 file 字段（及可选表单字段）的上传请求体
func multipartFile(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}
