package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"financials/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyHandler_CreateAndGet(t *testing.T) {
	s := setupStore(t)
	router := newTestRouter(s, 0)

	w := postJSON(router, "/api/properties", `{"name":" Maple Court ","units":24,"property_type":"Garden","location":"Austin"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Property
	resp := decodeResponse(t, w, &created)
	assert.Equal(t, "创建成功", resp.Message)
	assert.Equal(t, "Maple Court", created.Name)
	require.NotZero(t, created.ID)

	seedExpense(t, s, created.ID, 2024, 2, 200)
	seedExpense(t, s, created.ID, 2024, 1, 100)

	w = get(router, fmt.Sprintf("/api/properties/%d", created.ID))
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Property
	decodeResponse(t, w, &got)
	require.Len(t, got.Expenses, 2)
	assert.Equal(t, 1, got.Expenses[0].Month)
	assert.Equal(t, 2, got.Expenses[1].Month)
}

func TestPropertyHandler_Create_Invalid(t *testing.T) {
	router := newTestRouter(setupStore(t), 0)

	cases := []string{
		`{"name":"A","units":0,"property_type":"Garden","location":"Austin"}`,
		`{"units":4,"property_type":"Garden","location":"Austin"}`,
		`{"name":"   ","units":4,"property_type":"Garden","location":"Austin"}`,
		`not json`,
	}
	for _, body := range cases {
		w := postJSON(router, "/api/properties", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestPropertyHandler_Get_NotFound(t *testing.T) {
	router := newTestRouter(setupStore(t), 0)

	assert.Equal(t, http.StatusNotFound, get(router, "/api/properties/42").Code)
	assert.Equal(t, http.StatusBadRequest, get(router, "/api/properties/abc").Code)
}

func TestPropertyHandler_List(t *testing.T) {
	s := setupStore(t)
	seedProperty(t, s, "Oak", 10, "Garden", "Austin")
	seedProperty(t, s, "Pine", 20, "High Rise", "Dallas")
	router := newTestRouter(s, 0)

	w := get(router, "/api/properties")
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Property
	decodeResponse(t, w, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "Oak", list[0].Name)
	assert.Empty(t, list[0].Expenses)
}

func TestPropertyHandler_List_DBError(t *testing.T) {
	mock, s, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `properties`").
		WillReturnError(errors.New("connection refused"))

	router := newTestRouter(s, 0)
	w := get(router, "/api/properties")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
