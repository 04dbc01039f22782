package api

import (
	"fmt"
	"net/http"
	"testing"

	"financials/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitHandler_CreateAndDuplicate(t *testing.T) {
	s := setupStore(t)
	p := seedProperty(t, s, "Oak", 10, "Garden", "Austin")
	router := newTestRouter(s, 0)

	body := fmt.Sprintf(`{"property":%d,"unit_number":101,"square_footage":850}`, p.ID)
	w := postJSON(router, "/api/units", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/api/units", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w, nil)
	assert.Equal(t, "该物业下单元号已存在", resp.Message)

	var units []models.Unit
	decodeResponse(t, get(router, fmt.Sprintf("/api/units?property=%d", p.ID)), &units)
	require.Len(t, units, 1)
	assert.Equal(t, 850.0, units[0].SquareFootage)
}

func TestUnitHandler_Create_Invalid(t *testing.T) {
	s := setupStore(t)
	p := seedProperty(t, s, "Oak", 10, "Garden", "Austin")
	router := newTestRouter(s, 0)

	w := postJSON(router, "/api/units", fmt.Sprintf(`{"property":%d,"unit_number":1,"square_footage":0}`, p.ID))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(router, "/api/units", `{"property":77,"unit_number":1,"square_footage":500}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
