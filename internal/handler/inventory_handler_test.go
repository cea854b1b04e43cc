package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dttrue/mabels-pawfect-sub001/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustInventoryValidation(t *testing.T) {
	newTestDB(t)

	// Missing variant_id
	c, rec := newRequest(http.MethodPost, "/api/admin/inventory", `{"product_id":1,"on_hand":5}`)
	require.NoError(t, AdjustInventory(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Negative quantity
	c, rec = newRequest(http.MethodPost, "/api/admin/inventory", `{"product_id":1,"variant_id":1,"on_hand":-2}`)
	require.NoError(t, AdjustInventory(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdjustAndDeleteInventoryFlow(t *testing.T) {
	db := newTestDB(t)

	c, rec := newRequest(http.MethodPost, "/api/admin/inventory",
		`{"product_id":1,"variant_id":1,"on_hand":5,"reason":"restock"}`)
	require.NoError(t, AdjustInventory(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = newRequest(http.MethodDelete, "/api/admin/inventory",
		`{"product_id":1,"variant_id":1,"reason":"discontinued"}`)
	require.NoError(t, DeleteInventory(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["deleted"])

	// Deleting again reports deleted=false, still ok
	c, rec = newRequest(http.MethodDelete, "/api/admin/inventory",
		`{"product_id":1,"variant_id":1}`)
	require.NoError(t, DeleteInventory(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["deleted"])

	var logs []model.InventoryLog
	require.NoError(t, db.Order("id asc").Find(&logs).Error)
	require.Len(t, logs, 2, "no-op delete must not log")
	assert.Equal(t, model.InventoryActionCreate, logs[0].Action)
	assert.Equal(t, model.InventoryActionDelete, logs[1].Action)
}
