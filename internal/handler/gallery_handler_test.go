package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dttrue/mabels-pawfect-sub001/internal/model"
	"github.com/dttrue/mabels-pawfect-sub001/prometheus"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListGalleryImages(t *testing.T) {
	newTestDB(t)

	c, rec := newRequest(http.MethodPost, "/api/admin/gallery",
		`{"title":"Mabel at the park","url":"https://cdn/x.jpg","public_id":"gallery/x"}`)
	require.NoError(t, CreateGalleryImage(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newRequest(http.MethodGet, "/api/gallery", "")
	require.NoError(t, ListGalleryImages(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var images []model.GalleryImage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &images))
	require.Len(t, images, 1)
	assert.Equal(t, "gallery/x", images[0].PublicID)
}

func TestCreateGalleryImageRequiresAsset(t *testing.T) {
	newTestDB(t)

	c, rec := newRequest(http.MethodPost, "/api/admin/gallery", `{"title":"no asset"}`)
	require.NoError(t, CreateGalleryImage(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlersRecordDBOperationDuration(t *testing.T) {
	newTestDB(t)

	c, rec := newRequest(http.MethodGet, "/api/gallery", "")
	require.NoError(t, ListGalleryImages(c))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.GreaterOrEqual(t,
		testutil.CollectAndCount(prometheus.DbOperationDuration, "test_handler_db_operation_duration_seconds"), 1,
		"DB-backed handlers must observe an operation duration")
}
