package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dttrue/mabels-pawfect-sub001/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedContestEntry(t *testing.T, db *gorm.DB) model.ContestEntry {
	t.Helper()
	entry := model.ContestEntry{
		Token: "tok-1", OwnerName: "Dana", OwnerEmail: "dana@example.com",
		PetName: "Biscuit", PhotoURL: "https://cdn/b.jpg", PublicID: "contest/b",
		Status: model.ContestStatusPending,
	}
	require.NoError(t, db.Create(&entry).Error)
	return entry
}

func withID(c echo.Context, id string) {
	c.SetParamNames("id")
	c.SetParamValues(id)
}

func TestDeleteContestEntryIsStrict(t *testing.T) {
	db := newTestDB(t)
	entry := seedContestEntry(t, db)

	c, rec := newRequest(http.MethodDelete, "/api/admin/contest/entries/1", "")
	withID(c, "1")
	require.NoError(t, DeleteContestEntry(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Second delete conflicts instead of silently succeeding
	c, rec = newRequest(http.MethodDelete, "/api/admin/contest/entries/1", "")
	withID(c, "1")
	require.NoError(t, DeleteContestEntry(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var got model.ContestEntry
	require.NoError(t, db.Unscoped().First(&got, entry.ID).Error)
	assert.True(t, got.DeletedAt.Valid)
}

func TestContestUndoStrictVsLenient(t *testing.T) {
	db := newTestDB(t)
	seedContestEntry(t, db)

	// Strict undo of an active entry reports a reason code
	c, rec := newRequest(http.MethodPost, "/api/admin/contest/entries/1/undo", "")
	withID(c, "1")
	require.NoError(t, UndoContestEntryDelete(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_deleted", body["reason"])

	// Lenient undo of the same active entry is a success
	c, rec = newRequest(http.MethodPost, "/api/admin/contest/entries/1/undo?lenient=1", "")
	withID(c, "1")
	require.NoError(t, UndoContestEntryDelete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestContestUndoRestoresWithinWindow(t *testing.T) {
	db := newTestDB(t)
	entry := seedContestEntry(t, db)

	c, rec := newRequest(http.MethodDelete, "/api/admin/contest/entries/1", "")
	withID(c, "1")
	require.NoError(t, DeleteContestEntry(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = newRequest(http.MethodPost, "/api/admin/contest/entries/1/undo", "")
	withID(c, "1")
	require.NoError(t, UndoContestEntryDelete(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.ContestEntry
	require.NoError(t, db.First(&got, entry.ID).Error)
	assert.False(t, got.DeletedAt.Valid)
}

func TestContestUndoPastWindowIsGone(t *testing.T) {
	db := newTestDB(t)
	entry := seedContestEntry(t, db)
	require.NoError(t, db.Unscoped().Model(&entry).
		Update("deleted_at", time.Now().Add(-time.Hour)).Error)

	c, rec := newRequest(http.MethodPost, "/api/admin/contest/entries/1/undo", "")
	withID(c, "1")
	require.NoError(t, UndoContestEntryDelete(c))
	assert.Equal(t, http.StatusGone, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "window_expired", body["reason"])

	// Entry stays deleted; a later sweep will purge it
	var got model.ContestEntry
	require.NoError(t, db.Unscoped().First(&got, entry.ID).Error)
	assert.True(t, got.DeletedAt.Valid)
}
