package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dttrue/mabels-pawfect-sub001/internal/model"
	"github.com/dttrue/mabels-pawfect-sub001/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type okRemover struct{}

func (okRemover) Destroy(ctx context.Context, publicID string) error { return nil }

func newPurgeHandler(db *gorm.DB, allowed []string) *PurgeHandler {
	sweeper := service.NewSweeper(db, okRemover{}, nil, 15*time.Minute, zap.NewNop())
	return NewPurgeHandler(sweeper, allowed)
}

func TestPurgeRequiresIdentity(t *testing.T) {
	db := newTestDB(t)
	h := newPurgeHandler(db, []string{"owner@mabelspawfect.com"})

	c, rec := newRequest(http.MethodPost, "/api/admin/purge", "")
	require.NoError(t, h.Purge(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPurgeRejectsUnlistedAdmin(t *testing.T) {
	db := newTestDB(t)
	h := newPurgeHandler(db, []string{"owner@mabelspawfect.com"})

	// Authenticated admin, but not on the purge allow-list
	c, rec := newRequest(http.MethodPost, "/api/admin/purge", "")
	c.Set("email", "staff@mabelspawfect.com")
	require.NoError(t, h.Purge(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPurgeRunsForAllowedCaller(t *testing.T) {
	db := newTestDB(t)
	h := newPurgeHandler(db, []string{"Owner@MabelsPawfect.com"})

	img := model.GalleryImage{URL: "u", PublicID: "gallery/old"}
	require.NoError(t, db.Create(&img).Error)
	require.NoError(t, db.Unscoped().Model(&img).
		Update("deleted_at", time.Now().Add(-time.Hour)).Error)

	c, rec := newRequest(http.MethodPost, "/api/admin/purge", "")
	c.Set("email", "owner@mabelspawfect.com")
	require.NoError(t, h.Purge(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "purged 1", body.Message)

	err := db.Unscoped().First(&model.GalleryImage{}, img.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
