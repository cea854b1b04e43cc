package handler

import (
	"net/http"
	"time"

	"github.com/dttrue/mabels-pawfect-sub001/internal/model"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/database"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/logger"
	"github.com/dttrue/mabels-pawfect-sub001/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GalleryImageRequest defines the structure for gallery image creation requests
type GalleryImageRequest struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	PublicID  string `json:"public_id"`
	SortOrder int    `json:"sort_order"`
}

// ListGalleryImages handles retrieving all active gallery images.
// Soft-deleted images are excluded by default scope.
func ListGalleryImages(c echo.Context) error {
	log := logger.FromEcho(c)

	var images []model.GalleryImage
	defer prometheus.TrackDBOperation("select")(time.Now())
	result := database.GetDB().Order("sort_order asc, id asc").Find(&images)
	if result.Error != nil {
		log.Error("Failed to list gallery images", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve gallery images",
		})
	}

	return c.JSON(http.StatusOK, images)
}

// CreateGalleryImage handles adding a new gallery image
func CreateGalleryImage(c echo.Context) error {
	log := logger.FromEcho(c)

	var req GalleryImageRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.URL == "" || req.PublicID == "" {
		log.Warn("Gallery image missing url or public_id")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "url and public_id are required"})
	}

	image := model.GalleryImage{
		Title:     req.Title,
		URL:       req.URL,
		PublicID:  req.PublicID,
		SortOrder: req.SortOrder,
	}
	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := database.GetDB().Create(&image).Error; err != nil {
		log.Error("Failed to create gallery image", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create gallery image"})
	}

	log.Info("Gallery image created",
		zap.Uint("image_id", image.ID),
		zap.String("public_id", image.PublicID))
	return c.JSON(http.StatusCreated, image)
}

// DeleteGalleryImage soft-deletes a gallery image. Deleting an
// already-deleted image is a no-op success.
func DeleteGalleryImage(c echo.Context) error {
	return softDeleteEntity(c, "gallery_image", &model.GalleryImage{}, false)
}

// UndoGalleryImageDelete restores a soft-deleted gallery image within the
// recovery window
func UndoGalleryImageDelete(c echo.Context) error {
	return undoEntity(c, "gallery_image", &model.GalleryImage{}, true)
}
