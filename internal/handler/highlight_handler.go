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

// HighlightRequest defines the structure for highlight creation/update requests
type HighlightRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// ListHighlights handles retrieving all active highlights
func ListHighlights(c echo.Context) error {
	log := logger.FromEcho(c)

	var highlights []model.Highlight
	defer prometheus.TrackDBOperation("select")(time.Now())
	if err := database.GetDB().Order("id desc").Find(&highlights).Error; err != nil {
		log.Error("Failed to list highlights", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve highlights",
		})
	}

	return c.JSON(http.StatusOK, highlights)
}

// CreateHighlight handles adding a new highlight
func CreateHighlight(c echo.Context) error {
	log := logger.FromEcho(c)

	var req HighlightRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Title == "" {
		log.Warn("Highlight missing title")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	highlight := model.Highlight{
		Title:    req.Title,
		Body:     req.Body,
		URL:      req.URL,
		PublicID: req.PublicID,
	}
	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := database.GetDB().Create(&highlight).Error; err != nil {
		log.Error("Failed to create highlight", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create highlight"})
	}

	log.Info("Highlight created",
		zap.Uint("highlight_id", highlight.ID),
		zap.String("title", highlight.Title))
	return c.JSON(http.StatusCreated, highlight)
}

// DeleteHighlight soft-deletes a highlight; idempotent on repeat calls
func DeleteHighlight(c echo.Context) error {
	return softDeleteEntity(c, "highlight", &model.Highlight{}, false)
}

// UndoHighlightDelete restores a soft-deleted highlight within the recovery window
func UndoHighlightDelete(c echo.Context) error {
	return undoEntity(c, "highlight", &model.Highlight{}, true)
}
