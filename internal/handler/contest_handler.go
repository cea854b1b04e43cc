package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dttrue/mabels-pawfect-sub001/internal/model"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/database"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/logger"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/mailer"
	"github.com/dttrue/mabels-pawfect-sub001/prometheus"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ContestEntryRequest defines the structure for contest submissions
type ContestEntryRequest struct {
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
	PetName    string `json:"pet_name"`
	Story      string `json:"story"`
	PhotoURL   string `json:"photo_url"`
	PublicID   string `json:"public_id"`
}

// ContestHandler owns contest moderation, which needs the mail sender
type ContestHandler struct {
	mail mailer.Sender
}

// NewContestHandler creates a contest handler
func NewContestHandler(mail mailer.Sender) *ContestHandler {
	return &ContestHandler{mail: mail}
}

// ListContestEntries returns active entries, newest first
func ListContestEntries(c echo.Context) error {
	log := logger.FromEcho(c)

	var entries []model.ContestEntry
	query := database.GetDB().Order("id desc")
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	defer prometheus.TrackDBOperation("select")(time.Now())
	if err := query.Find(&entries).Error; err != nil {
		log.Error("Failed to list contest entries", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve contest entries"})
	}

	return c.JSON(http.StatusOK, entries)
}

// CreateContestEntry handles a public photo contest submission
func CreateContestEntry(c echo.Context) error {
	log := logger.FromEcho(c)

	var req ContestEntryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.OwnerName == "" || req.OwnerEmail == "" || req.PetName == "" || req.PhotoURL == "" || req.PublicID == "" {
		log.Warn("Contest entry missing required fields")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "owner_name, owner_email, pet_name, photo_url and public_id are required",
		})
	}

	entry := model.ContestEntry{
		Token:      uuid.New().String(),
		OwnerName:  req.OwnerName,
		OwnerEmail: req.OwnerEmail,
		PetName:    req.PetName,
		Story:      req.Story,
		PhotoURL:   req.PhotoURL,
		PublicID:   req.PublicID,
		Status:     model.ContestStatusPending,
	}
	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := database.GetDB().Create(&entry).Error; err != nil {
		log.Error("Failed to create contest entry", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create contest entry"})
	}

	log.Info("Contest entry created",
		zap.Uint("entry_id", entry.ID),
		zap.String("pet_name", entry.PetName))
	return c.JSON(http.StatusCreated, entry)
}

// DeleteContestEntry soft-deletes an entry. Unlike the other entity types
// this is strict: deleting an already-deleted entry is a 409 conflict.
func DeleteContestEntry(c echo.Context) error {
	return softDeleteEntity(c, "contest_entry", &model.ContestEntry{}, true)
}

// UndoContestEntryDelete is the canonical contest undo. By default it is
// strict and reports reason codes; ?lenient=1 reproduces the old
// tolerant behavior where undoing an active entry is a success.
func UndoContestEntryDelete(c echo.Context) error {
	lenient := c.QueryParam("lenient") == "1" || c.QueryParam("lenient") == "true"
	return undoEntity(c, "contest_entry", &model.ContestEntry{}, lenient)
}

// Accept marks an entry accepted and notifies the owner
func (h *ContestHandler) Accept(c echo.Context) error {
	return h.moderate(c, model.ContestStatusAccepted,
		"Your pet made the gallery!",
		"Great news! %s's photo was accepted into the Mabel's Pawfect contest gallery.")
}

// Decline marks an entry declined and notifies the owner
func (h *ContestHandler) Decline(c echo.Context) error {
	return h.moderate(c, model.ContestStatusDeclined,
		"About your contest entry",
		"Thanks for sharing %s's photo with us. We couldn't include it in the contest this time, but we'd love to see more.")
}

func (h *ContestHandler) moderate(c echo.Context, status, subject, bodyFmt string) error {
	log := logger.FromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	db := database.GetDB()

	var entry model.ContestEntry
	if err := db.First(&entry, id).Error; err != nil {
		log.Warn("Contest entry not found", zap.Uint("entry_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "contest entry not found"})
	}

	if entry.Status == status {
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "entry": entry})
	}

	entry.Status = status
	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := db.Save(&entry).Error; err != nil {
		log.Error("Failed to update contest entry status",
			zap.Uint("entry_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update contest entry"})
	}

	// Fire-and-forget notification; a send failure never fails the request
	if h.mail != nil {
		to := entry.OwnerEmail
		body := fmt.Sprintf(bodyFmt, entry.PetName)
		go func() {
			if err := h.mail.Send(context.Background(), to, subject, body); err != nil {
				log.Warn("Contest notification mail failed",
					zap.Uint("entry_id", id),
					zap.Error(err))
			}
		}()
	}

	log.Info("Contest entry moderated",
		zap.Uint("entry_id", id),
		zap.String("status", status))
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "entry": entry})
}
