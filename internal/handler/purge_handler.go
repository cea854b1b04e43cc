package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dttrue/mabels-pawfect-sub001/internal/middleware"
	"github.com/dttrue/mabels-pawfect-sub001/internal/service"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PurgeHandler runs the hard-purge sweep. Hard purge is irreversible, so
// it sits behind a narrower trust tier than the rest of the admin API: an
// allow-list of principal emails injected at construction, not general
// admin rights.
type PurgeHandler struct {
	sweeper *service.Sweeper
	allowed map[string]struct{}
}

// NewPurgeHandler creates a purge handler restricted to the given emails
func NewPurgeHandler(sweeper *service.Sweeper, allowedEmails []string) *PurgeHandler {
	allowed := make(map[string]struct{}, len(allowedEmails))
	for _, email := range allowedEmails {
		allowed[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}
	return &PurgeHandler{sweeper: sweeper, allowed: allowed}
}

// Purge permanently removes every soft-deleted row past the recovery
// window, together with its remote asset
func (h *PurgeHandler) Purge(c echo.Context) error {
	log := logger.FromEcho(c)

	email, ok := middleware.GetEmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "caller identity required"})
	}
	if _, listed := h.allowed[strings.ToLower(email)]; !listed {
		log.Warn("Purge denied for caller outside allow-list", zap.String("email", email))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authorized to purge"})
	}

	purged, err := h.sweeper.Sweep(c.Request().Context())
	if err != nil {
		if errors.Is(err, service.ErrSweepInProgress) {
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "a sweep is already running"})
		}
		log.Error("Sweep failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "sweep failed"})
	}

	log.Info("Purge completed",
		zap.String("triggered_by", email),
		zap.Int("purged", purged))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": fmt.Sprintf("purged %d", purged),
	})
}
