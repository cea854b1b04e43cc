package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/dttrue/mabels-pawfect-sub001/internal/service"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/database"

	"github.com/labstack/echo/v4"
)

var recoveryWindow = service.DefaultRecoveryWindow

// Configure sets handler-wide policy from loaded configuration
func Configure(window time.Duration) {
	if window > 0 {
		recoveryWindow = window
	}
}

// lifecycle builds the soft-delete lifecycle manager against the live DB
func lifecycle() *service.Lifecycle {
	return service.NewLifecycle(database.GetDB(), recoveryWindow)
}

// lifecycleError maps lifecycle service errors onto the API contract.
// ErrNotDeleted is intentionally not handled here: lenient and strict
// callers disagree about it, so each undo handler decides.
func lifecycleError(c echo.Context, err error, entity string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": entity + " not found"})
	case errors.Is(err, service.ErrAlreadyDeleted):
		return c.JSON(http.StatusConflict, echo.Map{"error": entity + " already deleted"})
	case errors.Is(err, service.ErrWindowExpired):
		return c.JSON(http.StatusGone, echo.Map{
			"error":  "undo window expired",
			"reason": "window_expired",
		})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
