package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dttrue/mabels-pawfect-sub001/internal/service"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/logger"
	"github.com/dttrue/mabels-pawfect-sub001/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// parseID reads the :id route parameter
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// softDeleteEntity is the shared soft-delete path: idempotent unless
// strict, metric and log per entity type.
func softDeleteEntity(c echo.Context, entityName string, entity service.Recoverable, strict bool) error {
	log := logger.FromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	lc := lifecycle()
	if strict {
		err = lc.SoftDeleteStrict(c.Request().Context(), entity, id)
	} else {
		err = lc.SoftDelete(c.Request().Context(), entity, id)
	}
	if err != nil {
		log.Warn("Soft delete failed",
			zap.String("entity", entityName),
			zap.Uint("id", id),
			zap.Error(err))
		return lifecycleError(c, err, entityName)
	}

	prometheus.RecordLifecycleOperation(entityName, "soft_delete")
	log.Info("Entity soft-deleted",
		zap.String("entity", entityName),
		zap.Uint("id", id))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// undoEntity is the shared undo path. When lenient, undoing an active
// entity reports success; strict callers get a 409 with a reason code.
func undoEntity(c echo.Context, entityName string, entity service.Recoverable, lenient bool) error {
	log := logger.FromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	err = lifecycle().Undo(c.Request().Context(), entity, id)
	if err != nil {
		if errors.Is(err, service.ErrNotDeleted) {
			if lenient {
				return c.JSON(http.StatusOK, echo.Map{"ok": true, "message": "not deleted"})
			}
			return c.JSON(http.StatusConflict, echo.Map{"ok": false, "reason": "not_deleted"})
		}
		if errors.Is(err, service.ErrWindowExpired) {
			prometheus.UndoExpiredCounter.WithLabelValues(entityName).Inc()
		}
		log.Warn("Undo failed",
			zap.String("entity", entityName),
			zap.Uint("id", id),
			zap.Error(err))
		return lifecycleError(c, err, entityName)
	}

	prometheus.RecordLifecycleOperation(entityName, "undo")
	log.Info("Entity restored",
		zap.String("entity", entityName),
		zap.Uint("id", id))
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "restored": entity})
}
