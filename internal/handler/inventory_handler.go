package handler

import (
	"net/http"
	"strconv"

	"github.com/dttrue/mabels-pawfect-sub001/internal/middleware"
	"github.com/dttrue/mabels-pawfect-sub001/internal/service"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/database"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InventoryAdjustRequest defines the structure for stock adjustments
type InventoryAdjustRequest struct {
	ProductID uint   `json:"product_id"`
	VariantID uint   `json:"variant_id"`
	OnHand    *int   `json:"on_hand"`
	Reason    string `json:"reason"`
	Source    string `json:"source"`
}

// InventoryDeleteRequest defines the structure for inventory row removal
type InventoryDeleteRequest struct {
	ProductID uint   `json:"product_id"`
	VariantID uint   `json:"variant_id"`
	Reason    string `json:"reason"`
	UserID    *uint  `json:"user_id"`
}

// callerID resolves the acting user: the authenticated identity wins over
// any id supplied in the payload.
func callerID(c echo.Context, fallback *uint) *uint {
	if id, ok := middleware.GetUserIDFromContext(c); ok {
		return &id
	}
	return fallback
}

// AdjustInventory sets the on-hand count for a product variant and
// records the transition in the audit log
func AdjustInventory(c echo.Context) error {
	log := logger.FromEcho(c)

	var req InventoryAdjustRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.ProductID == 0 || req.VariantID == 0 || req.OnHand == nil {
		log.Warn("Inventory adjust missing required fields")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id, variant_id and on_hand are required"})
	}
	if *req.OnHand < 0 {
		log.Warn("Inventory adjust rejected negative quantity", zap.Int("on_hand", *req.OnHand))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "on_hand cannot be negative"})
	}

	source := req.Source
	if source == "" {
		source = "admin"
	}

	level, err := service.NewLedger(database.GetDB()).Adjust(c.Request().Context(), service.AdjustInput{
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		ToQty:     *req.OnHand,
		Reason:    req.Reason,
		Source:    source,
		UserID:    callerID(c, nil),
	})
	if err != nil {
		log.Error("Inventory adjust failed",
			zap.Uint("product_id", req.ProductID),
			zap.Uint("variant_id", req.VariantID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to adjust inventory"})
	}

	log.Info("Inventory adjusted",
		zap.Uint("product_id", req.ProductID),
		zap.Uint("variant_id", req.VariantID),
		zap.Int("on_hand", level.OnHand))
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "level": level})
}

// DeleteInventory removes an inventory row and logs the removal. Deleting
// a nonexistent row is a no-op, reported via the deleted flag.
func DeleteInventory(c echo.Context) error {
	log := logger.FromEcho(c)

	var req InventoryDeleteRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.ProductID == 0 || req.VariantID == 0 {
		log.Warn("Inventory delete missing required fields")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id and variant_id are required"})
	}

	deleted, err := service.NewLedger(database.GetDB()).DeleteRow(
		c.Request().Context(), req.ProductID, req.VariantID, req.Reason, callerID(c, req.UserID))
	if err != nil {
		log.Error("Inventory delete failed",
			zap.Uint("product_id", req.ProductID),
			zap.Uint("variant_id", req.VariantID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete inventory"})
	}

	log.Info("Inventory row delete processed",
		zap.Uint("product_id", req.ProductID),
		zap.Uint("variant_id", req.VariantID),
		zap.Bool("deleted", deleted))
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "deleted": deleted})
}

// InventoryHistory returns the ordered audit trail for a product variant
func InventoryHistory(c echo.Context) error {
	log := logger.FromEcho(c)

	productID, err1 := strconv.ParseUint(c.QueryParam("product_id"), 10, 64)
	variantID, err2 := strconv.ParseUint(c.QueryParam("variant_id"), 10, 64)
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id and variant_id are required"})
	}

	history, err := service.NewLedger(database.GetDB()).History(
		c.Request().Context(), uint(productID), uint(variantID))
	if err != nil {
		log.Error("Failed to fetch inventory history", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve inventory history"})
	}

	return c.JSON(http.StatusOK, history)
}
