package handler

import (
	"errors"
	"net/http"

	"github.com/dttrue/mabels-pawfect-sub001/internal/service"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/database"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// EnsureVariantRequest defines the structure for ensure-default-variant requests
type EnsureVariantRequest struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
}

// DeleteVariantRequest defines the structure for variant deletion requests
type DeleteVariantRequest struct {
	ProductID uint   `json:"product_id"`
	VariantID uint   `json:"variant_id"`
	Reason    string `json:"reason"`
}

// EnsureDefaultVariant guarantees the product has a purchasable variant
// with an inventory row; idempotent
func EnsureDefaultVariant(c echo.Context) error {
	log := logger.FromEcho(c)

	var req EnsureVariantRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.ProductID == 0 {
		log.Warn("Ensure variant missing product_id")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id is required"})
	}

	variant, err := service.NewVariants(database.GetDB()).EnsureDefault(
		c.Request().Context(), req.ProductID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		log.Error("Failed to ensure default variant",
			zap.Uint("product_id", req.ProductID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to ensure variant"})
	}

	log.Info("Default variant ensured",
		zap.Uint("product_id", req.ProductID),
		zap.Uint("variant_id", variant.ID))
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "variant": variant})
}

// DeleteVariant removes a variant and cascades to cart items, the
// inventory row and the audit trail's variant reference
func DeleteVariant(c echo.Context) error {
	log := logger.FromEcho(c)

	var req DeleteVariantRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.ProductID == 0 || req.VariantID == 0 {
		log.Warn("Delete variant missing required fields")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id and variant_id are required"})
	}

	userID := callerID(c, nil)
	err := service.NewVariants(database.GetDB()).Delete(
		c.Request().Context(), req.ProductID, req.VariantID, req.Reason, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			log.Warn("Variant not found for product",
				zap.Uint("product_id", req.ProductID),
				zap.Uint("variant_id", req.VariantID))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "variant not found for product"})
		}
		log.Error("Failed to delete variant",
			zap.Uint("product_id", req.ProductID),
			zap.Uint("variant_id", req.VariantID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete variant"})
	}

	log.Info("Variant deleted",
		zap.Uint("product_id", req.ProductID),
		zap.Uint("variant_id", req.VariantID))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
