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

// ProductImageRequest defines the structure for product image creation requests
type ProductImageRequest struct {
	ProductID uint    `json:"product_id"`
	URL       string  `json:"url"`
	PublicID  string  `json:"public_id"`
	AltText   *string `json:"alt_text"`
	Position  int     `json:"position"`
}

// CreateProductImage attaches a hosted image to a product
func CreateProductImage(c echo.Context) error {
	log := logger.FromEcho(c)

	var req ProductImageRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.ProductID == 0 || req.URL == "" || req.PublicID == "" {
		log.Warn("Product image missing required fields")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id, url and public_id are required"})
	}

	db := database.GetDB()

	var product model.Product
	if err := db.First(&product, req.ProductID).Error; err != nil {
		log.Warn("Product not found for image", zap.Uint("product_id", req.ProductID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	image := model.ProductImage{
		ProductID: req.ProductID,
		URL:       req.URL,
		PublicID:  req.PublicID,
		AltText:   req.AltText,
		Position:  req.Position,
	}
	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := db.Create(&image).Error; err != nil {
		log.Error("Failed to create product image",
			zap.Uint("product_id", req.ProductID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create product image"})
	}

	log.Info("Product image created",
		zap.Uint("image_id", image.ID),
		zap.Uint("product_id", image.ProductID))
	return c.JSON(http.StatusCreated, image)
}

// DeleteProductImage soft-deletes a product image; idempotent on repeat calls
func DeleteProductImage(c echo.Context) error {
	return softDeleteEntity(c, "product_image", &model.ProductImage{}, false)
}

// UndoProductImageDelete restores a soft-deleted product image within the
// recovery window
func UndoProductImageDelete(c echo.Context) error {
	return undoEntity(c, "product_image", &model.ProductImage{}, true)
}
