package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dttrue/mabels-pawfect-sub001/internal/model"
	"github.com/dttrue/mabels-pawfect-sub001/internal/service"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/database"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/logger"
	"github.com/dttrue/mabels-pawfect-sub001/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	SKU         string  `json:"sku"`
	Price       float64 `json:"price"`
	IsActive    bool    `json:"is_active"`
}

// ListProducts handles retrieving all products with optional filtering
func ListProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	db := database.GetDB()
	var products []model.Product

	query := db.Preload("Images").Preload("Variants")

	// Filter by active status if specified
	isActive := c.QueryParam("is_active")
	if isActive != "" {
		active, err := strconv.ParseBool(isActive)
		if err == nil {
			query = query.Where("is_active = ?", active)
		} else {
			log.Warn("Invalid is_active parameter", zap.String("value", isActive), zap.Error(err))
		}
	}

	defer prometheus.TrackDBOperation("select")(time.Now())
	if err := query.Find(&products).Error; err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product by ID
func GetProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	var product model.Product
	defer prometheus.TrackDBOperation("select")(time.Now())
	result := database.GetDB().Preload("Images").Preload("Variants").First(&product, id)
	if result.Error != nil {
		log.Warn("Product not found", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product. Every product gets a
// default variant and an inventory row so it is purchasable immediately.
func CreateProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Name == "" || req.SKU == "" || req.Price <= 0 {
		log.Warn("Product creation request missing required fields",
			zap.String("name", req.Name),
			zap.String("sku", req.SKU))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, sku and a positive price are required"})
	}

	db := database.GetDB()

	// Check if product with SKU already exists
	var count int64
	db.Model(&model.Product{}).Where("sku = ?", req.SKU).Count(&count)
	if count > 0 {
		log.Warn("Product with this SKU already exists", zap.String("sku", req.SKU))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Product with this SKU already exists",
		})
	}

	product := model.Product{
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		Price:       req.Price,
		IsActive:    req.IsActive,
	}
	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := db.Create(&product).Error; err != nil {
		log.Error("Failed to create product",
			zap.String("sku", req.SKU),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create product"})
	}

	if _, err := service.NewVariants(db).EnsureDefault(c.Request().Context(), product.ID, ""); err != nil {
		log.Error("Failed to ensure default variant",
			zap.Uint("product_id", product.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create product variant"})
	}

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("sku", product.SKU))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles updating an existing product
func UpdateProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	db := database.GetDB()

	var product model.Product
	if err := db.First(&product, id).Error; err != nil {
		log.Warn("Product not found for update", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	// Check if SKU is changed and if new SKU already exists
	if req.SKU != "" && req.SKU != product.SKU {
		var count int64
		db.Model(&model.Product{}).Where("sku = ? AND id != ?", req.SKU, product.ID).Count(&count)
		if count > 0 {
			log.Warn("Product with this SKU already exists", zap.String("sku", req.SKU))
			return c.JSON(http.StatusConflict, echo.Map{"error": "Product with this SKU already exists"})
		}
		product.SKU = req.SKU
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	product.Description = req.Description
	if req.Price > 0 {
		product.Price = req.Price
	}
	product.IsActive = req.IsActive

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := db.Save(&product).Error; err != nil {
		log.Error("Failed to update product", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update product"})
	}

	log.Info("Product updated",
		zap.Uint("product_id", product.ID),
		zap.String("sku", product.SKU))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct soft-deletes a product; it disappears from listings but
// stays recoverable until the undo window closes
func DeleteProduct(c echo.Context) error {
	return softDeleteEntity(c, "product", &model.Product{}, false)
}

// UndoProductDelete restores a soft-deleted product within the recovery window
func UndoProductDelete(c echo.Context) error {
	return undoEntity(c, "product", &model.Product{}, true)
}
