package main

import (
	"net/http"

	"github.com/dttrue/mabels-pawfect-sub001/internal/handler"
	mid "github.com/dttrue/mabels-pawfect-sub001/internal/middleware"
	"github.com/dttrue/mabels-pawfect-sub001/internal/service"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/cloudinary"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/config"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/database"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/jwtutil"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/logger"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/mailer"
	"github.com/dttrue/mabels-pawfect-sub001/pkg/payments"
	"github.com/dttrue/mabels-pawfect-sub001/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load("mabels-pawfect")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting mabels-pawfect backend", appConfig.LogConfig()...)

	// Initialize JWT utility
	jwtutil.Initialize(appConfig.JWT.SigningKey)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Handler-wide policy
	handler.Configure(appConfig.Admin.RecoveryWindow)

	// External collaborators
	assets := cloudinary.NewClient(
		appConfig.Cloudinary.CloudName,
		appConfig.Cloudinary.APIKey,
		appConfig.Cloudinary.APISecret,
		log)
	mailSender := mailer.NewSendGridSender(
		appConfig.Mail.SendGridAPIKey,
		appConfig.Mail.FromName,
		appConfig.Mail.FromAddress,
		log)
	paymentsClient := payments.NewClient(
		appConfig.Payments.BaseURL,
		appConfig.Payments.SecretKey,
		log)

	// Optional redis-backed run lock for the purge sweep
	var runLock service.RunLocker
	if appConfig.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     appConfig.Redis.Addr,
			Password: appConfig.Redis.Password,
			DB:       appConfig.Redis.DB,
		})
		runLock = service.NewRedisRunLock(rdb, "")
		log.Info("Purge run-lock enabled", zap.String("redis_addr", appConfig.Redis.Addr))
	}

	sweeper := service.NewSweeper(
		database.GetDB(), assets, runLock, appConfig.Admin.RecoveryWindow, log)

	purgeHandler := handler.NewPurgeHandler(sweeper, appConfig.Admin.PurgeAllowedEmails)
	contestHandler := handler.NewContestHandler(mailSender)
	checkoutHandler := handler.NewCheckoutHandler(paymentsClient)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public site API
	e.GET("/api/gallery", handler.ListGalleryImages)
	e.GET("/api/highlights", handler.ListHighlights)
	e.GET("/api/products", handler.ListProducts)
	e.GET("/api/products/:id", handler.GetProduct)
	e.POST("/api/contest/entries", handler.CreateContestEntry)
	e.GET("/api/checkout/sessions/:id", checkoutHandler.GetSession)

	// Admin API - JWT validated, identity extracted for audit trails
	admin := e.Group("/api/admin", mid.AuthMiddleware)

	admin.POST("/gallery", handler.CreateGalleryImage)
	admin.DELETE("/gallery/:id", handler.DeleteGalleryImage)
	admin.POST("/gallery/:id/undo", handler.UndoGalleryImageDelete)

	admin.POST("/highlights", handler.CreateHighlight)
	admin.DELETE("/highlights/:id", handler.DeleteHighlight)
	admin.POST("/highlights/:id/undo", handler.UndoHighlightDelete)

	admin.GET("/products", handler.ListProducts)
	admin.POST("/products", handler.CreateProduct)
	admin.PUT("/products/:id", handler.UpdateProduct)
	admin.DELETE("/products/:id", handler.DeleteProduct)
	admin.POST("/products/:id/undo", handler.UndoProductDelete)

	admin.POST("/product-images", handler.CreateProductImage)
	admin.DELETE("/product-images/:id", handler.DeleteProductImage)
	admin.POST("/product-images/:id/undo", handler.UndoProductImageDelete)

	admin.GET("/contest/entries", handler.ListContestEntries)
	admin.DELETE("/contest/entries/:id", handler.DeleteContestEntry)
	admin.POST("/contest/entries/:id/undo", handler.UndoContestEntryDelete)
	admin.POST("/contest/entries/:id/accept", contestHandler.Accept)
	admin.POST("/contest/entries/:id/decline", contestHandler.Decline)

	admin.POST("/inventory", handler.AdjustInventory)
	admin.DELETE("/inventory", handler.DeleteInventory)
	admin.GET("/inventory/history", handler.InventoryHistory)

	admin.POST("/variants/ensure-default", handler.EnsureDefaultVariant)
	admin.DELETE("/variants", handler.DeleteVariant)

	// Hard purge sits behind its own allow-list on top of admin auth
	admin.POST("/purge", purgeHandler.Purge)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
