package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggoFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"backoffice-service/internal/config"
	"backoffice-service/internal/events"
	"backoffice-service/internal/handlers"
	"backoffice-service/internal/importer"
	"backoffice-service/internal/middleware"
	"backoffice-service/internal/repository"
	"backoffice-service/internal/services"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}

	// Redis is optional; the service degrades to uncached reads
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Warn("Failed to parse Redis URL, continuing without caching")
		} else {
			redisClient = redis.NewClient(opt)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				logger.WithError(err).Warn("Failed to connect to Redis, continuing without caching")
				redisClient = nil
			} else {
				logger.Info("Connected to Redis for caching")
			}
			cancel()
		}
	} else {
		logger.Info("REDIS_URL not configured, caching disabled")
	}

	// NATS is optional; a nil publisher is a no-op
	publisher, err := events.NewPublisher(cfg.NATSURL, logger)
	if err != nil {
		logger.WithError(err).Warn("Failed to connect to NATS, continuing without events")
		publisher = nil
	} else if publisher != nil {
		logger.Info("Connected to NATS for event publishing")
		defer publisher.Close()
	}

	// Repositories
	productRepo := repository.NewProductRepository(db, redisClient)
	customerRepo := repository.NewCustomerRepository(db, redisClient)
	saleRepo := repository.NewSaleRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	productService := services.NewProductService(productRepo)
	customerService := services.NewCustomerService(customerRepo)
	saleService := services.NewSaleService(saleRepo, productRepo, customerRepo, cfg.TaxRate)
	authService := services.NewAuthService(userRepo, customerRepo, cfg)
	receiptService := services.NewReceiptService()
	exportService := services.NewExportService(productRepo, customerRepo, saleRepo)
	bulkImporter := importer.NewImporter(db, cfg.TaxRate, logger)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService, logger)
	productHandler := handlers.NewProductHandler(productService, cfg, logger)
	customerHandler := handlers.NewCustomerHandler(customerService, saleRepo, cfg, logger)
	saleHandler := handlers.NewSaleHandler(saleService, receiptService, publisher, cfg, logger)
	importHandler := handlers.NewImportHandler(bulkImporter, exportService, publisher, logger)
	exportHandler := handlers.NewExportHandler(exportService, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS())
	router.Use(middleware.TenantMiddleware())

	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggoFiles.Handler))

	v1 := router.Group("/api/v1")

	// Public routes, tenant header still required
	auth := v1.Group("/auth")
	auth.Use(middleware.RequireTenant())
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
	}

	// Storefront routes, read-only catalog access without a login
	storefront := v1.Group("/storefront")
	storefront.Use(middleware.RequireTenant())
	{
		storefront.GET("/products", productHandler.List)
		storefront.GET("/products/:id", productHandler.Get)
	}

	// Back-office routes, authenticated admins only
	admin := v1.Group("")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.RequireTenant())
	admin.Use(middleware.RequireAdmin())
	{
		products := admin.Group("/products")
		{
			products.POST("", productHandler.Create)
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
		}

		customers := admin.Group("/customers")
		{
			customers.POST("", customerHandler.Create)
			customers.GET("", customerHandler.List)
			customers.GET("/:id", customerHandler.Get)
			customers.PUT("/:id", customerHandler.Update)
			customers.DELETE("/:id", customerHandler.Delete)
			customers.GET("/:id/sales", customerHandler.Sales)
		}

		sales := admin.Group("/sales")
		{
			sales.POST("", saleHandler.Create)
			sales.GET("", saleHandler.List)
			sales.GET("/:id", saleHandler.Get)
			sales.POST("/:id/cancel", saleHandler.Cancel)
			sales.GET("/:id/receipt", saleHandler.Receipt)
		}

		imports := admin.Group("/import")
		{
			imports.POST("", importHandler.Upload)
			imports.GET("/template", importHandler.Template)
		}

		exports := admin.Group("/export")
		{
			exports.GET("/products", exportHandler.Products)
			exports.GET("/customers", exportHandler.Customers)
			exports.GET("/sales", exportHandler.Sales)
		}

		admin.GET("/dashboard", saleHandler.Dashboard)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("Starting backoffice-service")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down backoffice-service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Backoffice service stopped")
}
