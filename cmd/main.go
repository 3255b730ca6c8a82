package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"go.uber.org/zap"

	"stocktrack/internal/caching"
	"stocktrack/internal/config"
	"stocktrack/internal/handlers"
	"stocktrack/internal/jobs"
	"stocktrack/internal/jobs/background"
	"stocktrack/internal/middleware"
	"stocktrack/internal/repositories"
	"stocktrack/internal/services"
	"stocktrack/pkg/database"
	"stocktrack/pkg/logger"
)

const (
	accessTokenTTLSeconds  = 15 * 60
	refreshTokenTTLSeconds = 7 * 24 * 60 * 60
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = random.String(32)
		zlog.Warn("JWT_SECRET not set, using a generated secret; tokens will not survive restarts")
	}

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, zlog)

	documentSvc, err := services.NewDocumentService(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.UseSSL)
	if err != nil {
		zlog.Fatal("failed to initialize document storage", zap.Error(err))
	}
	if err := documentSvc.EnsureBucketExists(ctx); err != nil {
		zlog.Warn("could not ensure document bucket exists", zap.Error(err))
	}

	// Repositories
	tenantRepo := repositories.NewTenantRepository(pool)
	userRepo := repositories.NewUserRepository(pool)
	supplierRepo := repositories.NewSupplierRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	orderRepo := repositories.NewOrderRepository(pool)
	orderItemRepo := repositories.NewOrderItemRepository(pool)
	shipmentRepo := repositories.NewShipmentRepository(pool)
	reportRepo := repositories.NewReportRepository(pool)

	// Services
	authSvc := services.NewAuthService(cacheSvc, cfg.JWTSecret, accessTokenTTLSeconds, refreshTokenTTLSeconds, zlog)
	supplierSvc := services.NewSupplierService(supplierRepo)
	productSvc := services.NewProductService(productRepo, supplierRepo, cacheSvc, zlog)
	reorderSvc := services.NewReorderService(pool, cacheSvc, cfg.Reorder.RestockMultiplier, zlog)
	orderSvc := services.NewOrderService(orderRepo, orderItemRepo, productRepo, supplierRepo)
	shipmentSvc := services.NewShipmentService(shipmentRepo)
	reportSvc := services.NewReportService(reportRepo, cacheSvc, zlog)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, userRepo, tenantRepo)
	supplierHandlers := handlers.NewSupplierHandlers(supplierSvc)
	productHandlers := handlers.NewProductHandlers(productSvc, reorderSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	shipmentHandlers := handlers.NewShipmentHandlers(shipmentSvc, documentSvc)
	reportHandlers := handlers.NewReportHandlers(reportSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	sweeper := jobs.NewReorderSweeper(tenantRepo, reportRepo, orderRepo, reorderSvc, zlog)
	scheduler, err := background.NewJobScheduler(sweeper, authSvc, cfg.Jobs.SweepInterval(), cfg.Jobs.TokenCleanupInterval(), zlog)
	if err != nil {
		zlog.Fatal("failed to create job scheduler", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	e := echo.New()
	e.HideBanner = true

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)

	// Protected routes
	api := e.Group("/api")
	api.Use(echojwt.WithConfig(middleware.JWTConfig(cfg.JWTSecret)))

	api.POST("/auth/logout", authHandlers.Logout)
	api.GET("/me", authHandlers.Me)

	api.GET("/suppliers", supplierHandlers.ListSuppliers)
	api.POST("/suppliers", supplierHandlers.CreateSupplier)
	api.GET("/suppliers/:id", supplierHandlers.GetSupplier)
	api.PUT("/suppliers/:id", supplierHandlers.UpdateSupplier)
	api.DELETE("/suppliers/:id", supplierHandlers.DeleteSupplier)

	api.GET("/products", productHandlers.ListProducts)
	api.POST("/products", productHandlers.CreateProduct)
	api.GET("/products/:id", productHandlers.GetProduct)
	api.DELETE("/products/:id", productHandlers.DeleteProduct)
	api.POST("/products/update_quantity", productHandlers.UpdateQuantity)

	api.GET("/orders", orderHandlers.ListOrders)
	api.POST("/orders", orderHandlers.CreateOrder)
	api.GET("/orders/:id", orderHandlers.GetOrder)

	api.GET("/shipments", shipmentHandlers.ListShipments)
	api.POST("/shipments", shipmentHandlers.CreateShipment)
	api.GET("/shipments/:id", shipmentHandlers.GetShipment)
	api.POST("/shipments/:id/documents", shipmentHandlers.UploadDocument)
	api.GET("/shipments/:id/documents", shipmentHandlers.ListDocuments)

	api.GET("/low_stock", reportHandlers.LowStock)
	api.GET("/today_shipments", reportHandlers.TodayShipments)
	api.GET("/products_with_suppliers", reportHandlers.ProductsWithSuppliers)

	zlog.Info("server starting", zap.Int("port", cfg.Port), zap.String("env", cfg.Env))
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
