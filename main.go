package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"purchase-service/common/logger"
	"purchase-service/controllers"
	"purchase-service/database"
	"purchase-service/repository"
	"purchase-service/routes"
	"purchase-service/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	env := os.Getenv("ENV")
	logger.Initialize(env)
	defer zap.L().Sync()

	cfg, err := LoadConfig()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	// --- 1. Initialization ---

	if err := database.ConnectWithConfig(cfg.MongoURL, cfg.MongoDB); err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := database.Close(); err != nil {
			zap.L().Error("Failed to close MongoDB connection", zap.Error(err))
		}
	}()

	analyticsRedis := database.NewRedisClient(cfg.RedisURL)

	// --- 2. Dependency Injection (Wiring the layers together) ---

	catalogRepo := repository.NewCatalogRepository(database.DB)
	purchaseRepo := repository.NewPurchaseRepository(database.DB)

	if err := catalogRepo.EnsureIndexes(context.Background()); err != nil {
		zap.L().Fatal("Failed to ensure catalog indexes", zap.Error(err))
	}
	if err := purchaseRepo.EnsureIndexes(context.Background()); err != nil {
		zap.L().Warn("Failed to ensure purchase indexes", zap.Error(err))
	}

	catalogService := services.NewCatalogService(catalogRepo, zap.L())
	purchaseService := services.NewPurchaseService(purchaseRepo, catalogService, zap.L())
	analyticsService := services.NewAnalyticsService(purchaseRepo, zap.L())

	cache := controllers.NewAnalyticsCache(analyticsRedis)
	productController := controllers.NewProductController(catalogService)
	purchaseController := controllers.NewPurchaseController(purchaseService, cache)
	analyticsController := controllers.NewAnalyticsController(analyticsService, cache)

	// --- 3. HTTP Server & Middleware ---

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())

	// --- 4. Route Registration ---

	routes.RegisterProductRoutes(r, productController)
	routes.RegisterPurchaseRoutes(r, purchaseController)
	routes.RegisterAnalyticsRoutes(r, analyticsController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// --- 5. Graceful Shutdown ---

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Purchase Service starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exited")
}
