package app

import (
	"os"
	"time"

	"go-taxdesk/internal/config"
	"go-taxdesk/internal/middleware"
	"go-taxdesk/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine, cfg config.Config) error {
	logger := zap.L().Named("app")

	if cfg.JWTSecret == "" && cfg.IsProduction() {
		return errMissingJWTSecret
	}

	// 1. Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, cfg.DBMaxRetries)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	if cfg.MigrationsDir != "" {
		if err := connection.RunMigrations(sqlDB, cfg.MigrationsDir); err != nil {
			return err
		}
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DBMaxRetries)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	// 2. Global middleware
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if err := os.MkdirAll(cfg.PayslipStorageDir, 0o755); err != nil {
		return err
	}
	router.Static(cfg.PayslipPublicBaseURL, cfg.PayslipStorageDir)

	// 3. Modules & routes
	return registerModules(router, sqlDB, gormDB, redisClient, cfg)
}
