package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/enrollplus-admin/api/swagger"
	"github.com/noah-isme/enrollplus-admin/internal/app"
	"github.com/noah-isme/enrollplus-admin/internal/handler"
	internalmiddleware "github.com/noah-isme/enrollplus-admin/internal/middleware"
	"github.com/noah-isme/enrollplus-admin/pkg/config"
	"github.com/noah-isme/enrollplus-admin/pkg/logger"
	corsmiddleware "github.com/noah-isme/enrollplus-admin/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/enrollplus-admin/pkg/middleware/requestid"
)

// @title EnrollPlus Admin API
// @version 1.0.0
// @description Admin panel list engine for users, courses, products and transactions
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	panel, err := app.New(cfg, logr)
	if err != nil {
		logr.Fatal("failed to assemble admin panel", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(panel.Metrics))

	metricsHandler := handler.NewMetricsHandler(panel.Metrics, panel.Sessions)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", metricsHandler.Prometheus)
		r.GET("/metrics/summary", metricsHandler.Summary)
	}

	if !cfg.IsProduction() {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r.Group(cfg.APIPrefix), panel)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "route not found"}})
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "api_prefix", cfg.APIPrefix)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
