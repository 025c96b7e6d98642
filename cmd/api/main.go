package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/barberdesk/barbershop-api/internal/config"
	dbpkg "github.com/barberdesk/barbershop-api/internal/db"
	"github.com/barberdesk/barbershop-api/internal/logger"
	"github.com/barberdesk/barbershop-api/internal/middleware"
	"github.com/barberdesk/barbershop-api/internal/routes"
)

func main() {

	cfg := config.Load()

	zapLog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zapLog.Sync()

	db := dbpkg.NewDB(cfg, zapLog)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(zapLog))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.PrometheusMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.RegisterRoutes(r, db, cfg, zapLog)

	zapLog.Info("server listening", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		zapLog.Fatal("failed to start server", zap.Error(err))
	}
}
