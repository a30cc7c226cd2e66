package main

import (
	"github.com/gin-gonic/gin"
	"token-forge.backend/internal/config"
	"token-forge.backend/internal/interfaces/http/handlers"
	"token-forge.backend/internal/interfaces/http/middleware"
	"token-forge.backend/pkg/metrics"
)

type routeDeps struct {
	tokenHandler *handlers.TokenHandler
	metaHandler  *handlers.MetaHandler
	metrics      *metrics.Metrics
}

func newRouter(cfg *config.Config, d routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware(d.metrics))

	applyCORSMiddleware(r, cfg.CORS.AllowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r, d.metrics)
	registerAPIRoutes(r, d)
	return r
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	r.GET("/", d.metaHandler.Root)
	r.GET("/test", d.metaHandler.StoreDiagnostics)

	api := r.Group("/api")
	{
		api.GET("/hello", d.metaHandler.Hello)

		tokens := api.Group("/tokens")
		{
			tokens.POST("", middleware.IdempotencyMiddleware(), d.tokenHandler.CreateToken)
			tokens.GET("", d.tokenHandler.ListTokens)
		}
	}
}
