package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/stackwise/catalog-api/internal/handlers"
	"github.com/stackwise/catalog-api/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware *middleware.AuthMiddleware
	ServiceHandler *handlers.ServiceHandler
	VersionHandler *handlers.VersionHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// Services
	api.GET("/services", cfg.ServiceHandler.List)
	api.GET("/services/:serviceId", cfg.ServiceHandler.Get)
	api.POST("/services", cfg.ServiceHandler.Create)
	api.PUT("/services/:serviceId", cfg.ServiceHandler.Upsert)
	api.PATCH("/services/:serviceId", cfg.ServiceHandler.Update)
	api.DELETE("/services/:serviceId", cfg.ServiceHandler.Delete)

	// Versions
	api.GET("/services/:serviceId/versions", cfg.VersionHandler.List)
	api.GET("/services/:serviceId/versions/:id", cfg.VersionHandler.Get)
	api.POST("/services/:serviceId/versions", cfg.VersionHandler.Create)
	api.PUT("/services/:serviceId/versions/:id", cfg.VersionHandler.Upsert)
	api.PATCH("/services/:serviceId/versions/:id", cfg.VersionHandler.Update)
	api.DELETE("/services/:serviceId/versions/:id", cfg.VersionHandler.Delete)

	return router
}
