package main

import (
	"fmt"
	"os"

	"github.com/stackwise/catalog-api/internal/db"
	"github.com/stackwise/catalog-api/internal/handlers"
	"github.com/stackwise/catalog-api/internal/logger"
	"github.com/stackwise/catalog-api/internal/middleware"
	"github.com/stackwise/catalog-api/internal/repos"
	"github.com/stackwise/catalog-api/internal/server"
	"github.com/stackwise/catalog-api/internal/services"
	"github.com/stackwise/catalog-api/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	port := utils.GetEnv("PORT", "8080", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	serviceRepo := repos.NewServiceRepo(thePG, log)
	versionRepo := repos.NewVersionRepo(thePG, log)

	// Services
	log.Info("Setting up services from main...")
	authService := services.NewAuthService(log, jwtSecretKey)
	serviceService := services.NewServiceService(thePG, log, serviceRepo)
	versionService := services.NewVersionService(thePG, log, serviceRepo, versionRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	serviceHandler := handlers.NewServiceHandler(serviceService)
	versionHandler := handlers.NewVersionHandler(versionService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware: authMiddleware,
		ServiceHandler: serviceHandler,
		VersionHandler: versionHandler,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
