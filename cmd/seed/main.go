// Seeds the demo tenant with 10 services and 100 versions, wiping whatever
// the tenant held before, and prints a bearer token for poking the API.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/stackwise/catalog-api/internal/db"
	"github.com/stackwise/catalog-api/internal/logger"
	"github.com/stackwise/catalog-api/internal/repos"
	"github.com/stackwise/catalog-api/internal/services"
	"github.com/stackwise/catalog-api/internal/types"
	"github.com/stackwise/catalog-api/internal/utils"
)

const seedTenantID = "demo_tenant"

func main() {
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	ctx := context.Background()

	if err := thePG.WithContext(ctx).Where("tenant_id = ?", seedTenantID).Delete(&types.Version{}).Error; err != nil {
		log.Fatal("Failed to clear versions", "error", err)
	}
	if err := thePG.WithContext(ctx).Where("tenant_id = ?", seedTenantID).Delete(&types.Service{}).Error; err != nil {
		log.Fatal("Failed to clear services", "error", err)
	}

	serviceRepo := repos.NewServiceRepo(thePG, log)
	versionRepo := repos.NewVersionRepo(thePG, log)

	seeded := make([]*types.Service, 0, 10)
	for i := 1; i <= 10; i++ {
		description := fmt.Sprintf("Description for Service %d", i)
		service, err := serviceRepo.CreateOrReplace(ctx, nil, &types.Service{
			TenantID:    seedTenantID,
			Name:        fmt.Sprintf("Service %d", i),
			Description: &description,
		})
		if err != nil {
			log.Fatal("Failed to seed service", "error", err)
		}
		seeded = append(seeded, service)
	}

	for i := 1; i <= 100; i++ {
		parent := seeded[(i-1)%len(seeded)]
		description := fmt.Sprintf("Description for Version %d", i)
		if _, err := versionRepo.CreateOrReplace(ctx, nil, &types.Version{
			TenantID:    seedTenantID,
			ServiceID:   parent.ID,
			Name:        fmt.Sprintf("Version %d", i),
			Description: &description,
		}); err != nil {
			log.Fatal("Failed to seed version", "error", err)
		}
	}

	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	authService := services.NewAuthService(log, jwtSecretKey)
	token, err := authService.SignToken("seed_user", seedTenantID, "admin", 24*time.Hour)
	if err != nil {
		log.Fatal("Failed to sign dev token", "error", err)
	}

	log.Info("Seeding successful", "services", len(seeded), "versions", 100)
	fmt.Printf("Bearer %s\n", token)
}
