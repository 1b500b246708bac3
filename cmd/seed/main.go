// Command seed loads a minimal development dataset: an approved admin,
// a staff member awaiting approval, and one project per program.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"protrack/internal/auth"
	"protrack/internal/config"
	"protrack/internal/domain/models"
	"protrack/internal/repository/postgres"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.Environment == "prod" {
		log.Fatal("refusing to seed a prod environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)

	adminHash, err := auth.HashPassword("admin1234")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &models.User{
		ID:           uuid.NewString(),
		Email:        "admin@example.com",
		PasswordHash: adminHash,
		FullName:     "Site Administrator",
		Role:         models.RoleAdmin,
		IsApproved:   true,
		CreatedAt:    time.Now(),
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	staffHash, err := auth.HashPassword("staff1234")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	staff := &models.User{
		ID:           uuid.NewString(),
		Email:        "staff@example.com",
		PasswordHash: staffHash,
		FullName:     "Field Staff",
		Role:         models.RoleStaff,
		IsApproved:   false,
		CreatedAt:    time.Now(),
	}
	if err := userRepo.Create(ctx, staff); err != nil {
		log.Fatalf("Failed to seed staff: %v", err)
	}

	now := time.Now()
	status := models.StatusOngoing
	firm := "Sample Food Processing Co."
	projects := []*models.Project{
		{
			ID:                uuid.NewString(),
			Kind:              models.KindSetup,
			Code:              "001",
			Title:             "Upgrading of Food Processing Line",
			Firm:              &firm,
			Categories:        []string{"Food Processing"},
			Status:            &status,
			StaffAssignedID:   &admin.ID,
			StaffAssignedName: &admin.FullName,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		{
			ID:         uuid.NewString(),
			Kind:       models.KindCest,
			Code:       "1",
			Title:      "Community Water System Assistance",
			Categories: []string{"Potable Water Supply"},
			Status:     &status,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}
	for _, p := range projects {
		if err := projectRepo.Create(ctx, p); err != nil {
			log.Fatalf("Failed to seed project %q: %v", p.Title, err)
		}
	}

	log.Printf("Seeded %d users and %d projects (prefix %q)", 2, len(projects), cfg.TablePrefix)
}
