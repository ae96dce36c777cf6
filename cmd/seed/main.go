// Command seed loads the default pillars and a development user so the
// Pulse form works against an empty database. Safe to run repeatedly:
// rows that already exist are left untouched.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/tradeflow/pulse/internal/db"
	"github.com/tradeflow/pulse/internal/models"
	"github.com/tradeflow/pulse/pkg/config"
	"github.com/tradeflow/pulse/pkg/logging"
)

func defaultPillars() []*models.Pillar {
	return []*models.Pillar{
		{
			Slug:            "grain-trade",
			Name:            "Grain Trade",
			Description:     sql.NullString{String: "Offers and requests for grain lots", Valid: true},
			Template:        "Commodity, quantity range, location, readiness date",
			RequireApproval: true,
		},
		{
			Slug:            "freight-capacity",
			Name:            "Freight Capacity",
			Description:     sql.NullString{String: "Available transport capacity and route requests", Valid: true},
			Template:        "Route, capacity, readiness date",
			RequireApproval: true,
		},
		{
			Slug:            "market-pulse",
			Name:            "Market Pulse",
			Description:     sql.NullString{String: "Short, unmoderated market observations", Valid: true},
			Template:        "Free text",
			RequireApproval: false,
		},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()

	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to migrate schema", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := db.NewRepository(database.DB)
	pillarRepo := db.NewPillarRepository(repo)
	userRepo := db.NewUserRepository(repo)

	for _, pillar := range defaultPillars() {
		existing, err := pillarRepo.GetBySlug(ctx, pillar.Slug)
		if err != nil {
			logger.Fatal("Failed to check pillar", zap.String("slug", pillar.Slug), zap.Error(err))
		}
		if existing != nil {
			logger.Info("Pillar already exists", zap.String("slug", pillar.Slug))
			continue
		}
		pillar.CreatedAt = time.Now().UTC()
		if err := pillarRepo.Create(ctx, pillar); err != nil {
			logger.Fatal("Failed to create pillar", zap.String("slug", pillar.Slug), zap.Error(err))
		}
		logger.Info("Created pillar", zap.String("slug", pillar.Slug))
	}

	devEmail := "demo@tradeflow.dev"
	existing, err := userRepo.GetByEmail(ctx, devEmail)
	if err != nil {
		logger.Fatal("Failed to check dev user", zap.Error(err))
	}
	if existing == nil {
		user := &models.User{
			Email:     devEmail,
			Name:      sql.NullString{String: "Demo Trader", Valid: true},
			Role:      models.RoleMember,
			CreatedAt: time.Now().UTC(),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			logger.Fatal("Failed to create dev user", zap.Error(err))
		}
		logger.Info("Created dev user", zap.String("email", devEmail))
	} else {
		logger.Info("Dev user already exists", zap.String("email", devEmail))
	}

	logger.Info("Seeding complete")
}
