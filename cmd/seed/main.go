package main

// Load reference data (foods, carriers, breeds, BMI bands):
//   go run ./cmd/seed

import (
	"context"
	"os"

	"go.uber.org/zap"

	"pixweight-backend/internal/reference"
	"pixweight-backend/internal/shared/config"
	"pixweight-backend/internal/shared/storage/db"
	"pixweight-backend/internal/shared/telemetry"
)

func main() {
	defer telemetry.Sync()
	log := telemetry.Named("seed")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}
	ctx := context.Background()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultCLIOptions()))
	if err != nil {
		log.Error("failed to connect database", zap.Error(err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Error("failed to run migrations", zap.Error(err))
		os.Exit(1)
	}

	data := reference.Seed()
	if err := (&reference.PGStore{DB: sqlDB}).Upsert(ctx, data); err != nil {
		log.Error("seed failed", zap.Error(err))
		os.Exit(1)
	}
	log.Info("reference data loaded",
		zap.Int("foods", len(data.Foods)),
		zap.Int("carriers", len(data.Carriers)),
		zap.Int("breeds", len(data.Breeds)),
		zap.Int("bmi_categories", len(data.BMICategories)),
	)
}
