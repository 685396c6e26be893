package main

// Run database migrations:
//   go run ./cmd/migrate            # up
//   go run ./cmd/migrate -cmd status

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"

	"pixweight-backend/internal/shared/config"
	"pixweight-backend/internal/shared/storage/db"
	"pixweight-backend/internal/shared/telemetry"
)

func main() {
	command := flag.String("cmd", "up", "goose command: up, down, status or version")
	flag.Parse()

	defer telemetry.Sync()
	log := telemetry.Named("migrate")

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

	if err := db.Migrate(ctx, sqlDB, *command); err != nil {
		log.Error("migration failed", zap.String("cmd", *command), zap.Error(err))
		os.Exit(1)
	}
	log.Info("migration done", zap.String("cmd", *command))
}
