package main

import (
	"context"
	"log"
	"time"

	"github.com/subflow/subflow/internal/config"
	"github.com/subflow/subflow/internal/logger"
	"github.com/subflow/subflow/internal/postgres"
	"github.com/subflow/subflow/internal/validator"
)

func init() {
	time.Local = time.UTC
}

// Applies the database schema. Idempotent; safe to run on every deploy.
func main() {
	validator.NewValidator()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := postgres.NewDB(cfg, l)
	if err != nil {
		l.Fatalf("Failed to connect to postgres: %v", err)
	}

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		l.Fatalf("Migration failed: %v", err)
	}

	l.Info("Migrations applied")
}
