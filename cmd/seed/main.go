package main

// One-shot provisioning of initial accounts:
//   SEED_PASSWORD=... go run ./cmd/seed

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/mtb0903/manage-docs/internal/shared/config"
	"github.com/mtb0903/manage-docs/internal/shared/storage/db"
	"github.com/mtb0903/manage-docs/internal/users"
)

var seedUsernames = []string{"admin", "user1", "user2"}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "password"
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}

	svc := users.NewService(&users.PGRepo{DB: sqlDB})
	for _, username := range seedUsernames {
		user, err := svc.Register(ctx, username, password)
		if err != nil {
			if errors.Is(err, users.ErrDuplicateUsername) {
				log.Printf("seed: %s already exists, skipping", username)
				continue
			}
			log.Printf("seed: failed to create %s: %v", username, err)
			os.Exit(1)
		}
		log.Printf("seed: created %s (id %d)", user.Username, user.ID)
	}
}
