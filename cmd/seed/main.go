package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/momentumafrica/momentum-api/internal/config"
	"github.com/momentumafrica/momentum-api/internal/database"
	"github.com/momentumafrica/momentum-api/internal/logger"
	"github.com/momentumafrica/momentum-api/internal/services"
)

// Seeds the content tables from the embedded fixtures. Safe to run
// repeatedly; tables that already hold rows are left alone.
func main() {
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	if envFilename != "" {
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.AppMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		zlog.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		zlog.Fatal("Failed to run migrations", "error", err)
	}

	if err := services.Seed(zlog, db); err != nil {
		zlog.Fatal("Failed to seed content", "error", err)
	}

	zlog.Info("Seed complete")
}
