// main.go - star schema refresh CLI
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/karloscodes/cartridge"

	"starmart/internal/config"
	"starmart/internal/database"
	"starmart/internal/pipeline"
	"starmart/internal/source"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Refresh failed: %v", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := config.GetConfig()
	logger := cartridge.NewLogger(cfg, nil)

	src, err := source.NewClient(cfg.SourceURL, cfg.SourceServiceKey, logger)
	if err != nil {
		return err
	}

	dbManager := database.NewDBManager(cfg, logger)
	if err := dbManager.Init(); err != nil {
		return err
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			logger.Warn("Failed to close database", "error", err)
		}
	}()

	return pipeline.New(cfg, logger, dbManager, src).Run()
}
