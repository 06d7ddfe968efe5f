// Package main implements the entry point for the SellWise server, which
// serves the copy generation forms and JSON API backed by Gemini.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// main is the entry point for the sellwise server.
// It loads configuration, sets up logging, connects the Gemini client and
// starts the HTTP server.
func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run(ctx context.Context) error {
	if err := loadDotEnv(".env"); err != nil {
		return err
	}

	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	generator, err := newTextGenerator(ctx, cfg, logger)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, logger, generator)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// loadDotEnv loads environment variables from path when the file exists.
// Variables already present in the environment are not overridden.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
