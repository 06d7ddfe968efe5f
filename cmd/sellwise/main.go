// Package main implements the sellwise command line client, which runs one
// copy generation flow and prints the resulting markdown.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/phrazzld/sellwise/internal/api"
	"github.com/phrazzld/sellwise/internal/config"
	"github.com/phrazzld/sellwise/internal/generation"
	"github.com/phrazzld/sellwise/internal/platform/gemini"
	"github.com/phrazzld/sellwise/internal/platform/logger"
)

func main() {
	// A missing .env is fine; the environment may already carry the key.
	_ = godotenv.Load()

	app := newApp(newGeminiService, os.Stdout, os.Stderr)
	if err := app.RunContext(context.Background(), os.Args); err != nil {
		os.Exit(exitCode(err, os.Stderr))
	}
}

// exitCode prints err, when it has a message, and returns the exit status.
func exitCode(err error, stderr io.Writer) int {
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(stderr, msg)
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitStatus()
	}
	return 1
}

// newGeminiService loads configuration and builds a generation service backed
// by Gemini. Logs go to stderr so stdout carries only the generated copy.
func newGeminiService(ctx context.Context) (api.CopyGenerator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.SetupWithWriter(os.Stderr, logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	generator, err := gemini.NewGeminiGenerator(ctx, log.With("component", "llm_generator"), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}

	registry, err := generation.DefaultRegistry(cfg.LLM.ModelName)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt templates: %w", err)
	}

	return generation.NewService(generator, registry, log.With("component", "generation"))
}
