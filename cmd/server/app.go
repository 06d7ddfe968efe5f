package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/sellwise/internal/api"
	"github.com/phrazzld/sellwise/internal/config"
	"github.com/phrazzld/sellwise/internal/generation"
	"github.com/phrazzld/sellwise/internal/platform/gemini"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	service     *generation.Service
	copyHandler *api.CopyHandler
}

// newTextGenerator creates the Gemini-backed text generator. A missing API
// key fails here, before the server starts listening.
func newTextGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (generation.TextGenerator, error) {
	generator, err := gemini.NewGeminiGenerator(ctx, logger.With("component", "llm_generator"), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	return generator, nil
}

// newApplication wires the generation service and HTTP handlers around generator.
func newApplication(cfg *config.Config, logger *slog.Logger, generator generation.TextGenerator) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	registry, err := generation.DefaultRegistry(cfg.LLM.ModelName)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt templates: %w", err)
	}

	service, err := generation.NewService(generator, registry, logger.With("component", "generation"))
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	copyHandler, err := api.NewCopyHandler(service)
	if err != nil {
		return nil, fmt.Errorf("failed to create copy handler: %w", err)
	}

	logger.Info("Application initialized successfully",
		"model", cfg.LLM.ModelName,
		"flows", registry.Names())

	return &application{
		config:      cfg,
		logger:      logger,
		service:     service,
		copyHandler: copyHandler,
	}, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
