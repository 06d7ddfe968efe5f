package gemini

import (
	"fmt"

	"github.com/phrazzld/sellwise/internal/config"
	"github.com/phrazzld/sellwise/internal/generation"
)

// validateConfig checks the settings the client cannot work without. It runs
// before any client is constructed, so a missing key never reaches the
// network.
func validateConfig(cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.RequestTimeout < 0 {
		return fmt.Errorf("%w: request timeout cannot be negative", generation.ErrInvalidConfig)
	}
	return nil
}
