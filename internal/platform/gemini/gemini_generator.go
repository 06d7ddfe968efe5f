package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/sellwise/internal/config"
	"github.com/phrazzld/sellwise/internal/generation"
	"github.com/phrazzld/sellwise/internal/platform/logger"
	"google.golang.org/genai"
)

// DefaultRequestTimeout bounds a request when the configuration leaves the
// timeout unset.
const DefaultRequestTimeout = 60 * time.Second

// contentGenerator is the subset of *genai.Models used by GeminiGenerator.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Finish reasons that mean the candidate was stopped by a content filter.
var blockedFinishReasons = map[string]bool{
	"SAFETY":             true,
	"RECITATION":         true,
	"BLOCKLIST":          true,
	"PROHIBITED_CONTENT": true,
	"SPII":               true,
	"IMAGE_SAFETY":       true,
}

// GeminiGenerator implements generation.TextGenerator using Google's Gemini API.
type GeminiGenerator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// models issues GenerateContent requests
	models contentGenerator

	// timeout bounds each request
	timeout time.Duration
}

var _ generation.TextGenerator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a new instance of GeminiGenerator with the provided dependencies.
//
// Parameters:
//   - ctx: Context for client construction
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing the API key, model name and request timeout
//
// Returns:
//   - A properly initialized GeminiGenerator or an error if initialization fails.
//     Configuration errors wrap generation.ErrInvalidConfig and are returned
//     before any network activity.
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = DefaultRequestTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.GeminiAPIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	logger.InfoContext(ctx, "Gemini client initialized",
		"model", cfg.ModelName,
		"request_timeout", timeout.String())

	return newGeminiGenerator(logger, client.Models, timeout), nil
}

func newGeminiGenerator(logger *slog.Logger, models contentGenerator, timeout time.Duration) *GeminiGenerator {
	return &GeminiGenerator{
		logger:  logger,
		models:  models,
		timeout: timeout,
	}
}

// GenerateText issues a single GenerateContent request for prompt and returns
// the generated text exactly as received.
func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt generation.Prompt) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	temperature := prompt.Temperature
	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: prompt.SystemInstruction}},
		},
		Temperature: &temperature,
	}

	log := logger.FromContextOrDefault(ctx, g.logger)

	log.DebugContext(ctx, "Making Gemini API call",
		"model", prompt.Model,
		"temperature", prompt.Temperature)

	start := time.Now()
	resp, err := g.models.GenerateContent(ctx, prompt.Model, genai.Text(prompt.Task), contentConfig)
	elapsed := time.Since(start)
	if err != nil {
		classified := classifyError(err)
		log.WarnContext(ctx, "Gemini API call failed",
			"model", prompt.Model,
			"failure_kind", string(generation.KindOf(classified)),
			"duration_ms", elapsed.Milliseconds())
		return "", classified
	}

	text, err := extractText(resp)
	if err != nil {
		log.WarnContext(ctx, "Gemini API returned no usable text",
			"model", prompt.Model,
			"failure_kind", string(generation.KindOf(err)),
			"duration_ms", elapsed.Milliseconds())
		return "", err
	}

	log.DebugContext(ctx, "Gemini API call succeeded",
		"model", prompt.Model,
		"response_length", len(text),
		"duration_ms", elapsed.Milliseconds())

	return text, nil
}

// extractText returns the concatenated text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}

	if fb := resp.PromptFeedback; fb != nil {
		reason := string(fb.BlockReason)
		if reason != "" && reason != "BLOCKED_REASON_UNSPECIFIED" {
			return "", fmt.Errorf("%w: prompt blocked: %s", generation.ErrContentBlocked, reason)
		}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no candidates in response", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if reason := string(candidate.FinishReason); blockedFinishReasons[reason] {
		return "", fmt.Errorf("%w: response stopped: %s", generation.ErrContentBlocked, reason)
	}

	if candidate.Content == nil {
		return "", fmt.Errorf("%w: candidate has no content", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil {
			continue
		}
		sb.WriteString(part.Text)
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: candidate has no text", generation.ErrInvalidResponse)
	}
	return sb.String(), nil
}
