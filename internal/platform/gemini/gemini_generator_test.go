package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/phrazzld/sellwise/internal/config"
	"github.com/phrazzld/sellwise/internal/generation"
	"github.com/phrazzld/sellwise/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// stubModels records GenerateContent calls and returns a canned response.
type stubModels struct {
	resp     *genai.GenerateContentResponse
	err      error
	calls    int
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	deadline bool
}

func (s *stubModels) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	s.calls++
	s.model = model
	s.contents = contents
	s.config = config
	_, s.deadline = ctx.Deadline()
	return s.resp, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: "model"}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content, FinishReason: "STOP"}},
	}
}

func testPrompt() generation.Prompt {
	return generation.Prompt{
		Model:             "gemini-2.5-flash",
		SystemInstruction: "You are a copywriter.\n- Tone: Professional\n",
		Task:              "Generate the full product copy suite for the product: Lamp.",
		Temperature:       0.7,
	}
}

func TestNewGeminiGenerator_ConfigValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		logger  *slog.Logger
		cfg     config.LLMConfig
		wantErr string
		invalid bool
	}{
		{
			name:    "nil logger",
			cfg:     config.LLMConfig{GeminiAPIKey: "k", ModelName: "m"},
			wantErr: "logger cannot be nil",
		},
		{
			name:    "empty api key",
			logger:  discardLogger(),
			cfg:     config.LLMConfig{ModelName: "m"},
			wantErr: "gemini API key cannot be empty",
			invalid: true,
		},
		{
			name:    "empty model",
			logger:  discardLogger(),
			cfg:     config.LLMConfig{GeminiAPIKey: "k"},
			wantErr: "model name cannot be empty",
			invalid: true,
		},
		{
			name:    "negative timeout",
			logger:  discardLogger(),
			cfg:     config.LLMConfig{GeminiAPIKey: "k", ModelName: "m", RequestTimeout: -time.Second},
			wantErr: "request timeout cannot be negative",
			invalid: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gen, err := NewGeminiGenerator(context.Background(), tc.logger, tc.cfg)
			require.Error(t, err)
			assert.Nil(t, gen)
			assert.Contains(t, err.Error(), tc.wantErr)
			assert.Equal(t, tc.invalid, errors.Is(err, generation.ErrInvalidConfig))
		})
	}
}

func TestNewGeminiGenerator_Success(t *testing.T) {
	t.Parallel()

	// Client construction is local; no request is made until GenerateText.
	gen, err := NewGeminiGenerator(context.Background(), discardLogger(), config.LLMConfig{
		GeminiAPIKey: "test-key",
		ModelName:    "gemini-2.5-flash",
	})
	require.NoError(t, err)
	require.NotNil(t, gen)
	assert.Equal(t, DefaultRequestTimeout, gen.timeout)
}

func TestGenerateText_SendsPromptAndReturnsTextUnmodified(t *testing.T) {
	t.Parallel()

	stub := &stubModels{resp: textResponse("  # Headline\n", "```md\nbody\n```\n")}
	gen := newGeminiGenerator(discardLogger(), stub, time.Minute)

	text, err := gen.GenerateText(context.Background(), testPrompt())
	require.NoError(t, err)
	assert.Equal(t, "  # Headline\n```md\nbody\n```\n", text)

	require.Equal(t, 1, stub.calls)
	assert.Equal(t, "gemini-2.5-flash", stub.model)
	assert.True(t, stub.deadline, "request should carry a deadline")

	require.Len(t, stub.contents, 1)
	require.Len(t, stub.contents[0].Parts, 1)
	assert.Equal(t, testPrompt().Task, stub.contents[0].Parts[0].Text)

	require.NotNil(t, stub.config)
	require.NotNil(t, stub.config.Temperature)
	assert.Equal(t, float32(0.7), *stub.config.Temperature)
	require.NotNil(t, stub.config.SystemInstruction)
	require.Len(t, stub.config.SystemInstruction.Parts, 1)
	assert.Equal(t, testPrompt().SystemInstruction, stub.config.SystemInstruction.Parts[0].Text)
}

func TestGenerateText_NoTimeoutLeavesContextAlone(t *testing.T) {
	t.Parallel()

	stub := &stubModels{resp: textResponse("ok")}
	gen := newGeminiGenerator(discardLogger(), stub, 0)

	_, err := gen.GenerateText(context.Background(), testPrompt())
	require.NoError(t, err)
	assert.False(t, stub.deadline)
}

func TestGenerateText_APIErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantKind generation.FailureKind
		wantMsg  string
	}{
		{
			name:     "invalid key",
			err:      genai.APIError{Code: 400, Message: "API key not valid. Please pass a valid API key.", Status: "INVALID_ARGUMENT"},
			wantKind: generation.FailureInvalidRequest,
			wantMsg:  "API key not valid. Please pass a valid API key.",
		},
		{
			name:     "permission denied",
			err:      genai.APIError{Code: 403, Message: "Permission denied", Status: "PERMISSION_DENIED"},
			wantKind: generation.FailureAuth,
			wantMsg:  "Permission denied",
		},
		{
			name:     "quota",
			err:      genai.APIError{Code: 429, Message: "Resource has been exhausted", Status: "RESOURCE_EXHAUSTED"},
			wantKind: generation.FailureQuota,
			wantMsg:  "Resource has been exhausted",
		},
		{
			name:     "server error as pointer",
			err:      &genai.APIError{Code: 503, Message: "The model is overloaded", Status: "UNAVAILABLE"},
			wantKind: generation.FailureTransient,
			wantMsg:  "The model is overloaded",
		},
		{
			name:     "wrapped api error",
			err:      fmt.Errorf("request failed: %w", genai.APIError{Code: 404, Message: "models/nope is not found"}),
			wantKind: generation.FailureInvalidRequest,
			wantMsg:  "models/nope is not found",
		},
		{
			name:     "deadline",
			err:      context.DeadlineExceeded,
			wantKind: generation.FailureTransient,
			wantMsg:  "context deadline exceeded",
		},
		{
			name:     "unclassified",
			err:      errors.New("unexpected EOF"),
			wantKind: generation.FailureUnknown,
			wantMsg:  "unexpected EOF",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			stub := &stubModels{err: tc.err}
			gen := newGeminiGenerator(discardLogger(), stub, time.Minute)

			text, err := gen.GenerateText(context.Background(), testPrompt())
			require.Error(t, err)
			assert.Empty(t, text)
			assert.Equal(t, 1, stub.calls, "no retry")
			assert.Equal(t, tc.wantKind, generation.KindOf(err))
			assert.Equal(t, tc.wantMsg, err.Error())

			var serviceErr *generation.ServiceError
			assert.True(t, errors.As(err, &serviceErr) || tc.wantKind == generation.FailureUnknown)
		})
	}
}

func TestGenerateText_ResponseProblems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		resp     *genai.GenerateContentResponse
		wantErr  error
		contains string
	}{
		{
			name:    "nil response",
			resp:    nil,
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name: "prompt blocked",
			resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: "SAFETY"},
			},
			wantErr:  generation.ErrContentBlocked,
			contains: "prompt blocked: SAFETY",
		},
		{
			name: "unspecified block reason is ignored",
			resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: "BLOCKED_REASON_UNSPECIFIED"},
			},
			wantErr:  generation.ErrInvalidResponse,
			contains: "no candidates",
		},
		{
			name: "safety stop",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: "SAFETY"}},
			},
			wantErr:  generation.ErrContentBlocked,
			contains: "response stopped: SAFETY",
		},
		{
			name: "no content",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: "STOP"}},
			},
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name:     "empty text",
			resp:     textResponse(""),
			wantErr:  generation.ErrInvalidResponse,
			contains: "no text",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gen := newGeminiGenerator(discardLogger(), &stubModels{resp: tc.resp}, time.Minute)

			text, err := gen.GenerateText(context.Background(), testPrompt())
			require.Error(t, err)
			assert.Empty(t, text)
			assert.ErrorIs(t, err, tc.wantErr)
			if tc.contains != "" {
				assert.Contains(t, err.Error(), tc.contains)
			}
		})
	}
}

func TestKindForStatus(t *testing.T) {
	t.Parallel()

	cases := map[int]generation.FailureKind{
		400: generation.FailureInvalidRequest,
		401: generation.FailureAuth,
		403: generation.FailureAuth,
		404: generation.FailureInvalidRequest,
		408: generation.FailureTransient,
		429: generation.FailureQuota,
		500: generation.FailureTransient,
		504: generation.FailureTransient,
		418: generation.FailureUnknown,
	}
	for code, want := range cases {
		assert.Equal(t, want, kindForStatus(code), code)
	}
}

func TestGenerateText_LogsThroughContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	scoped := slog.New(slog.NewJSONHandler(&buf, nil)).With("trace_id", "trace-0042")
	ctx := logger.WithLogger(context.Background(), scoped)

	stub := &stubModels{err: genai.APIError{Code: 429, Message: "Resource has been exhausted"}}
	gen := newGeminiGenerator(discardLogger(), stub, time.Second)

	_, err := gen.GenerateText(ctx, testPrompt())
	require.Error(t, err)

	assert.Contains(t, buf.String(), `"msg":"Gemini API call failed"`)
	assert.Contains(t, buf.String(), `"trace_id":"trace-0042"`)
	assert.Contains(t, buf.String(), `"failure_kind":"quota"`)
}
