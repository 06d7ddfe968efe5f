package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/sellwise/internal/platform/logger"
	"github.com/phrazzld/sellwise/internal/redact"
)

// TextGenerator defines the boundary between the generation module and the
// external text-generation service.
type TextGenerator interface {
	// GenerateText issues exactly one request for prompt and returns the
	// generated text unmodified. Implementations should return a *ServiceError
	// when they can classify the failure.
	GenerateText(ctx context.Context, prompt Prompt) (string, error)
}

// Service binds flow templates and issues one generation request per call.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	generator TextGenerator
	templates *Registry
	logger    *slog.Logger
	newID     func() uuid.UUID
}

// NewService creates a Service over generator using the templates in registry.
func NewService(generator TextGenerator, registry *Registry, logger *slog.Logger) (*Service, error) {
	if generator == nil {
		return nil, errors.New("text generator cannot be nil")
	}
	if registry == nil {
		return nil, errors.New("template registry cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Service{
		generator: generator,
		templates: registry,
		logger:    logger,
		newID:     uuid.New,
	}, nil
}

// Generate binds values into the named flow's template and issues a single
// request. Failures, including binding failures, are reported in the Result;
// a binding failure never reaches the network.
func (s *Service) Generate(ctx context.Context, flow string, values map[string]string) Result {
	result := Result{Flow: flow, RequestID: s.newID()}
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("flow", flow),
		slog.String("request_id", result.RequestID.String()),
	)

	tmpl, err := s.templates.Get(flow)
	if err != nil {
		return s.fail(ctx, log, result, err)
	}
	result.Model = tmpl.Model()

	prompt, err := tmpl.Bind(values)
	if err != nil {
		return s.fail(ctx, log, result, err)
	}

	log.DebugContext(ctx, "Prompt bound",
		"model", prompt.Model,
		"temperature", prompt.Temperature,
		"system_instruction_length", len(prompt.SystemInstruction),
		"task_length", len(prompt.Task))

	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return s.fail(ctx, log, result, err)
	}
	if text == "" {
		return s.fail(ctx, log, result, fmt.Errorf("%w: empty text", ErrInvalidResponse))
	}

	result.Text = text
	log.InfoContext(ctx, "Generation succeeded",
		"model", result.Model,
		"response_length", len(text))
	return result
}

func (s *Service) fail(ctx context.Context, log *slog.Logger, result Result, err error) Result {
	result.Failure = NewFailure(err)
	log.ErrorContext(ctx, "Generation failed",
		"model", result.Model,
		"failure_kind", string(result.Failure.Kind),
		"error", redact.Error(err))
	return result
}

// GenerateProductCopy runs the product page copy flow.
func (s *Service) GenerateProductCopy(ctx context.Context, req ProductCopyRequest) Result {
	return s.Generate(ctx, FlowProductCopy, req.Values())
}

// GenerateSocialCopy runs the social ad copy flow.
func (s *Service) GenerateSocialCopy(ctx context.Context, req SocialCopyRequest) Result {
	return s.Generate(ctx, FlowSocialCopy, req.Values())
}

// GenerateEmailSubjects runs the email subject line flow.
func (s *Service) GenerateEmailSubjects(ctx context.Context, req EmailSubjectsRequest) Result {
	return s.Generate(ctx, FlowEmailSubjects, req.Values())
}
