package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/sellwise/internal/generation"
)

// MockTextGenerator implements generation.TextGenerator for testing
type MockTextGenerator struct {
	// GenerateTextFn allows test cases to mock the GenerateText behavior
	GenerateTextFn func(ctx context.Context, prompt generation.Prompt) (string, error)

	// Default response values
	Text string
	Err  error

	// mu protects the call tracking state for concurrent test cases
	mu      sync.Mutex
	prompts []generation.Prompt
}

// GenerateText implements the generation.TextGenerator interface
func (m *MockTextGenerator) GenerateText(ctx context.Context, prompt generation.Prompt) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateTextFn != nil {
		return m.GenerateTextFn(ctx, prompt)
	}
	return m.Text, m.Err
}

// Calls returns how many times GenerateText was called
func (m *MockTextGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Prompts returns a copy of every prompt passed to GenerateText, in call order
func (m *MockTextGenerator) Prompts() []generation.Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generation.Prompt(nil), m.prompts...)
}

// LastPrompt returns the most recent prompt and whether there was one
func (m *MockTextGenerator) LastPrompt() (generation.Prompt, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return generation.Prompt{}, false
	}
	return m.prompts[len(m.prompts)-1], true
}

// Reset resets the call tracking state
func (m *MockTextGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = nil
}

// NewMockTextGeneratorWithText creates a MockTextGenerator that returns text
func NewMockTextGeneratorWithText(text string) *MockTextGenerator {
	return &MockTextGenerator{Text: text}
}

// NewMockTextGeneratorWithError creates a MockTextGenerator that returns err
func NewMockTextGeneratorWithError(err error) *MockTextGenerator {
	return &MockTextGenerator{Err: err}
}

// MockTextGeneratorWithQuotaFailure creates a MockTextGenerator that simulates quota exhaustion
func MockTextGeneratorWithQuotaFailure() *MockTextGenerator {
	return &MockTextGenerator{
		Err: generation.NewServiceError(generation.FailureQuota, errQuota),
	}
}

// MockTextGeneratorWithContentBlocked creates a MockTextGenerator that simulates content being blocked
func MockTextGeneratorWithContentBlocked() *MockTextGenerator {
	return &MockTextGenerator{
		Err: generation.ErrContentBlocked,
	}
}
