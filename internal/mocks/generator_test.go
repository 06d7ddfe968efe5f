package mocks_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/phrazzld/sellwise/internal/generation"
	"github.com/phrazzld/sellwise/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockTextGenerator(t *testing.T) {
	t.Parallel()

	t.Run("Default success case", func(t *testing.T) {
		t.Parallel()

		mockGen := mocks.NewMockTextGeneratorWithText("# Headline")
		prompt := generation.Prompt{Model: "m", SystemInstruction: "sys", Task: "task", Temperature: 0.7}

		text, err := mockGen.GenerateText(context.Background(), prompt)

		require.NoError(t, err)
		assert.Equal(t, "# Headline", text)
		assert.Equal(t, 1, mockGen.Calls())
		last, ok := mockGen.LastPrompt()
		require.True(t, ok)
		assert.Equal(t, prompt, last)
	})

	t.Run("Error case", func(t *testing.T) {
		t.Parallel()

		mockGen := mocks.NewMockTextGeneratorWithError(errors.New("boom"))
		text, err := mockGen.GenerateText(context.Background(), generation.Prompt{})

		assert.EqualError(t, err, "boom")
		assert.Empty(t, text)
		assert.Equal(t, 1, mockGen.Calls())
	})

	t.Run("Custom function", func(t *testing.T) {
		t.Parallel()

		mockGen := &mocks.MockTextGenerator{
			GenerateTextFn: func(ctx context.Context, prompt generation.Prompt) (string, error) {
				return prompt.Task, nil
			},
		}
		text, err := mockGen.GenerateText(context.Background(), generation.Prompt{Task: "echo"})

		require.NoError(t, err)
		assert.Equal(t, "echo", text)
	})

	t.Run("Quota failure is classified", func(t *testing.T) {
		t.Parallel()

		_, err := mocks.MockTextGeneratorWithQuotaFailure().GenerateText(context.Background(), generation.Prompt{})
		assert.Equal(t, generation.FailureQuota, generation.KindOf(err))
	})

	t.Run("Concurrent calls are all recorded", func(t *testing.T) {
		t.Parallel()

		mockGen := mocks.NewMockTextGeneratorWithText("ok")
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = mockGen.GenerateText(context.Background(), generation.Prompt{})
			}()
		}
		wg.Wait()

		assert.Equal(t, 20, mockGen.Calls())
		mockGen.Reset()
		assert.Equal(t, 0, mockGen.Calls())
		_, ok := mockGen.LastPrompt()
		assert.False(t, ok)
	})
}
