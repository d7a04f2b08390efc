package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagesift"
	"github.com/fwojciec/pagesift/mock"
	pagesiftslog "github.com/fwojciec/pagesift/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("logs prompt and answer sizes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string) (string, error) {
				return "42 items", nil
			},
		}

		gen := pagesiftslog.NewLoggingGenerator(inner, logger)
		answer, err := gen.Generate(context.Background(), "what is new")

		require.NoError(t, err)
		assert.Equal(t, "42 items", answer)
		output := buf.String()
		assert.Contains(t, output, "generate")
		assert.Contains(t, output, "prompt_chars=11")
		assert.Contains(t, output, "answer_chars=8")
		assert.Contains(t, output, "duration=")
	})

	t.Run("does not log prompt content", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string) (string, error) {
				return "answer", nil
			},
		}

		gen := pagesiftslog.NewLoggingGenerator(inner, logger)
		_, err := gen.Generate(context.Background(), "confidential page text")

		require.NoError(t, err)
		assert.NotContains(t, buf.String(), "confidential")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string) (string, error) {
				return "", pagesift.Errorf(pagesift.EAISERVICE, "model unavailable")
			},
		}

		gen := pagesiftslog.NewLoggingGenerator(inner, logger)
		_, err := gen.Generate(context.Background(), "anything")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "generate")
		assert.Contains(t, output, "err=\"model unavailable\"")
	})
}
