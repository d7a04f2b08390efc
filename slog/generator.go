package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagesift"
)

// Ensure LoggingGenerator implements pagesift.Generator.
var _ pagesift.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with debug logging. Prompts and
// answers are logged by size only, never by content.
type LoggingGenerator struct {
	next   pagesift.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next pagesift.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the operation.
func (g *LoggingGenerator) Generate(ctx context.Context, prompt string) (answer string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"prompt_chars", len(prompt),
			"answer_chars", len(answer),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, prompt)
}
