// Package gemini implements text generation using Google Gemini.
package gemini

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/pagesift"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Generator implements pagesift.Generator at compile time.
var _ pagesift.Generator = (*Generator)(nil)

// Generator implements pagesift.Generator using Google Gemini.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a Generator. An empty model selects DefaultModel.
func NewGenerator(client *genai.Client, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}
}

// Generate sends the prompt to Gemini and returns the answer text.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", generateError(err)
	}
	if result == nil {
		return "", pagesift.Errorf(pagesift.EAISERVICE, "gemini returned nil result")
	}
	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls. The
// temperature is kept low so extraction answers stay close to the page text.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a precise content extraction engine. Follow the instructions in the user message exactly.",
			}},
		},
		Temperature:     &temp,
		MaxOutputTokens: 2048,
	}
}

// generateError maps SDK failures onto coded errors.
func generateError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return pagesift.Errorf(pagesift.ETIMEOUT, "ai request timed out")
	}
	msg := err.Error()
	if strings.Contains(msg, "UNAUTHENTICATED") ||
		strings.Contains(msg, "PERMISSION_DENIED") ||
		strings.Contains(msg, "API key not valid") {
		return pagesift.Errorf(pagesift.EUNAUTHORIZED, "gemini rejected the API key")
	}
	return pagesift.Errorf(pagesift.EAISERVICE, "gemini request failed: %v", err)
}
