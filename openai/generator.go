// Package openai implements text generation against OpenAI-compatible chat
// completion APIs. OpenRouter keys are recognized by their prefix and routed
// to the OpenRouter endpoint with a matching default model.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/pagesift"
)

const (
	// DefaultBaseURL is the OpenAI API endpoint.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is used against the OpenAI endpoint.
	DefaultModel = "gpt-4o-mini"

	// OpenRouterBaseURL is the OpenRouter API endpoint.
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// OpenRouterModel is used against the OpenRouter endpoint.
	OpenRouterModel = "openai/gpt-4o-mini"

	// DefaultTimeout bounds a single chat completion request.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxTokens caps the length of the model's answer.
	DefaultMaxTokens = 2048

	openRouterKeyPrefix = "sk-or-v1-"
)

const systemPrompt = "You are a precise content extraction engine. Follow the instructions in the user message exactly."

// Ensure Generator implements pagesift.Generator at compile time.
var _ pagesift.Generator = (*Generator)(nil)

// Generator implements pagesift.Generator using an OpenAI-compatible chat
// completions API.
type Generator struct {
	client    *http.Client
	apiKey    string
	baseURL   string
	model     string
	maxTokens int
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel overrides the model chosen from the API key.
func WithModel(model string) Option {
	return func(g *Generator) { g.model = model }
}

// WithBaseURL overrides the endpoint chosen from the API key.
func WithBaseURL(baseURL string) Option {
	return func(g *Generator) { g.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithMaxTokens overrides the answer length cap.
func WithMaxTokens(n int) Option {
	return func(g *Generator) { g.maxTokens = n }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Generator) { g.client = client }
}

// NewGenerator creates a Generator for the given API key. The endpoint and
// default model follow from the key, see ResolveEndpoint.
func NewGenerator(apiKey string, opts ...Option) *Generator {
	baseURL, model := ResolveEndpoint(apiKey)
	g := &Generator{
		client:    &http.Client{Timeout: DefaultTimeout},
		apiKey:    apiKey,
		baseURL:   baseURL,
		model:     model,
		maxTokens: DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ResolveEndpoint picks the API endpoint and default model for an API key.
// OpenRouter keys carry a recognizable prefix; anything else goes to OpenAI.
func ResolveEndpoint(apiKey string) (baseURL, model string) {
	if strings.HasPrefix(apiKey, openRouterKeyPrefix) {
		return OpenRouterBaseURL, OpenRouterModel
	}
	return DefaultBaseURL, DefaultModel
}

type chatRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends the prompt as a single chat completion request.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: g.maxTokens,
	})
	if err != nil {
		return "", pagesift.Errorf(pagesift.EINTERNAL, "marshal chat request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", pagesift.Errorf(pagesift.EINTERNAL, "build chat request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", pagesift.Errorf(pagesift.ETIMEOUT, "ai request timed out")
		}
		return "", pagesift.Errorf(pagesift.EAISERVICE, "ai request failed: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", pagesift.Errorf(pagesift.EUNAUTHORIZED, "ai service rejected the API key")
	case resp.StatusCode != http.StatusOK:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", pagesift.Errorf(pagesift.EAISERVICE, "ai service returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", pagesift.Errorf(pagesift.EAISERVICE, "invalid ai service response: %v", err)
	}
	if len(cr.Choices) == 0 {
		return "", pagesift.Errorf(pagesift.EAISERVICE, "ai service returned no choices")
	}
	return cr.Choices[0].Message.Content, nil
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
