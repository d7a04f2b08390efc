package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/pagesift"
	"github.com/fwojciec/pagesift/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Generator implements pagesift.Generator at compile time.
var _ pagesift.Generator = (*openai.Generator)(nil)

func TestResolveEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("openrouter key routes to openrouter", func(t *testing.T) {
		t.Parallel()

		baseURL, model := openai.ResolveEndpoint("sk-or-v1-abcdef")

		assert.Equal(t, openai.OpenRouterBaseURL, baseURL)
		assert.Equal(t, openai.OpenRouterModel, model)
	})

	t.Run("other keys route to openai", func(t *testing.T) {
		t.Parallel()

		baseURL, model := openai.ResolveEndpoint("sk-proj-abcdef")

		assert.Equal(t, openai.DefaultBaseURL, baseURL)
		assert.Equal(t, openai.DefaultModel, model)
	})
}

func TestGenerator_Generate_SendsChatRequest(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
			MaxTokens int `json:"max_tokens"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "extract the notices", req.Messages[1].Content)
		assert.Equal(t, openai.DefaultMaxTokens, req.MaxTokens)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "the answer"}},
			},
		})
	}))
	defer srv.Close()

	g := openai.NewGenerator("test-key", openai.WithBaseURL(srv.URL), openai.WithModel("test-model"))

	answer, err := g.Generate(context.Background(), "extract the notices")

	require.NoError(t, err)
	assert.Equal(t, "the answer", answer)
}

func TestGenerator_Generate_Unauthorized(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := openai.NewGenerator("bad-key", openai.WithBaseURL(srv.URL))

	_, err := g.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.Equal(t, pagesift.EUNAUTHORIZED, pagesift.ErrorCode(err))
}

func TestGenerator_Generate_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := openai.NewGenerator("test-key", openai.WithBaseURL(srv.URL))

	_, err := g.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.Equal(t, pagesift.EAISERVICE, pagesift.ErrorCode(err))
	assert.Contains(t, pagesift.ErrorMessage(err), "500")
	assert.Contains(t, pagesift.ErrorMessage(err), "model overloaded")
}

func TestGenerator_Generate_MalformedResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	g := openai.NewGenerator("test-key", openai.WithBaseURL(srv.URL))

	_, err := g.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.Equal(t, pagesift.EAISERVICE, pagesift.ErrorCode(err))
}

func TestGenerator_Generate_NoChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	g := openai.NewGenerator("test-key", openai.WithBaseURL(srv.URL))

	_, err := g.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.Equal(t, pagesift.EAISERVICE, pagesift.ErrorCode(err))
	assert.Contains(t, pagesift.ErrorMessage(err), "no choices")
}

func TestGenerator_Generate_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	g := openai.NewGenerator("test-key",
		openai.WithBaseURL(srv.URL),
		openai.WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}),
	)

	_, err := g.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.Equal(t, pagesift.ETIMEOUT, pagesift.ErrorCode(err))
}
