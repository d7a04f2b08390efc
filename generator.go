package pagesift

import "context"

// Generator produces text from a prompt using a hosted language-model
// service. The service is treated as unreliable: transport failures,
// non-success statuses and malformed bodies surface as coded errors
// and are never retried.
type Generator interface {
	// Generate sends the prompt and returns the model's answer text.
	// The context bounds the call.
	Generate(ctx context.Context, prompt string) (string, error)
}
