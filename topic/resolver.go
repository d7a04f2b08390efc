// Package topic resolves natural-language topic queries against a page by
// reducing the page to readable text and delegating content selection to a
// text generation model.
package topic

import (
	"context"
	"strings"

	"github.com/fwojciec/pagesift"
)

// DefaultTokenBudget caps the reduced page content sent to the model.
const DefaultTokenBudget = 6000

// Ensure Resolver implements pagesift.TopicResolver at compile time.
var _ pagesift.TopicResolver = (*Resolver)(nil)

// Resolver implements pagesift.TopicResolver. Extractors form the page
// reduction chain and run in order until one yields content.
type Resolver struct {
	Extractors  []pagesift.Extractor
	Converter   pagesift.Converter
	Generator   pagesift.Generator
	TokenBudget int
}

// NewResolver creates a Resolver with the given reduction chain and generator.
func NewResolver(extractors []pagesift.Extractor, converter pagesift.Converter, generator pagesift.Generator) *Resolver {
	return &Resolver{
		Extractors:  extractors,
		Converter:   converter,
		Generator:   generator,
		TokenBudget: DefaultTokenBudget,
	}
}

// Resolve extracts the content matching query from the page at baseURL.
func (r *Resolver) Resolve(ctx context.Context, html, baseURL, query string) ([]pagesift.ResultListEntry, error) {
	if strings.TrimSpace(query) == "" {
		return nil, pagesift.Errorf(pagesift.EINVALID, "topic query required")
	}

	content := r.reduce(html)
	if content == "" {
		return nil, pagesift.Errorf(pagesift.ENORESULTS, "no readable content found on the page")
	}

	budget := r.TokenBudget
	if budget <= 0 {
		budget = DefaultTokenBudget
	}
	content = TruncateTokens(content, budget)

	answer, err := r.Generator.Generate(ctx, BuildPrompt(content, baseURL, query))
	if err != nil {
		return nil, err
	}

	entries := ParseAnswer(answer)
	if len(entries) == 0 {
		return nil, pagesift.Errorf(pagesift.ENORESULTS, "the model found no content matching the query")
	}
	return entries, nil
}
