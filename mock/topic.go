package mock

import (
	"context"

	"github.com/fwojciec/pagesift"
)

var _ pagesift.TopicResolver = (*TopicResolver)(nil)

// TopicResolver is a mock implementation of pagesift.TopicResolver.
type TopicResolver struct {
	ResolveFn func(ctx context.Context, html, baseURL, topicQuery string) ([]pagesift.ResultListEntry, error)
}

func (r *TopicResolver) Resolve(ctx context.Context, html, baseURL, topicQuery string) ([]pagesift.ResultListEntry, error) {
	return r.ResolveFn(ctx, html, baseURL, topicQuery)
}
