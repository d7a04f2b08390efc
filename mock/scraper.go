package mock

import (
	"context"

	"github.com/fwojciec/pagesift"
)

var _ pagesift.ScrapeService = (*ScrapeService)(nil)

// ScrapeService is a mock implementation of pagesift.ScrapeService.
type ScrapeService struct {
	ScrapeFn func(ctx context.Context, req *pagesift.ScrapeRequest) (*pagesift.ScrapeResult, error)
}

func (s *ScrapeService) Scrape(ctx context.Context, req *pagesift.ScrapeRequest) (*pagesift.ScrapeResult, error) {
	return s.ScrapeFn(ctx, req)
}
