package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagesift"
)

// Ensure LoggingScrapeService implements pagesift.ScrapeService.
var _ pagesift.ScrapeService = (*LoggingScrapeService)(nil)

// LoggingScrapeService wraps a ScrapeService with debug logging.
type LoggingScrapeService struct {
	next   pagesift.ScrapeService
	logger *slog.Logger
}

// NewLoggingScrapeService creates a new LoggingScrapeService.
func NewLoggingScrapeService(next pagesift.ScrapeService, logger *slog.Logger) *LoggingScrapeService {
	return &LoggingScrapeService{next: next, logger: logger}
}

// Scrape delegates to the wrapped service and logs the operation.
func (s *LoggingScrapeService) Scrape(ctx context.Context, req *pagesift.ScrapeRequest) (result *pagesift.ScrapeResult, err error) {
	var url string
	var contentType pagesift.ContentType
	var method pagesift.Method
	if req != nil {
		url = req.URL
		contentType = req.ContentType
		method = req.Options.Method
	}

	defer func(begin time.Time) {
		s.logger.Info("scrape",
			"url", url,
			"type", contentType,
			"method", method,
			"items", result.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scrape(ctx, req)
}
