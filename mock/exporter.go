package mock

import (
	"io"

	"github.com/fwojciec/pagesift"
)

var _ pagesift.ExportService = (*ExportService)(nil)

// ExportService is a mock implementation of pagesift.ExportService.
type ExportService struct {
	ExportFn func(result *pagesift.ScrapeResult, format pagesift.ExportFormat, name string) (string, error)
	OpenFn   func(filename string) (io.ReadCloser, error)
}

func (s *ExportService) Export(result *pagesift.ScrapeResult, format pagesift.ExportFormat, name string) (string, error) {
	return s.ExportFn(result, format, name)
}

func (s *ExportService) Open(filename string) (io.ReadCloser, error) {
	return s.OpenFn(filename)
}
