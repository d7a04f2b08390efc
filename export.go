package pagesift

import "io"

// ExportFormat selects the on-disk representation of an exported
// result.
type ExportFormat string

// Export formats supported by ExportService.
const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// ExportService writes scrape results to files for later download.
// Implementations confine all writes to a single directory and
// sanitize caller-supplied names.
type ExportService interface {
	// Export writes the result in the given format and returns the
	// final filename, extension included. An empty name produces a
	// timestamped default.
	Export(result *ScrapeResult, format ExportFormat, name string) (filename string, err error)

	// Open opens a previously exported file for reading.
	// Returns ENOTFOUND if no such file exists.
	Open(filename string) (io.ReadCloser, error)
}
