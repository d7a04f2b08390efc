// Package fs implements export of scrape results to files on disk.
package fs

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/pagesift"
	"github.com/google/uuid"
	"github.com/tealeg/xlsx/v2"
)

// formatExtensions maps export formats to file extensions.
var formatExtensions = map[pagesift.ExportFormat]string{
	pagesift.FormatJSON: ".json",
	pagesift.FormatCSV:  ".csv",
	pagesift.FormatXLSX: ".xlsx",
}

// Ensure Exporter implements pagesift.ExportService at compile time.
var _ pagesift.ExportService = (*Exporter)(nil)

// Exporter writes scrape results to files in a single directory. Filenames
// are sanitized so a caller-supplied name can never escape the directory.
type Exporter struct {
	dir string
}

// NewExporter creates an Exporter rooted at dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Export writes the result in the given format and returns the filename.
func (e *Exporter) Export(result *pagesift.ScrapeResult, format pagesift.ExportFormat, name string) (string, error) {
	if result == nil {
		return "", pagesift.Errorf(pagesift.EINVALID, "no data to export")
	}
	ext, ok := formatExtensions[format]
	if !ok {
		return "", pagesift.Errorf(pagesift.EINVALID, "invalid export format %q", format)
	}

	filename := SanitizeFilename(strings.TrimSuffix(name, ext))
	if filename == "" {
		filename = DefaultFilename()
	}
	filename += ext

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", pagesift.Errorf(pagesift.EINTERNAL, "create export directory: %v", err)
	}

	path := filepath.Join(e.dir, filename)
	var err error
	switch format {
	case pagesift.FormatJSON:
		err = writeJSON(path, result)
	case pagesift.FormatCSV:
		err = writeCSV(path, result)
	case pagesift.FormatXLSX:
		err = writeXLSX(path, result)
	}
	if err != nil {
		return "", pagesift.Errorf(pagesift.EINTERNAL, "write %s: %v", filename, err)
	}

	return filename, nil
}

// Open opens a previously exported file for reading.
func (e *Exporter) Open(filename string) (io.ReadCloser, error) {
	if filename == "" || filename != SanitizeFilename(filename) {
		return nil, pagesift.Errorf(pagesift.EINVALID, "invalid filename %q", filename)
	}
	f, err := os.Open(filepath.Join(e.dir, filename))
	if os.IsNotExist(err) {
		return nil, pagesift.Errorf(pagesift.ENOTFOUND, "file %q not found", filename)
	}
	if err != nil {
		return nil, pagesift.Errorf(pagesift.EINTERNAL, "open %s: %v", filename, err)
	}
	return f, nil
}

// SanitizeFilename reduces a caller-supplied name to a safe single-level
// filename. Path separators and special characters are dropped, leading and
// trailing dots and spaces are trimmed.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), " .")
}

// DefaultFilename builds a unique name for exports without a caller-supplied
// name.
func DefaultFilename() string {
	return fmt.Sprintf("scraped_data_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}

func writeJSON(path string, result *pagesift.ScrapeResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func writeCSV(path string, result *pagesift.ScrapeResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	headers, rows := resultTable(result)
	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return err
	}
	return w.WriteAll(rows)
}

func writeXLSX(path string, result *pagesift.ScrapeResult) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Results")
	if err != nil {
		return err
	}

	headers, rows := resultTable(result)
	hr := sheet.AddRow()
	for _, h := range headers {
		hr.AddCell().SetString(h)
	}
	for _, row := range rows {
		r := sheet.AddRow()
		for _, cell := range row {
			r.AddCell().SetString(cell)
		}
	}

	return file.Save(path)
}

// resultTable flattens a result into headers and rows for tabular formats.
func resultTable(result *pagesift.ScrapeResult) ([]string, [][]string) {
	switch result.Kind {
	case pagesift.KindText:
		var rows [][]string
		if result.Text != nil {
			rows = append(rows, []string{result.Text.Title, result.Text.Text})
		}
		return []string{"title", "text"}, rows
	case pagesift.KindList:
		rows := make([][]string, 0, len(result.Entries))
		for _, entry := range result.Entries {
			rows = append(rows, []string{entry.Title, entry.Text, entry.Link, entry.Status})
		}
		return []string{"title", "text", "link", "status"}, rows
	case pagesift.KindImages:
		rows := make([][]string, 0, len(result.Images))
		for _, img := range result.Images {
			rows = append(rows, []string{img.URL})
		}
		return []string{"url"}, rows
	case pagesift.KindLinks:
		rows := make([][]string, 0, len(result.Links))
		for _, link := range result.Links {
			rows = append(rows, []string{link.Text, link.Href})
		}
		return []string{"text", "href"}, rows
	case pagesift.KindCards:
		rows := make([][]string, 0, len(result.Cards))
		for _, card := range result.Cards {
			rows = append(rows, []string{card.Title, card.Description, card.Link, card.Image})
		}
		return []string{"title", "description", "link", "image"}, rows
	}
	return []string{"value"}, nil
}
