package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fwojciec/pagesift"
	"github.com/fwojciec/pagesift/fs"
	"github.com/fwojciec/pagesift/goquery"
	"github.com/fwojciec/pagesift/htmltomarkdown"
	pagesifthttp "github.com/fwojciec/pagesift/http"
	"github.com/fwojciec/pagesift/readability"
	"github.com/fwojciec/pagesift/scrape"
	pagesiftslog "github.com/fwojciec/pagesift/slog"
	"github.com/fwojciec/pagesift/topic"
	"github.com/fwojciec/pagesift/trafilatura"
)

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL      string        `arg:"" help:"Page URL to scrape"`
	Type     string        `short:"t" default:"text" help:"Content type: text, image, link or card"`
	Method   string        `short:"m" help:"Extraction method: keyword, ai_topic or list_all"`
	Keyword  string        `short:"k" help:"Keyword to match"`
	Topic    string        `short:"q" help:"Topic query for ai_topic extraction"`
	Provider string        `env:"PAGESIFT_PROVIDER" default:"openai" enum:"openai,openrouter,gemini" help:"Model provider for ai_topic"`
	APIKey   string        `env:"PAGESIFT_API_KEY" help:"Model API key"`
	Model    string        `env:"PAGESIFT_MODEL" help:"Model id override"`
	Export   string        `short:"e" help:"Export format: json, csv or xlsx (prints to stdout when unset)"`
	Timeout  time.Duration `default:"10s" help:"Fetch timeout"`
	Verbose  bool          `short:"v" help:"Log operations to stderr"`
}

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if c.Verbose {
		logger = slog.New(slog.NewTextHandler(deps.Stderr, nil))
	}

	req := &pagesift.ScrapeRequest{
		URL:         c.URL,
		ContentType: pagesift.ContentType(c.Type),
		Options: pagesift.StrategyOptions{
			Method:     c.resolveMethod(),
			Keyword:    c.Keyword,
			TopicQuery: c.Topic,
		},
	}

	fetcher := pagesifthttp.NewFetcher(pagesifthttp.WithTimeout(c.Timeout))
	defer fetcher.Close()

	scraper := &scrape.Scraper{
		Fetcher:  pagesiftslog.NewLoggingFetcher(fetcher, logger),
		Keywords: goquery.NewKeywordLocator(),
		Lists:    goquery.NewListLocator(),
		Cards:    goquery.NewCardDetector(),
	}

	if req.Options.Method == pagesift.MethodAITopic {
		gen, err := newGenerator(deps.Ctx, c.Provider, c.APIKey, c.Model, deps.Stderr)
		if err != nil {
			return err
		}
		scraper.Topics = topic.NewResolver(
			[]pagesift.Extractor{trafilatura.NewExtractor(), readability.NewExtractor()},
			htmltomarkdown.NewConverter(),
			pagesiftslog.NewLoggingGenerator(gen, logger),
		)
	}

	svc := pagesiftslog.NewLoggingScrapeService(scraper, logger)
	result, err := svc.Scrape(deps.Ctx, req)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}

	if c.Export != "" {
		exporter := fs.NewExporter(deps.DownloadsDir)
		filename, err := exporter.Export(result, pagesift.ExportFormat(c.Export), "")
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved %s\n", filepath.Join(deps.DownloadsDir, filename))
		return nil
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}

// resolveMethod fills in the conventional method when none is given:
// a topic query implies ai_topic, text and image requests default to
// keyword, links and cards take no method.
func (c *ScrapeCmd) resolveMethod() pagesift.Method {
	if c.Method != "" {
		return pagesift.Method(c.Method)
	}
	switch {
	case c.Topic != "":
		return pagesift.MethodAITopic
	case c.Type == string(pagesift.ContentTypeText), c.Type == string(pagesift.ContentTypeImage):
		return pagesift.MethodKeyword
	}
	return ""
}
