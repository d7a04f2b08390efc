package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
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

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr     string        `default:":8080" env:"PAGESIFT_ADDR" help:"HTTP listen address"`
	RPS      float64       `default:"1" env:"PAGESIFT_RPS" help:"Outbound requests per second per domain"`
	Provider string        `env:"PAGESIFT_PROVIDER" default:"openai" enum:"openai,openrouter,gemini" help:"Model provider for ai_topic"`
	APIKey   string        `env:"PAGESIFT_API_KEY" help:"Model API key"`
	Model    string        `env:"PAGESIFT_MODEL" help:"Model id override"`
	Timeout  time.Duration `default:"10s" help:"Fetch timeout"`
}

// Run executes the serve command. The server runs until SIGINT or
// SIGTERM, then shuts down gracefully.
func (c *ServeCmd) Run(deps *Dependencies) error {
	logger := slog.New(slog.NewJSONHandler(deps.Stderr, nil))

	fetcher := pagesifthttp.NewFetcher(pagesifthttp.WithTimeout(c.Timeout))
	defer fetcher.Close()

	scraper := &scrape.Scraper{
		Fetcher:     pagesiftslog.NewLoggingFetcher(fetcher, logger),
		Keywords:    goquery.NewKeywordLocator(),
		Lists:       goquery.NewListLocator(),
		Cards:       goquery.NewCardDetector(),
		RateLimiter: scrape.NewDomainLimiter(c.RPS),
	}

	// ai_topic is optional in serve mode. Without a key the server
	// still handles every other strategy.
	if gen, err := newGenerator(deps.Ctx, c.Provider, c.APIKey, c.Model, deps.Stderr); err != nil {
		logger.Warn("ai_topic requests disabled", "err", err)
	} else {
		scraper.Topics = topic.NewResolver(
			[]pagesift.Extractor{trafilatura.NewExtractor(), readability.NewExtractor()},
			htmltomarkdown.NewConverter(),
			pagesiftslog.NewLoggingGenerator(gen, logger),
		)
	}

	srv := pagesifthttp.NewServer()
	srv.Addr = c.Addr
	srv.Logger = logger
	srv.Scraper = pagesiftslog.NewLoggingScrapeService(scraper, logger)
	srv.Exporter = fs.NewExporter(deps.DownloadsDir)

	if err := srv.Open(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	logger.Info("listening", "addr", srv.URL(), "downloads", deps.DownloadsDir)
	fmt.Fprintf(deps.Stdout, "pagesift listening on %s\n", srv.URL())

	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	return srv.Close()
}
