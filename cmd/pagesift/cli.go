package main

import (
	"context"
	"io"
)

// Dependencies holds the shared context and writers for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdout       io.Writer
	Stderr       io.Writer
	DownloadsDir string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape ScrapeCmd `cmd:"" help:"Extract content from a web page"`
	Serve  ServeCmd  `cmd:"" help:"Run the JSON API server"`
}
