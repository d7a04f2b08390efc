package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagesift"
	"github.com/fwojciec/pagesift/gemini"
	"github.com/fwojciec/pagesift/openai"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Directory exported files are written to. Set before calling Run().
	DownloadsDir string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DownloadsDir: defaultDownloadsDir(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Load .env if present. Variables already set in the environment win.
	_ = godotenv.Load()

	deps := &Dependencies{
		Ctx:          ctx,
		Stdout:       stdout,
		Stderr:       stderr,
		DownloadsDir: m.DownloadsDir,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagesift"),
		kong.Description("Extract text, images, links and card records from web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagesift --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

func defaultDownloadsDir() string {
	if dir := os.Getenv("PAGESIFT_DOWNLOADS"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "downloads"
	}
	return filepath.Join(home, ".pagesift", "downloads")
}

// newGenerator builds the model client for the selected provider. The
// key falls back to the provider's conventional environment variable
// when the shared one is unset.
func newGenerator(ctx context.Context, provider, apiKey, model string, stderr io.Writer) (pagesift.Generator, error) {
	switch provider {
	case "gemini":
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewGenerator(client, model), nil

	case "openrouter":
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("no API key set. Pass --api-key or set PAGESIFT_API_KEY")
		}
		opts := []openai.Option{
			openai.WithBaseURL(openai.OpenRouterBaseURL),
			openai.WithModel(openai.OpenRouterModel),
		}
		if model != "" {
			opts = append(opts, openai.WithModel(model))
		}
		return openai.NewGenerator(apiKey, opts...), nil

	default: // openai; OpenRouter keys are still recognized by prefix
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("no API key set. Pass --api-key or set PAGESIFT_API_KEY")
		}
		var opts []openai.Option
		if model != "" {
			opts = append(opts, openai.WithModel(model))
		}
		return openai.NewGenerator(apiKey, opts...), nil
	}
}
