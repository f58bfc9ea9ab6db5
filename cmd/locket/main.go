package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/locket"
	"github.com/fwojciec/locket/fs"
	"github.com/fwojciec/locket/goquery"
	lochttp "github.com/fwojciec/locket/http"
	"github.com/fwojciec/locket/htmltomarkdown"
	"github.com/fwojciec/locket/pipeline"
	"github.com/fwojciec/locket/readability"
	"github.com/fwojciec/locket/rod"
	locslog "github.com/fwojciec/locket/slog"
	"github.com/fwojciec/locket/sqlite"
	"github.com/fwojciec/locket/summary"
	"github.com/fwojciec/locket/trafilatura"
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
	// Database path. Set before calling Run().
	DBPath string

	// Directory screenshots are stored under.
	ScreenshotDir string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	DocumentService locket.DocumentService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:        defaultDBPath(),
		ScreenshotDir: defaultScreenshotDir(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("locket"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'locket --help' to see available commands")
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

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LOCKET_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.DocumentService = sqlite.NewDocumentService(m.DB)
	deps.DB = m.DB
	deps.Documents = m.DocumentService

	// The enrichment pipeline is only needed by "add".
	if cmd == "add" {
		level := slog.LevelWarn
		if cli.Add.Verbose {
			level = slog.LevelInfo
		}
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

		// 1 req/s per domain: the metadata and content stages fetch the
		// same host independently.
		limiter := lochttp.NewDomainLimiter(1.0)
		fetcher := locslog.NewLoggingFetcher(lochttp.NewFetcher(lochttp.WithDomainLimiter(limiter)), logger)
		defer fetcher.Close()

		cfg := pipeline.Config{
			Documents: m.DocumentService,
			Fetcher:   fetcher,
			Metadata:  goquery.NewMetadataExtractor(),
			Extractors: []locket.Extractor{
				readability.NewExtractor(),
				trafilatura.NewExtractor(),
			},
			Converter:  htmltomarkdown.NewConverter(),
			Summarizer: summary.NewSummarizer(),
			Logger:     logger,
		}

		if !cli.Add.NoScreenshot {
			screenshots, err := rod.NewService(fs.NewScreenshotStore(m.ScreenshotDir))
			if err != nil {
				// The screenshot stage is best-effort, so a missing browser
				// downgrades the run instead of failing it.
				fmt.Fprintln(stderr, "Warning: could not start browser, skipping screenshots")
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --no-screenshot")
			} else {
				defer screenshots.Close()
				cfg.Screenshots = screenshots
			}
		}

		p, err := pipeline.New(cfg)
		if err != nil {
			return fmt.Errorf("failed to create pipeline: %w", err)
		}
		defer p.Close()
		deps.Pipeline = p
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("LOCKET_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "locket.db"
	}
	dir := filepath.Join(home, ".locket")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "locket.db")
}

func defaultScreenshotDir() string {
	if dir := os.Getenv("LOCKET_SCREENSHOT_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".locket")
}
