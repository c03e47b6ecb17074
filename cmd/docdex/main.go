package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/crawl"
	"github.com/fwojciec/docdex/fs"
	"github.com/fwojciec/docdex/gemini"
	"github.com/fwojciec/docdex/goquery"
	"github.com/fwojciec/docdex/htmltomarkdown"
	dochttp "github.com/fwojciec/docdex/http"
	docslog "github.com/fwojciec/docdex/slog"
	"github.com/fwojciec/docdex/sqlite"
	"github.com/fwojciec/docdex/trafilatura"
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
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ChunkService docdex.ChunkService
	StateService docdex.StateService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docdex"),
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
		return fmt.Errorf("no command specified. Run 'docdex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.BaseURL = cli.BaseURL

	// Open database
	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCDEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.ChunkService = sqlite.NewChunkService(m.DB)

	stateOpts := []fs.Option{}
	if cmd == "crawl" && cli.Crawl.FreshnessDays > 0 {
		stateOpts = append(stateOpts, fs.WithFreshnessThreshold(time.Duration(cli.Crawl.FreshnessDays)*24*time.Hour))
	}
	state := fs.NewStateStore(cli.State, stateOpts...)
	if err := state.Load(); err != nil {
		return fmt.Errorf("failed to load crawl state from %q: %w", cli.State, err)
	}
	m.StateService = state

	deps.Chunks = m.ChunkService
	deps.State = m.StateService

	sitemapURL := cli.SitemapURL
	if sitemapURL == "" {
		sitemapURL = strings.TrimSuffix(cli.BaseURL, "/") + "/sitemap.xml"
	}
	deps.Sitemaps = docslog.NewLoggingSitemapService(
		dochttp.NewSitemapService(nil, sitemapURL),
		deps.Logger,
	)

	// Wire command-specific dependencies based on command
	if cmd == "crawl" {
		fetcher := docslog.NewLoggingFetcher(dochttp.NewFetcher(), deps.Logger)
		defer fetcher.Close()

		var extractor docdex.Extractor
		switch cli.Crawl.Extractor {
		case "generic":
			extractor = trafilatura.NewExtractor()
		default:
			extractor = goquery.NewExtractor()
		}

		// Token counting is statistics only; a missing tokenizer model
		// must not block a crawl.
		var tokenCounter docdex.TokenCounter
		if tc, err := gemini.NewTokenCounter(tokenizerModel); err == nil {
			tokenCounter = tc
		} else {
			deps.Logger.Warn("token counter unavailable", "err", err)
		}

		deps.Crawler = &crawl.Crawler{
			Sitemaps:     deps.Sitemaps,
			Fetcher:      fetcher,
			Extractor:    extractor,
			Converter:    htmltomarkdown.NewConverter(),
			Chunker:      docdex.NewChunker(cli.Crawl.MaxChunkTokens, cli.Crawl.ChunkOverlapTokens),
			Chunks:       m.ChunkService,
			State:        m.StateService,
			TokenCounter: tokenCounter,
			RateLimiter:  crawl.NewLimiter(cli.Crawl.RateLimit),
			Logger:       deps.Logger,
			BaseURL:      cli.BaseURL,
			Concurrency:  cli.Crawl.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for token counting statistics.
const tokenizerModel = "gemini-2.5-flash"
