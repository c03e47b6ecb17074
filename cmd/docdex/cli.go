package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	BaseURL string

	Chunks   docdex.ChunkService
	State    docdex.StateService
	Sitemaps docdex.SitemapService
	Crawler  *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	BaseURL    string `help:"Documentation site base URL." default:"https://docs.databricks.com" env:"DOCDEX_BASE_URL"`
	SitemapURL string `help:"Sitemap URL. Defaults to <base-url>/sitemap.xml." env:"DOCDEX_SITEMAP_URL"`
	DB         string `help:"Chunk database path." default:"data/docdex.db" env:"DOCDEX_DB"`
	State      string `help:"Crawl state file path." default:"data/crawl_state.json" env:"DOCDEX_STATE"`
	Verbose    bool   `short:"v" help:"Enable debug logging."`

	Crawl    CrawlCmd    `cmd:"" help:"Crawl the documentation site and update the index"`
	Status   StatusCmd   `cmd:"" help:"Show crawl state statistics"`
	Sections SectionsCmd `cmd:"" help:"List indexed sections by category"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Full               bool    `help:"Force full re-crawl (ignore freshness and content hashes)"`
	NewOnly            bool    `help:"Only crawl pages never crawled before"`
	Limit              int     `help:"Limit pages to crawl (for testing)"`
	RateLimit          float64 `default:"1.0" help:"Requests per second"`
	Concurrency        int     `short:"c" default:"5" help:"Concurrent fetch limit"`
	MaxChunkTokens     int     `default:"1000" help:"Token budget per chunk"`
	ChunkOverlapTokens int     `default:"100" help:"Accepted for compatibility; no overlap is produced"`
	FreshnessDays      int     `default:"7" help:"Skip pages fetched within this many days"`
	Extractor          string  `default:"docusaurus" enum:"docusaurus,generic" help:"Content extraction strategy"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}

// SectionsCmd is the "sections" subcommand.
type SectionsCmd struct {
	Category string `help:"Only list sections in this category"`
}
