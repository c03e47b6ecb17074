// Package docdex provides incremental indexing of a documentation site.
// It discovers page URLs from the site's sitemap, tracks per-URL crawl
// state (freshness, content-hash change detection, deletions), splits
// normalized page text into heading-aware, token-budgeted chunks, and
// keeps a content-addressed chunk store synchronized with the live site.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, http/, goquery/).
package docdex
