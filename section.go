package docdex

import (
	"sort"
	"strings"
)

// Section summarizes one indexed documentation page for listing.
type Section struct {
	Title       string   `json:"title"`
	Path        string   `json:"path"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
	UseCases    []string `json:"useCases"`
	ChildCount  int      `json:"childCount"`
}

// SectionIndex is a deduplicated, sorted view over the chunk store.
type SectionIndex struct {
	Sections   []Section `json:"sections"`
	Categories []string  `json:"categories"`
	TotalCount int       `json:"totalCount"`
}

// categoryUseCases maps known documentation categories to common tasks,
// surfaced alongside section listings as orientation hints.
var categoryUseCases = map[string][]string{
	"compute":          {"Create and manage clusters", "Configure autoscaling", "Use serverless compute"},
	"delta":            {"Create Delta tables", "Optimize table performance", "Use time travel"},
	"admin":            {"Manage workspaces", "Configure users and groups", "Set up SSO"},
	"data-governance":  {"Set up Unity Catalog", "Configure access control", "Track data lineage"},
	"dev-tools":        {"Use the CLI", "Configure asset bundles", "API authentication"},
	"connect":          {"Connect to storage", "Set up streaming", "External integrations"},
	"sql":              {"Write SQL queries", "Use SQL functions", "Query optimization"},
	"machine-learning": {"Train ML models", "Track experiments", "Deploy models"},
	"generative-ai":    {"Use AI features", "Build AI applications", "LLM integration"},
	"workflows":        {"Create jobs", "Schedule workflows", "Monitor runs"},
	"notebooks":        {"Create notebooks", "Use magic commands", "Visualize data"},
	"dashboards":       {"Create dashboards", "Build visualizations", "Share insights"},
}

// CategoryUseCases returns common use cases for a category.
func CategoryUseCases(category string) []string {
	if uc, ok := categoryUseCases[category]; ok {
		return uc
	}
	return []string{"General documentation"}
}

// BuildSectionIndex derives a section listing from stored chunks.
// Chunks are deduplicated by page path (first chunk's metadata wins),
// parent paths accumulate child counts, and the result is sorted by
// category then title for stable output.
func BuildSectionIndex(chunks []DocumentChunk) SectionIndex {
	byPath := make(map[string]DocumentMetadata)
	childCounts := make(map[string]int)
	var order []string

	for _, c := range chunks {
		path := c.Metadata.Path
		if _, ok := byPath[path]; !ok {
			byPath[path] = c.Metadata
			order = append(order, path)

			parts := splitPath(path)
			for i := 0; i < len(parts)-1; i++ {
				parent := "/" + strings.Join(parts[:i+1], "/")
				childCounts[parent]++
			}
		}
	}

	categories := make(map[string]bool)
	sections := make([]Section, 0, len(order))
	for _, path := range order {
		meta := byPath[path]
		category := meta.Category
		if category == "" {
			category = "other"
		}
		categories[category] = true

		title := meta.Title
		if title == "" {
			title = "Untitled"
		}

		sections = append(sections, Section{
			Title:       title,
			Path:        path,
			Category:    category,
			Subcategory: meta.Subcategory,
			UseCases:    CategoryUseCases(category),
			ChildCount:  childCounts[path],
		})
	}

	sort.Slice(sections, func(i, j int) bool {
		if sections[i].Category != sections[j].Category {
			return sections[i].Category < sections[j].Category
		}
		return sections[i].Title < sections[j].Title
	})

	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	return SectionIndex{
		Sections:   sections,
		Categories: names,
		TotalCount: len(sections),
	}
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(strings.Trim(path, "/"), "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
