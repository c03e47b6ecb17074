package docdex

import "context"

// TokenCounter counts tokens in text for a specific model. Used for crawl
// statistics only; chunk sizing uses EstimateTokens.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
