// Package search provides the web-search capability consumed by evidence
// gathering. Providers return raw hits; credibility filtering and ranking
// happen in the evidence package.
package search

import "context"

// Result is one raw search hit
type Result struct {
	URL     string
	Title   string
	Snippet string
}

// Provider defines the search capability contract
type Provider interface {
	// Search returns up to maxResults hits for the query.
	// Implementations apply their own timeouts; failures surface as errors
	// and are degraded to empty evidence by the caller.
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}
