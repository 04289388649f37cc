// Package evidence turns raw search hits into credibility-ranked evidence.
// Gathering never fails a claim: search errors degrade to an empty evidence
// list and the verdict layer handles the rest.
package evidence

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"go.uber.org/zap"

	"github.com/veritaslabs/veritas/internal/cache"
	"github.com/veritaslabs/veritas/internal/credibility"
	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/search"
)

// FactChecker is the published-review lookup capability. Implementations
// may be absent; a nil FactChecker disables the lookup.
type FactChecker interface {
	Search(ctx context.Context, query string, maxResults int) ([]search.FactCheckResult, error)
}

// Gatherer collects, scores, and ranks evidence for a claim
type Gatherer struct {
	provider  search.Provider
	factCheck FactChecker
	resolver  *credibility.Resolver
	cache     cache.Cache
	cfg       model.SearchConfig
}

// NewGatherer wires the search capability, the optional fact-check lookup,
// and the credibility resolver behind a query cache.
func NewGatherer(provider search.Provider, factCheck FactChecker, resolver *credibility.Resolver, c cache.Cache, cfg model.SearchConfig) *Gatherer {
	return &Gatherer{
		provider:  provider,
		factCheck: factCheck,
		resolver:  resolver,
		cache:     c,
		cfg:       cfg,
	}
}

// Gather returns up to MaxResults evidence items for a claim, ranked by
// credibility descending. Published fact-check reviews rank first. A failed
// search yields an empty list, not an error.
func (g *Gatherer) Gather(ctx context.Context, claimText string) []model.EvidenceItem {
	key := cache.Key("evidence:" + claimText)
	if g.cache != nil {
		if cached, ok := g.cache.Get(key); ok {
			if items, ok := cached.([]model.EvidenceItem); ok {
				return items
			}
		}
	}

	items := g.factCheckItems(ctx, claimText)
	items = append(items, g.searchItems(ctx, claimText)...)

	// Stable sort keeps search-rank order among equal scores
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CredibilityScore > items[j].CredibilityScore
	})

	if g.cfg.MaxResults > 0 && len(items) > g.cfg.MaxResults {
		items = items[:g.cfg.MaxResults]
	}

	if g.cache != nil {
		g.cache.Set(key, items, g.cfg.CacheTTL)
	}
	return items
}

// factCheckItems queries the published-review index when configured.
// Reviews come from dedicated fact-checking organizations and carry the
// maximum credibility score.
func (g *Gatherer) factCheckItems(ctx context.Context, claimText string) []model.EvidenceItem {
	if g.factCheck == nil {
		return nil
	}

	reviews, err := g.factCheck.Search(ctx, claimText, g.cfg.MaxResults)
	if err != nil {
		zap.S().Warnw("fact-check lookup failed", "error", err)
		return nil
	}

	var items []model.EvidenceItem
	for _, review := range reviews {
		snippet := review.Rating
		if review.Publisher != "" {
			snippet = fmt.Sprintf("Rated %q by %s", review.Rating, review.Publisher)
		}
		items = append(items, model.EvidenceItem{
			URL:              review.URL,
			Title:            review.Title,
			Snippet:          snippet,
			Domain:           domainOf(review.URL),
			SourceName:       review.Publisher,
			SourceType:       model.SourceFactCheck,
			CredibilityScore: 100,
		})
	}
	return items
}

// searchItems runs the web search and drops hits below the credibility floor
func (g *Gatherer) searchItems(ctx context.Context, claimText string) []model.EvidenceItem {
	hits, err := g.provider.Search(ctx, claimText, g.cfg.RawResults)
	if err != nil {
		zap.S().Warnw("evidence search failed", "error", err)
		return nil
	}

	var items []model.EvidenceItem
	for _, hit := range hits {
		domain := domainOf(hit.URL)
		if domain == "" {
			continue
		}
		src := g.resolver.Resolve(domain)
		if src.Score < g.cfg.MinCredibility {
			continue
		}
		items = append(items, model.EvidenceItem{
			URL:              hit.URL,
			Title:            hit.Title,
			Snippet:          hit.Snippet,
			Domain:           domain,
			SourceName:       src.Name,
			SourceType:       src.Type,
			CredibilityScore: src.Score,
		})
	}
	return items
}

func domainOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return credibility.NormalizeDomain(parsed.Host)
}
