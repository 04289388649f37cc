package evidence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/veritaslabs/veritas/internal/cache"
	"github.com/veritaslabs/veritas/internal/credibility"
	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/search"
)

type mockProvider struct {
	results []search.Result
	err     error
	calls   int
}

func (m *mockProvider) Search(ctx context.Context, query string, maxResults int) ([]search.Result, error) {
	m.calls++
	return m.results, m.err
}

type mockFactChecker struct {
	results []search.FactCheckResult
	err     error
}

func (m *mockFactChecker) Search(ctx context.Context, query string, maxResults int) ([]search.FactCheckResult, error) {
	return m.results, m.err
}

func testConfig() model.SearchConfig {
	cfg := model.DefaultConfig().Search
	cfg.CacheTTL = time.Minute
	return cfg
}

func newGatherer(provider search.Provider, fc FactChecker, cfg model.SearchConfig) *Gatherer {
	resolver := credibility.NewResolver(nil)
	return NewGatherer(provider, fc, resolver, cache.NewMemoryCache(time.Minute, time.Minute), cfg)
}

func TestGatherer_RanksByCredibility(t *testing.T) {
	provider := &mockProvider{results: []search.Result{
		{URL: "https://example.com/blog", Title: "Blog", Snippet: "opinion"},
		{URL: "https://www.who.int/facts", Title: "WHO", Snippet: "official"},
		{URL: "https://www.bbc.com/article", Title: "BBC", Snippet: "report"},
	}}

	g := newGatherer(provider, nil, testConfig())
	items := g.Gather(context.Background(), "5G causes COVID")

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Domain != "who.int" {
		t.Errorf("expected who.int first, got %s", items[0].Domain)
	}
	if items[1].Domain != "bbc.com" {
		t.Errorf("expected bbc.com second, got %s", items[1].Domain)
	}
	for i := 1; i < len(items); i++ {
		if items[i].CredibilityScore > items[i-1].CredibilityScore {
			t.Errorf("items not sorted descending at index %d", i)
		}
	}
}

func TestGatherer_CredibilityFloor(t *testing.T) {
	provider := &mockProvider{results: []search.Result{
		{URL: "https://example.com/blog", Title: "Blog"},
		{URL: "https://www.who.int/facts", Title: "WHO"},
	}}

	cfg := testConfig()
	cfg.MinCredibility = 60
	g := newGatherer(provider, nil, cfg)

	items := g.Gather(context.Background(), "claim")
	if len(items) != 1 {
		t.Fatalf("expected 1 item above floor, got %d", len(items))
	}
	if items[0].Domain != "who.int" {
		t.Errorf("unexpected surviving item: %s", items[0].Domain)
	}
}

func TestGatherer_TruncatesToMaxResults(t *testing.T) {
	provider := &mockProvider{results: []search.Result{
		{URL: "https://www.who.int/a"},
		{URL: "https://www.cdc.gov/b"},
		{URL: "https://www.bbc.com/c"},
		{URL: "https://www.reuters.com/d"},
	}}

	cfg := testConfig()
	cfg.MaxResults = 2
	g := newGatherer(provider, nil, cfg)

	items := g.Gather(context.Background(), "claim")
	if len(items) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(items))
	}
}

func TestGatherer_SearchFailureDegradesToEmpty(t *testing.T) {
	provider := &mockProvider{err: errors.New("network down")}
	g := newGatherer(provider, nil, testConfig())

	items := g.Gather(context.Background(), "claim")
	if len(items) != 0 {
		t.Errorf("expected empty evidence on search failure, got %d items", len(items))
	}
}

func TestGatherer_FactCheckReviewsRankFirst(t *testing.T) {
	provider := &mockProvider{results: []search.Result{
		{URL: "https://www.who.int/facts", Title: "WHO"},
	}}
	fc := &mockFactChecker{results: []search.FactCheckResult{
		{URL: "https://factcheck.org/5g", Title: "5G claim checked", Rating: "False", Publisher: "FactCheck.org"},
	}}

	g := newGatherer(provider, fc, testConfig())
	items := g.Gather(context.Background(), "claim")

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].SourceType != model.SourceFactCheck {
		t.Errorf("expected fact-check review first, got %s", items[0].SourceType)
	}
	if items[0].CredibilityScore != 100 {
		t.Errorf("expected score 100 for fact-check review, got %d", items[0].CredibilityScore)
	}
	if items[0].Snippet == "" {
		t.Error("expected rating snippet on fact-check item")
	}
}

func TestGatherer_FactCheckFailureKeepsWebResults(t *testing.T) {
	provider := &mockProvider{results: []search.Result{
		{URL: "https://www.who.int/facts", Title: "WHO"},
	}}
	fc := &mockFactChecker{err: errors.New("quota exceeded")}

	g := newGatherer(provider, fc, testConfig())
	items := g.Gather(context.Background(), "claim")

	if len(items) != 1 {
		t.Fatalf("expected web results to survive fact-check failure, got %d", len(items))
	}
}

func TestGatherer_CachesQueries(t *testing.T) {
	provider := &mockProvider{results: []search.Result{
		{URL: "https://www.who.int/facts", Title: "WHO"},
	}}
	g := newGatherer(provider, nil, testConfig())

	first := g.Gather(context.Background(), "repeated claim")
	second := g.Gather(context.Background(), "repeated claim")

	if provider.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", provider.calls)
	}
	if len(first) != len(second) {
		t.Errorf("cached result differs: %d vs %d", len(first), len(second))
	}
}
