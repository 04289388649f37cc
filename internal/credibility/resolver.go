package credibility

import (
	"strings"

	"github.com/veritaslabs/veritas/internal/model"
)

// Source is the resolved identity of an evidence domain
type Source struct {
	Name  string
	Type  model.SourceType
	Score int // 0-100
}

// DefaultScore is assigned to domains absent from the table and heuristics
const DefaultScore = 50

// Resolver maps a source domain to a trust score and category.
// Lookups are pure: every domain resolves to some score, unknown ones
// fall back to a conservative default and never block evidence collection.
type Resolver struct {
	table map[string]Source
}

// NewResolver creates a resolver over the curated table plus config overrides
func NewResolver(cfg *model.CredibilityConfig) *Resolver {
	table := make(map[string]Source, len(curatedSources))
	for domain, src := range curatedSources {
		table[domain] = src
	}
	if cfg != nil {
		for domain, entry := range cfg.Overrides {
			table[NormalizeDomain(domain)] = Source{
				Name:  entry.Name,
				Type:  entry.Type,
				Score: entry.Score,
			}
		}
	}
	return &Resolver{table: table}
}

// Resolve returns the source identity for a domain.
// The domain is normalized (lowercased, www. stripped) before lookup.
func (r *Resolver) Resolve(domain string) Source {
	domain = NormalizeDomain(domain)
	if domain == "" {
		return Source{Name: "", Type: model.SourceOther, Score: DefaultScore}
	}

	if src, ok := r.table[domain]; ok {
		return src
	}

	// Subdomains inherit their parent's entry (fact-check.who.int -> who.int)
	for parent, src := range r.table {
		if strings.HasSuffix(domain, "."+parent) {
			return src
		}
	}

	return r.heuristic(domain)
}

// heuristic scores domains that miss the curated table
func (r *Resolver) heuristic(domain string) Source {
	name := friendlyName(domain)

	switch {
	case strings.HasSuffix(domain, ".gov") || strings.Contains(domain, ".gov.") ||
		strings.HasSuffix(domain, ".gov.in") || strings.Contains(domain, "mygov"):
		return Source{Name: name, Type: model.SourceGovernment, Score: 95}
	case strings.Contains(domain, "factcheck") || strings.Contains(domain, "fact-check"):
		return Source{Name: name, Type: model.SourceFactCheck, Score: 90}
	case strings.Contains(domain, "news") || strings.Contains(domain, "times") ||
		strings.Contains(domain, "tribune"):
		return Source{Name: name, Type: model.SourceNews, Score: 70}
	}

	return Source{Name: name, Type: model.SourceOther, Score: DefaultScore}
}

// NormalizeDomain lowercases a domain and strips the www. prefix and any port
func NormalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if idx := strings.Index(domain, ":"); idx > 0 {
		domain = domain[:idx]
	}
	return strings.TrimPrefix(domain, "www.")
}

// friendlyName derives a readable publisher name from a bare domain
func friendlyName(domain string) string {
	name := domain
	for _, suffix := range []string{".co.uk", ".gov.in", ".com", ".org", ".net", ".gov", ".int", ".in"} {
		name = strings.TrimSuffix(name, suffix)
	}
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '.' || r == '-' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
