package model

// SourceType classifies the publisher behind an evidence source
type SourceType string

const (
	SourceGovernment      SourceType = "government"
	SourceHealthAuthority SourceType = "health_authority"
	SourceFactCheck       SourceType = "fact_check"
	SourceNews            SourceType = "news"
	SourceOther           SourceType = "other"
)

// EvidenceItem is one retrieved source supporting or refuting a claim
type EvidenceItem struct {
	URL              string     `json:"url"`
	Title            string     `json:"title"`
	Snippet          string     `json:"snippet,omitempty"`
	Domain           string     `json:"domain"`
	SourceName       string     `json:"source_name,omitempty"` // Friendly publisher name (e.g. "World Health Organization")
	SourceType       SourceType `json:"source_type"`
	CredibilityScore int        `json:"credibility_score"` // 0-100
}
