package model

import "time"

// Claim represents a single factual assertion extracted from submitted content
type Claim struct {
	ID              string `json:"claim_id"`                   // Unique within a job (clm_001, clm_002, ...)
	Text            string `json:"text"`                       // Canonical claim in the working language (English)
	OriginalSnippet string `json:"original_snippet,omitempty"` // Source text the claim was extracted from
	SourceLanguage  string `json:"source_language"`            // ISO 639-1 code of the original content
}

// Label is the user-facing verdict for a claim
type Label string

const (
	LabelTrue    Label = "True"
	LabelFalse   Label = "False"
	LabelNeutral Label = "Neutral"
)

// InternalLabel is the raw reasoning verdict before mapping to a user label
type InternalLabel string

const (
	InternalSupported    InternalLabel = "Supported"
	InternalRefuted      InternalLabel = "Refuted"
	InternalMisleading   InternalLabel = "Misleading"
	InternalInsufficient InternalLabel = "Insufficient"
)

// RiskLevel classifies combined verdict/virality severity
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// riskRank orders risk levels for comparison (critical > high > medium > low)
var riskRank = map[RiskLevel]int{
	RiskLow:      0,
	RiskMedium:   1,
	RiskHigh:     2,
	RiskCritical: 3,
}

// MoreSevere reports whether r is strictly more severe than other
func (r RiskLevel) MoreSevere(other RiskLevel) bool {
	return riskRank[r] > riskRank[other]
}

// Engagement holds the social metrics submitted with content
type Engagement struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Shares   int64 `json:"shares"`
	Comments int64 `json:"comments"`
}

// ClaimResult is the terminal record produced for a claim
type ClaimResult struct {
	Claim            Claim          `json:"claim"`
	Label            Label          `json:"label"`
	InternalLabel    InternalLabel  `json:"internal_label,omitempty"`
	Confidence       int            `json:"confidence"` // 0-100
	Explanation      string         `json:"explanation"`
	ExplanationLocal *string        `json:"explanation_local,omitempty"` // nil when localization unsupported/failed
	Evidence         []EvidenceItem `json:"evidence"`
	NeedsHumanReview bool           `json:"needs_human_review"`
	ViralityScore    int            `json:"virality_score"` // 0-100
	RiskLevel        RiskLevel      `json:"risk_level"`
	VerifiedAt       time.Time      `json:"verified_at"`
}
