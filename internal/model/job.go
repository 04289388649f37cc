package model

import "time"

// ContentType identifies what kind of content a job verifies
type ContentType string

const (
	ContentText  ContentType = "text"
	ContentURL   ContentType = "url"
	ContentImage ContentType = "image"
	ContentVideo ContentType = "video"
	ContentPDF   ContentType = "pdf"
)

// JobStatus tracks a job through its lifecycle.
// Transitions: pending -> processing -> completed | failed. Terminal states are final.
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Terminal reports whether the status admits no further transitions
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Submission is the caller's input to a verification job
type Submission struct {
	Content     string      `json:"content"` // Raw text, or a URL for ContentURL
	ContentType ContentType `json:"content_type"`
	Engagement  Engagement  `json:"engagement"`
}

// Job is one end-to-end verification request
type Job struct {
	ID           string        `json:"job_id"`
	Status       JobStatus     `json:"status"`
	ProgressNote string        `json:"progress_note,omitempty"`
	Submission   Submission    `json:"submission"`
	Language     string        `json:"language,omitempty"` // Detected content language
	Claims       []Claim       `json:"claims,omitempty"`
	Results      []ClaimResult `json:"results,omitempty"`
	Summary      *Summary      `json:"summary,omitempty"`
	Error        string        `json:"error,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
}

// Summary aggregates per-job verdict statistics
type Summary struct {
	TotalClaims      int       `json:"total_claims"`
	TrueCount        int       `json:"true_count"`
	FalseCount       int       `json:"false_count"`
	NeutralCount     int       `json:"neutral_count"`
	NeedsReviewCount int       `json:"needs_review_count"`
	HighestRisk      RiskLevel `json:"highest_risk"`
}

// Summarize builds the job-level summary from claim results
func Summarize(results []ClaimResult) *Summary {
	s := &Summary{
		TotalClaims: len(results),
		HighestRisk: RiskLow,
	}
	for _, r := range results {
		switch r.Label {
		case LabelTrue:
			s.TrueCount++
		case LabelFalse:
			s.FalseCount++
		case LabelNeutral:
			s.NeutralCount++
		}
		if r.NeedsHumanReview {
			s.NeedsReviewCount++
		}
		if r.RiskLevel.MoreSevere(s.HighestRisk) {
			s.HighestRisk = r.RiskLevel
		}
	}
	return s
}
