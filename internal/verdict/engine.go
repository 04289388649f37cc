// Package verdict runs the reasoning step for a claim and applies the
// safety rules that keep uncertain verdicts from presenting as certain.
package verdict

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/veritaslabs/veritas/internal/llm"
	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/retry"
)

// refutedReviewFloor is the confidence below which a Refuted verdict is
// flagged for human review. Calling something false is the costliest
// mistake the system can make.
const refutedReviewFloor = 90

const fallbackExplanation = "The verification result could not be determined reliably. A human reviewer should examine this claim."

// Verdict is the judged outcome for one claim
type Verdict struct {
	Label            model.Label
	InternalLabel    model.InternalLabel
	Confidence       int // 0-100
	Explanation      string
	NeedsHumanReview bool
}

// Engine evaluates claims against gathered evidence via the LLM provider
type Engine struct {
	provider llm.Provider
	cfg      model.VerdictConfig
}

// NewEngine creates a verdict engine
func NewEngine(provider llm.Provider, cfg model.VerdictConfig) *Engine {
	return &Engine{provider: provider, cfg: cfg}
}

// Evaluate judges a claim against its evidence. Transport failures that
// survive retries are returned as errors; malformed model output degrades
// to a Neutral verdict flagged for review.
func (e *Engine) Evaluate(ctx context.Context, claim model.Claim, evidence []model.EvidenceItem) (Verdict, error) {
	req := llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(claim, evidence),
		Temperature: 0.3,
	}

	var resp *llm.Response
	err := retry.Do(ctx, e.cfg.MaxRetries, time.Second, func(ctx context.Context) error {
		var callErr error
		resp, callErr = e.provider.Complete(ctx, req)
		return callErr
	})
	if err != nil {
		return Verdict{}, err
	}

	internal, confidence, explanation, ok := parseResponse(resp.Text)
	if !ok {
		zap.S().Warnw("unparseable reasoning response", "claim_id", claim.ID)
		internal = model.InternalInsufficient
		confidence = 0
		explanation = fallbackExplanation
	}

	v := Verdict{
		Label:         mapLabel(internal, confidence),
		InternalLabel: internal,
		Confidence:    confidence,
		Explanation:   explanation,
	}
	if !ok {
		v.NeedsHumanReview = true
	}
	return e.applySafetyRules(v, claim, evidence), nil
}

// applySafetyRules enforces the conservative-verdict invariants, in order
func (e *Engine) applySafetyRules(v Verdict, claim model.Claim, evidence []model.EvidenceItem) Verdict {
	if len(evidence) == 0 {
		v.Label = model.LabelNeutral
		if v.Confidence > e.cfg.EmptyEvidenceCap {
			v.Confidence = e.cfg.EmptyEvidenceCap
		}
		v.NeedsHumanReview = true
	}

	if e.isSensitive(claim.Text) {
		v.NeedsHumanReview = true
	}

	if v.Confidence < e.cfg.ReviewThreshold {
		v.NeedsHumanReview = true
	}

	if v.InternalLabel == model.InternalRefuted && v.Confidence < refutedReviewFloor {
		v.NeedsHumanReview = true
	}

	if v.Confidence < e.cfg.NeutralFloor {
		v.Label = model.LabelNeutral
	}

	return v
}

func (e *Engine) isSensitive(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range e.cfg.SensitiveKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// mapLabel converts the raw reasoning label to the user-facing one.
// Misleading needs stronger confidence than Refuted to land on False
// because the distortion judgment is more subjective.
func mapLabel(internal model.InternalLabel, confidence int) model.Label {
	switch internal {
	case model.InternalSupported:
		if confidence >= 60 {
			return model.LabelTrue
		}
	case model.InternalRefuted:
		if confidence >= 60 {
			return model.LabelFalse
		}
	case model.InternalMisleading:
		if confidence >= 75 {
			return model.LabelFalse
		}
	}
	return model.LabelNeutral
}

type rawResponse struct {
	Label       string `json:"label"`
	Confidence  int    `json:"confidence"`
	Explanation string `json:"explanation"`
}

// parseResponse extracts the verdict JSON from model output. Models
// sometimes wrap JSON in code fences or prose; anything that still does
// not parse degrades rather than erroring.
func parseResponse(text string) (model.InternalLabel, int, string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", 0, "", false
	}

	var raw rawResponse
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return "", 0, "", false
	}

	internal, ok := normalizeLabel(raw.Label)
	if !ok || raw.Explanation == "" {
		return "", 0, "", false
	}

	confidence := raw.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}
	return internal, confidence, raw.Explanation, true
}

func normalizeLabel(s string) (model.InternalLabel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "supported":
		return model.InternalSupported, true
	case "refuted":
		return model.InternalRefuted, true
	case "misleading":
		return model.InternalMisleading, true
	case "insufficient":
		return model.InternalInsufficient, true
	}
	return "", false
}
