// Package extract turns submitted content into verifiable claims and
// detects the content language.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/veritaslabs/veritas/internal/llm"
	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/retry"
)

const (
	maxClaims        = 3
	extractRetries   = 3
	minClaimableText = 20
	snippetLimit     = 300
)

const extractSystem = `You extract verifiable factual claims from social media content. A factual claim is a statement that can be checked as true or false: events, statistics, statements about people or places, health information, scientific assertions. Ignore opinions, questions, and anything unverifiable. Respond with a single JSON object and nothing else:
{"claims": [{"claim": "..."}]}
Return at most 3 claims, the most consequential first. Phrase each claim in clear standalone English.`

// Extractor pulls the top factual claims out of free-form text
type Extractor struct {
	provider llm.Provider
}

// NewExtractor creates a claim extractor
func NewExtractor(provider llm.Provider) *Extractor {
	return &Extractor{provider: provider}
}

// Extract returns up to three claims found in text. Content too short to
// carry a claim yields an empty slice. Transport failures surface as
// errors; malformed model output falls back to a single whole-text claim.
func (e *Extractor) Extract(ctx context.Context, text, lang string) ([]model.Claim, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minClaimableText {
		return nil, nil
	}

	req := llm.Request{
		System:      extractSystem,
		Prompt:      "Content:\n" + trimmed,
		Temperature: 0.3,
	}

	var resp *llm.Response
	err := retry.Do(ctx, extractRetries, time.Second, func(ctx context.Context) error {
		var callErr error
		resp, callErr = e.provider.Complete(ctx, req)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("claim extraction: %w", err)
	}

	texts := parseClaims(resp.Text)
	if len(texts) == 0 {
		// The model answered but not in the agreed shape; verify the
		// whole submission as one claim rather than dropping it.
		zap.S().Warnw("unparseable extraction response, using whole text as claim")
		texts = []string{truncate(trimmed, 200)}
	}

	claims := make([]model.Claim, 0, len(texts))
	for i, t := range texts {
		claims = append(claims, model.Claim{
			ID:              fmt.Sprintf("clm_%03d", i+1),
			Text:            t,
			OriginalSnippet: truncate(trimmed, snippetLimit),
			SourceLanguage:  lang,
		})
	}
	return claims, nil
}

type rawClaims struct {
	Claims []struct {
		Claim string `json:"claim"`
	} `json:"claims"`
}

func parseClaims(text string) []string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil
	}

	var raw rawClaims
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil
	}

	var out []string
	for _, c := range raw.Claims {
		claim := strings.TrimSpace(c.Claim)
		if claim == "" {
			continue
		}
		out = append(out, claim)
		if len(out) >= maxClaims {
			break
		}
	}
	return out
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
