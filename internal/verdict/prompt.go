package verdict

import (
	"fmt"
	"strings"

	"github.com/veritaslabs/veritas/internal/model"
)

const systemPrompt = `You are a careful fact-checking analyst. You judge a single claim strictly against the evidence provided, never against your own knowledge of the topic. Respond with a single JSON object and nothing else:
{"label": "Supported" | "Refuted" | "Misleading" | "Insufficient", "confidence": 0-100, "explanation": "two or three plain sentences a non-expert can follow"}

Label meanings:
- Supported: the evidence clearly backs the claim.
- Refuted: the evidence clearly contradicts the claim.
- Misleading: the claim mixes truth with distortion or lacks critical context.
- Insufficient: the evidence does not settle the claim either way.

If the evidence is weak, contradictory, or off-topic, prefer Insufficient with low confidence over guessing.`

// buildPrompt renders the claim and its ranked evidence for the reasoning call
func buildPrompt(claim model.Claim, evidence []model.EvidenceItem) string {
	var b strings.Builder

	b.WriteString("Claim to verify:\n")
	b.WriteString(claim.Text)
	b.WriteString("\n\n")

	if len(evidence) == 0 {
		b.WriteString("No evidence could be collected for this claim.\n")
		return b.String()
	}

	b.WriteString("Evidence, ranked by source credibility:\n\n")
	for i, item := range evidence {
		fmt.Fprintf(&b, "[%d] %s (%s, credibility %d/100)\n", i+1, sourceLine(item), item.SourceType, item.CredibilityScore)
		if item.Title != "" {
			fmt.Fprintf(&b, "    Title: %s\n", item.Title)
		}
		if item.Snippet != "" {
			fmt.Fprintf(&b, "    Excerpt: %s\n", item.Snippet)
		}
		fmt.Fprintf(&b, "    URL: %s\n\n", item.URL)
	}

	b.WriteString("Judge the claim against this evidence only.\n")
	return b.String()
}

func sourceLine(item model.EvidenceItem) string {
	if item.SourceName != "" {
		return item.SourceName
	}
	return item.Domain
}
