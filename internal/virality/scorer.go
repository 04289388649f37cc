// Package virality estimates how far submitted content is likely to spread
// and combines that with the verdict into a risk level.
package virality

import (
	"math"
	"strings"

	"github.com/veritaslabs/veritas/internal/model"
)

// Scorer computes virality scores from engagement metrics and content signals
type Scorer struct {
	cfg model.ViralityConfig
}

// NewScorer creates a scorer
func NewScorer(cfg model.ViralityConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score computes the 0-100 virality score for a claim. The claim text and
// the original content both feed the sensational-language boost.
func (s *Scorer) Score(claimText, originalText string, eng model.Engagement) int {
	reach := reachScore(eng.Views)
	engagement := engagementScore(eng)
	boost := s.contentBoost(claimText, originalText)

	raw := (s.cfg.ReachWeight*float64(reach) + s.cfg.EngagementWeight*float64(engagement)) * boost
	return clamp(int(raw))
}

// reachScore maps view counts onto a saturating log scale:
// 1K views -> 20, 10K -> 40, 100K -> 60, 1M -> 80, 10M+ -> 100
func reachScore(views int64) int {
	if views <= 0 {
		return 0
	}
	if views < 100 {
		return 10
	}
	score := 20 + (math.Log10(float64(views))-2)*20
	return clamp(int(score))
}

// engagementScore measures interaction relative to reach. Shares weigh
// double: a share actively spreads the content to a new audience.
func engagementScore(eng model.Engagement) int {
	if eng.Views == 0 {
		return 0
	}
	total := eng.Likes + 2*eng.Shares + eng.Comments
	rate := float64(total) / float64(eng.Views) * 100
	return clamp(int(rate * 10))
}

// contentBoost multiplies the score for sensational presentation.
// Starts at 1.0; viral keywords, ALL CAPS words, and exclamation runs
// each push it up, capped at MaxBoost.
func (s *Scorer) contentBoost(claimText, originalText string) float64 {
	combined := strings.ToLower(claimText + " " + originalText)
	boost := 1.0

	for _, kw := range s.cfg.ViralKeywords {
		if strings.Contains(combined, kw) {
			boost += 0.2
		}
	}

	for _, word := range strings.Fields(originalText) {
		if len(word) > 3 && word == strings.ToUpper(word) && word != strings.ToLower(word) {
			boost += 0.3
			break
		}
	}

	if strings.Count(originalText, "!") > 2 {
		boost += 0.2
	}

	if s.cfg.MaxBoost > 0 && boost > s.cfg.MaxBoost {
		boost = s.cfg.MaxBoost
	}
	return boost
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
