package extract

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/veritaslabs/veritas/internal/llm"
	"github.com/veritaslabs/veritas/internal/retry"
)

// minDetectableText is the length below which detection is unreliable
// and English is assumed.
const minDetectableText = 10

const detectSystem = `You identify the language of a text. Respond with only the two-letter ISO 639-1 code, for example: en, hi, mr. Nothing else.`

// LanguageDetector identifies the language of submitted content.
// Detection never fails: uncertain input resolves to English.
type LanguageDetector interface {
	Detect(ctx context.Context, text string) string
}

// LLMDetector detects language through the reasoning provider
type LLMDetector struct {
	provider llm.Provider
}

// NewLLMDetector creates a detector
func NewLLMDetector(provider llm.Provider) *LLMDetector {
	return &LLMDetector{provider: provider}
}

// Detect returns the ISO 639-1 code for text, defaulting to "en"
func (d *LLMDetector) Detect(ctx context.Context, text string) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minDetectableText {
		return "en"
	}

	req := llm.Request{
		System:      detectSystem,
		Prompt:      truncate(trimmed, 500),
		MaxTokens:   10,
		Temperature: 0,
	}

	var resp *llm.Response
	err := retry.Do(ctx, 2, time.Second, func(ctx context.Context) error {
		var callErr error
		resp, callErr = d.provider.Complete(ctx, req)
		return callErr
	})
	if err != nil {
		zap.S().Warnw("language detection failed, assuming english", "error", err)
		return "en"
	}

	code := strings.ToLower(strings.TrimSpace(resp.Text))
	if len(code) != 2 || !isAlpha(code) {
		return "en"
	}
	return code
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
