// Package synthesis renders claim explanations in the submitter's language.
// Localization is best-effort: any failure yields a nil localized text and
// the English explanation stands alone.
package synthesis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/veritaslabs/veritas/internal/llm"
	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/retry"
)

const localizeMaxRetries = 3

const translateSystem = `You translate short fact-check explanations. Keep the meaning exact, use plain everyday vocabulary, and return only the translated text with no preamble.`

// languageNames maps supported ISO 639-1 codes to prompt-friendly names
var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"mr": "Marathi",
}

// Localizer translates verdict explanations into fully supported languages
type Localizer struct {
	provider  llm.Provider
	supported map[string]bool
}

// NewLocalizer creates a localizer over the configured language set
func NewLocalizer(provider llm.Provider, cfg model.LanguageConfig) *Localizer {
	supported := make(map[string]bool, len(cfg.FullySupported))
	for _, lang := range cfg.FullySupported {
		supported[strings.ToLower(lang)] = true
	}
	return &Localizer{provider: provider, supported: supported}
}

// Localize returns the explanation in the target language, or nil when the
// language is unsupported or translation fails. English passes through.
func (l *Localizer) Localize(ctx context.Context, explanation, lang string) *string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if explanation == "" || !l.supported[lang] {
		return nil
	}
	if lang == "en" {
		out := explanation
		return &out
	}

	name, ok := languageNames[lang]
	if !ok {
		return nil
	}

	req := llm.Request{
		System:      translateSystem,
		Prompt:      fmt.Sprintf("Translate into %s:\n\n%s", name, explanation),
		Temperature: 0.3,
	}

	var resp *llm.Response
	err := retry.Do(ctx, localizeMaxRetries, time.Second, func(ctx context.Context) error {
		var callErr error
		resp, callErr = l.provider.Complete(ctx, req)
		return callErr
	})
	if err != nil {
		zap.S().Warnw("translation failed", "lang", lang, "error", err)
		return nil
	}

	translated := strings.TrimSpace(resp.Text)
	if translated == "" {
		return nil
	}
	return &translated
}
