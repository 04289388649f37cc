package synthesis

import (
	"context"
	"errors"
	"testing"

	"github.com/veritaslabs/veritas/internal/llm"
	"github.com/veritaslabs/veritas/internal/model"
)

type mockProvider struct {
	text  string
	err   error
	calls int
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &llm.Response{Text: m.text}, nil
}

func (m *mockProvider) IsAvailable(ctx context.Context) bool { return true }

func newLocalizer(p llm.Provider) *Localizer {
	return NewLocalizer(p, model.DefaultConfig().Language)
}

func TestLocalize_EnglishPassthrough(t *testing.T) {
	provider := &mockProvider{text: "should not be called"}
	l := newLocalizer(provider)

	got := l.Localize(context.Background(), "The claim is false.", "en")
	if got == nil || *got != "The claim is false." {
		t.Fatalf("expected passthrough, got %v", got)
	}
	if provider.calls != 0 {
		t.Errorf("english must not hit the provider, got %d calls", provider.calls)
	}
}

func TestLocalize_SupportedLanguage(t *testing.T) {
	provider := &mockProvider{text: "यह दावा गलत है।"}
	l := newLocalizer(provider)

	got := l.Localize(context.Background(), "The claim is false.", "hi")
	if got == nil {
		t.Fatal("expected translation for supported language")
	}
	if *got != "यह दावा गलत है।" {
		t.Errorf("unexpected translation: %s", *got)
	}
}

func TestLocalize_UnsupportedLanguage(t *testing.T) {
	provider := &mockProvider{text: "irrelevant"}
	l := newLocalizer(provider)

	if got := l.Localize(context.Background(), "The claim is false.", "fr"); got != nil {
		t.Errorf("unsupported language must return nil, got %q", *got)
	}
	if provider.calls != 0 {
		t.Error("unsupported language must not hit the provider")
	}
}

func TestLocalize_TranslationFailure(t *testing.T) {
	provider := &mockProvider{err: errors.New("model unavailable")}
	l := newLocalizer(provider)

	if got := l.Localize(context.Background(), "The claim is false.", "mr"); got != nil {
		t.Errorf("failed translation must return nil, got %q", *got)
	}
}

func TestLocalize_EmptyResponse(t *testing.T) {
	provider := &mockProvider{text: "   "}
	l := newLocalizer(provider)

	if got := l.Localize(context.Background(), "The claim is false.", "hi"); got != nil {
		t.Errorf("blank translation must return nil, got %q", *got)
	}
}

func TestLocalize_EmptyExplanation(t *testing.T) {
	l := newLocalizer(&mockProvider{})
	if got := l.Localize(context.Background(), "", "en"); got != nil {
		t.Error("empty explanation must return nil")
	}
}
