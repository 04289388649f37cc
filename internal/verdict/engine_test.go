package verdict

import (
	"context"
	"errors"
	"fmt"
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
	return &llm.Response{Text: m.text, Model: "mock"}, nil
}

func (m *mockProvider) IsAvailable(ctx context.Context) bool { return true }

func verdictJSON(label string, confidence int) string {
	return fmt.Sprintf(`{"label": %q, "confidence": %d, "explanation": "The evidence settles this claim."}`, label, confidence)
}

func testClaim() model.Claim {
	return model.Claim{ID: "clm_001", Text: "The moon is made of rock", SourceLanguage: "en"}
}

func testEvidence() []model.EvidenceItem {
	return []model.EvidenceItem{{
		URL:              "https://www.who.int/item",
		Title:            "Reference",
		Snippet:          "Detail.",
		Domain:           "who.int",
		SourceName:       "World Health Organization",
		SourceType:       model.SourceHealthAuthority,
		CredibilityScore: 100,
	}}
}

func newEngine(p llm.Provider) *Engine {
	return NewEngine(p, model.DefaultConfig().Verdict)
}

func TestEvaluate_SupportedHighConfidence(t *testing.T) {
	e := newEngine(&mockProvider{text: verdictJSON("Supported", 90)})

	v, err := e.Evaluate(context.Background(), testClaim(), testEvidence())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if v.Label != model.LabelTrue {
		t.Errorf("expected True, got %s", v.Label)
	}
	if v.NeedsHumanReview {
		t.Error("confident supported verdict should not need review")
	}
	if v.Confidence != 90 {
		t.Errorf("unexpected confidence: %d", v.Confidence)
	}
}

func TestEvaluate_RefutedConfidenceBands(t *testing.T) {
	tests := []struct {
		confidence int
		wantLabel  model.Label
		wantReview bool
	}{
		{95, model.LabelFalse, false},
		{70, model.LabelFalse, true},   // below the refuted review floor
		{50, model.LabelNeutral, true}, // below the mapping threshold
	}

	for _, tt := range tests {
		e := newEngine(&mockProvider{text: verdictJSON("Refuted", tt.confidence)})
		v, err := e.Evaluate(context.Background(), testClaim(), testEvidence())
		if err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
		if v.Label != tt.wantLabel {
			t.Errorf("confidence %d: expected %s, got %s", tt.confidence, tt.wantLabel, v.Label)
		}
		if v.NeedsHumanReview != tt.wantReview {
			t.Errorf("confidence %d: expected review=%v, got %v", tt.confidence, tt.wantReview, v.NeedsHumanReview)
		}
	}
}

func TestEvaluate_MisleadingThreshold(t *testing.T) {
	e := newEngine(&mockProvider{text: verdictJSON("Misleading", 80)})
	v, err := e.Evaluate(context.Background(), testClaim(), testEvidence())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if v.Label != model.LabelFalse {
		t.Errorf("misleading at 80 should map to False, got %s", v.Label)
	}

	e = newEngine(&mockProvider{text: verdictJSON("Misleading", 70)})
	v, err = e.Evaluate(context.Background(), testClaim(), testEvidence())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if v.Label != model.LabelNeutral {
		t.Errorf("misleading at 70 should map to Neutral, got %s", v.Label)
	}
}

func TestEvaluate_InsufficientMapsNeutral(t *testing.T) {
	e := newEngine(&mockProvider{text: verdictJSON("Insufficient", 90)})
	v, err := e.Evaluate(context.Background(), testClaim(), testEvidence())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if v.Label != model.LabelNeutral {
		t.Errorf("expected Neutral, got %s", v.Label)
	}
}

func TestEvaluate_EmptyEvidence(t *testing.T) {
	e := newEngine(&mockProvider{text: verdictJSON("Supported", 95)})

	v, err := e.Evaluate(context.Background(), testClaim(), nil)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if v.Label != model.LabelNeutral {
		t.Errorf("empty evidence must force Neutral, got %s", v.Label)
	}
	if v.Confidence > 40 {
		t.Errorf("empty evidence must cap confidence at 40, got %d", v.Confidence)
	}
	if !v.NeedsHumanReview {
		t.Error("empty evidence must flag human review")
	}
}

func TestEvaluate_SensitiveTopicFlagsReview(t *testing.T) {
	e := newEngine(&mockProvider{text: verdictJSON("Supported", 95)})
	claim := model.Claim{ID: "clm_001", Text: "The new vaccine rollout starts Monday"}

	v, err := e.Evaluate(context.Background(), claim, testEvidence())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !v.NeedsHumanReview {
		t.Error("sensitive topic must flag human review regardless of confidence")
	}
	if v.Label != model.LabelTrue {
		t.Errorf("sensitive flag should not change the label, got %s", v.Label)
	}
}

func TestEvaluate_MalformedResponse(t *testing.T) {
	e := newEngine(&mockProvider{text: "I think this claim is probably true."})

	v, err := e.Evaluate(context.Background(), testClaim(), testEvidence())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if v.Label != model.LabelNeutral {
		t.Errorf("malformed response must degrade to Neutral, got %s", v.Label)
	}
	if v.Confidence != 0 {
		t.Errorf("malformed response must carry zero confidence, got %d", v.Confidence)
	}
	if !v.NeedsHumanReview {
		t.Error("malformed response must flag human review")
	}
}

func TestEvaluate_FencedJSONParses(t *testing.T) {
	text := "```json\n" + verdictJSON("Supported", 85) + "\n```"
	e := newEngine(&mockProvider{text: text})

	v, err := e.Evaluate(context.Background(), testClaim(), testEvidence())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if v.Label != model.LabelTrue {
		t.Errorf("fenced JSON should parse, got %s", v.Label)
	}
}

func TestEvaluate_TransportErrorPropagates(t *testing.T) {
	provider := &mockProvider{err: errors.New("invalid api key")}
	e := newEngine(provider)

	if _, err := e.Evaluate(context.Background(), testClaim(), testEvidence()); err == nil {
		t.Fatal("expected error on provider failure")
	}
	if provider.calls != 1 {
		t.Errorf("non-transient error should not retry, got %d calls", provider.calls)
	}
}

func TestEvaluate_ConfidenceClamped(t *testing.T) {
	e := newEngine(&mockProvider{text: verdictJSON("Supported", 150)})

	v, err := e.Evaluate(context.Background(), testClaim(), testEvidence())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if v.Confidence != 100 {
		t.Errorf("confidence must clamp to 100, got %d", v.Confidence)
	}
}
