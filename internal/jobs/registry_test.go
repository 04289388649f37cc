package jobs

import (
	"errors"
	"testing"
	"time"

	"github.com/veritaslabs/veritas/internal/model"
)

func newTestRegistry() *Registry {
	return NewRegistry(model.JobsConfig{
		Workers:         2,
		TTL:             time.Hour,
		CleanupInterval: time.Hour,
	})
}

func textSubmission() model.Submission {
	return model.Submission{Content: "some claim", ContentType: model.ContentText}
}

func TestRegistry_CreateAndGet(t *testing.T) {
	r := newTestRegistry()

	job := r.Create(textSubmission())
	if job.ID == "" {
		t.Fatal("expected generated job ID")
	}
	if job.Status != model.StatusPending {
		t.Errorf("new job should be pending, got %s", job.Status)
	}

	got, err := r.Get(job.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != job.ID || got.Status != model.StatusPending {
		t.Errorf("unexpected job: %+v", got)
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := newTestRegistry()
	if _, err := r.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRegistry_Lifecycle(t *testing.T) {
	r := newTestRegistry()
	job := r.Create(textSubmission())

	if err := r.MarkProcessing(job.ID); err != nil {
		t.Fatalf("MarkProcessing failed: %v", err)
	}
	if err := r.SetClaims(job.ID, "en", []model.Claim{{ID: "clm_001", Text: "claim"}}); err != nil {
		t.Fatalf("SetClaims failed: %v", err)
	}
	if err := r.SetProgress(job.ID, "verifying claim 1 of 1"); err != nil {
		t.Fatalf("SetProgress failed: %v", err)
	}
	if err := r.AppendResult(job.ID, model.ClaimResult{Label: model.LabelTrue}); err != nil {
		t.Fatalf("AppendResult failed: %v", err)
	}
	if err := r.Complete(job.ID, &model.Summary{TotalClaims: 1, TrueCount: 1, HighestRisk: model.RiskLow}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	got, err := r.Get(job.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != model.StatusCompleted {
		t.Errorf("expected completed, got %s", got.Status)
	}
	if got.CompletedAt == nil {
		t.Error("expected CompletedAt to be set")
	}
	if got.Summary == nil || got.Summary.TotalClaims != 1 {
		t.Errorf("unexpected summary: %+v", got.Summary)
	}
	if len(got.Results) != 1 {
		t.Errorf("expected 1 result, got %d", len(got.Results))
	}
	if got.Language != "en" {
		t.Errorf("expected language en, got %s", got.Language)
	}
}

func TestRegistry_TerminalStatesAreFinal(t *testing.T) {
	r := newTestRegistry()
	job := r.Create(textSubmission())

	if err := r.MarkProcessing(job.ID); err != nil {
		t.Fatalf("MarkProcessing failed: %v", err)
	}
	if err := r.Complete(job.ID, &model.Summary{}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if err := r.Fail(job.ID, "late failure"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState failing a completed job, got %v", err)
	}
	if err := r.MarkProcessing(job.ID); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState reprocessing a completed job, got %v", err)
	}
	if err := r.AppendResult(job.ID, model.ClaimResult{}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState appending to a completed job, got %v", err)
	}
}

func TestRegistry_FailFromPending(t *testing.T) {
	r := newTestRegistry()
	job := r.Create(textSubmission())

	if err := r.Fail(job.ID, "could not queue"); err != nil {
		t.Fatalf("Fail failed: %v", err)
	}
	got, _ := r.Get(job.ID)
	if got.Status != model.StatusFailed {
		t.Errorf("expected failed, got %s", got.Status)
	}
	if got.Error != "could not queue" {
		t.Errorf("unexpected error message: %s", got.Error)
	}
}

func TestRegistry_ProgressRequiresProcessing(t *testing.T) {
	r := newTestRegistry()
	job := r.Create(textSubmission())

	if err := r.SetProgress(job.ID, "note"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState on pending job, got %v", err)
	}
}

func TestRegistry_SnapshotsAreIsolated(t *testing.T) {
	r := newTestRegistry()
	job := r.Create(textSubmission())
	_ = r.MarkProcessing(job.ID)
	_ = r.AppendResult(job.ID, model.ClaimResult{Label: model.LabelTrue})

	snap, _ := r.Get(job.ID)
	snap.Results[0].Label = model.LabelFalse

	again, _ := r.Get(job.ID)
	if again.Results[0].Label != model.LabelTrue {
		t.Error("mutating a snapshot must not affect the stored job")
	}
}

func TestRegistry_TerminalJobsEvictAfterTTL(t *testing.T) {
	r := NewRegistry(model.JobsConfig{TTL: 20 * time.Millisecond, CleanupInterval: 10 * time.Millisecond})
	job := r.Create(textSubmission())
	_ = r.MarkProcessing(job.ID)
	_ = r.Complete(job.ID, &model.Summary{})

	time.Sleep(60 * time.Millisecond)
	if _, err := r.Get(job.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected eviction after TTL, got %v", err)
	}
}
