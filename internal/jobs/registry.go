// Package jobs holds the in-memory registry and execution manager for
// verification jobs. One goroutine owns each running job; everyone else
// reads immutable snapshots.
package jobs

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/veritaslabs/veritas/internal/model"
)

// ErrNotFound is returned for unknown or evicted job IDs.
var ErrNotFound = errors.New("job not found")

// ErrInvalidState is returned for disallowed status transitions.
var ErrInvalidState = errors.New("invalid job state transition")

// Registry stores jobs in memory. Running jobs never expire; terminal jobs
// are retained for the configured TTL and then evicted.
type Registry struct {
	store *gocache.Cache
	ttl   time.Duration
}

// entry pairs a job with its write lock. The runner goroutine is the only
// writer; the lock orders writes against snapshot reads.
type entry struct {
	mu  sync.Mutex
	job *model.Job
}

// NewRegistry creates a registry with the configured retention
func NewRegistry(cfg model.JobsConfig) *Registry {
	return &Registry{
		store: gocache.New(cfg.TTL, cfg.CleanupInterval),
		ttl:   cfg.TTL,
	}
}

// Create registers a new pending job and returns its snapshot
func (r *Registry) Create(sub model.Submission) model.Job {
	job := &model.Job{
		ID:         uuid.NewString(),
		Status:     model.StatusPending,
		Submission: sub,
		CreatedAt:  time.Now().UTC(),
	}
	r.store.Set(job.ID, &entry{job: job}, gocache.NoExpiration)
	return snapshot(job)
}

// Get returns a read-only snapshot of a job
func (r *Registry) Get(id string) (model.Job, error) {
	e, err := r.entry(id)
	if err != nil {
		return model.Job{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e.job), nil
}

// MarkProcessing moves a pending job to processing
func (r *Registry) MarkProcessing(id string) error {
	return r.update(id, func(job *model.Job) error {
		if job.Status != model.StatusPending {
			return ErrInvalidState
		}
		job.Status = model.StatusProcessing
		job.ProgressNote = "processing started"
		return nil
	})
}

// SetProgress records a human-readable progress note on a running job
func (r *Registry) SetProgress(id, note string) error {
	return r.update(id, func(job *model.Job) error {
		if job.Status != model.StatusProcessing {
			return ErrInvalidState
		}
		job.ProgressNote = note
		return nil
	})
}

// SetClaims records the detected language and extracted claims
func (r *Registry) SetClaims(id, lang string, claims []model.Claim) error {
	return r.update(id, func(job *model.Job) error {
		if job.Status != model.StatusProcessing {
			return ErrInvalidState
		}
		job.Language = lang
		job.Claims = claims
		return nil
	})
}

// AppendResult records one finished claim result
func (r *Registry) AppendResult(id string, result model.ClaimResult) error {
	return r.update(id, func(job *model.Job) error {
		if job.Status != model.StatusProcessing {
			return ErrInvalidState
		}
		job.Results = append(job.Results, result)
		return nil
	})
}

// Complete moves a processing job to completed with its summary
func (r *Registry) Complete(id string, summary *model.Summary) error {
	return r.update(id, func(job *model.Job) error {
		if job.Status != model.StatusProcessing {
			return ErrInvalidState
		}
		now := time.Now().UTC()
		job.Status = model.StatusCompleted
		job.ProgressNote = ""
		job.Summary = summary
		job.CompletedAt = &now
		return nil
	})
}

// Fail moves a pending or processing job to failed
func (r *Registry) Fail(id, msg string) error {
	return r.update(id, func(job *model.Job) error {
		if job.Status.Terminal() {
			return ErrInvalidState
		}
		now := time.Now().UTC()
		job.Status = model.StatusFailed
		job.ProgressNote = ""
		job.Error = msg
		job.CompletedAt = &now
		return nil
	})
}

func (r *Registry) entry(id string) (*entry, error) {
	v, ok := r.store.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	e, ok := v.(*entry)
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

func (r *Registry) update(id string, fn func(*model.Job) error) error {
	e, err := r.entry(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := fn(e.job); err != nil {
		return err
	}
	if e.job.Status.Terminal() {
		// Start the retention clock once the job can no longer change
		r.store.Set(id, e, r.ttl)
	}
	return nil
}

// snapshot deep-copies the mutable top-level fields so readers never share
// slices with the runner.
func snapshot(job *model.Job) model.Job {
	out := *job
	if job.Claims != nil {
		out.Claims = make([]model.Claim, len(job.Claims))
		copy(out.Claims, job.Claims)
	}
	if job.Results != nil {
		out.Results = make([]model.ClaimResult, len(job.Results))
		copy(out.Results, job.Results)
	}
	if job.Summary != nil {
		s := *job.Summary
		out.Summary = &s
	}
	if job.CompletedAt != nil {
		t := *job.CompletedAt
		out.CompletedAt = &t
	}
	return out
}
