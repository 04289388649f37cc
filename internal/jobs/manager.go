package jobs

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/worker"
)

// RunFunc executes one job end to end. It owns all registry writes for
// that job ID until the job reaches a terminal state.
type RunFunc func(ctx context.Context, jobID string)

// Manager accepts submissions and runs them on a bounded worker pool
type Manager struct {
	registry *Registry
	pool     *worker.Pool
	run      RunFunc
}

// NewManager creates a manager and starts its pool
func NewManager(registry *Registry, cfg model.JobsConfig, run RunFunc) *Manager {
	pool := worker.NewPool(cfg.Workers, cfg.Workers*4)
	pool.Start()
	return &Manager{registry: registry, pool: pool, run: run}
}

// Submit registers a job and queues it for execution. The returned
// snapshot is the pending job; callers poll Get for progress.
func (m *Manager) Submit(sub model.Submission) (model.Job, error) {
	job := m.registry.Create(sub)

	err := m.pool.Submit(func(ctx context.Context) {
		m.run(ctx, job.ID)
	})
	if err != nil {
		if failErr := m.registry.Fail(job.ID, "server busy, job could not be queued"); failErr != nil {
			zap.S().Errorw("failed to mark unqueued job", "job_id", job.ID, "error", failErr)
		}
		return model.Job{}, fmt.Errorf("queue job: %w", err)
	}

	zap.S().Infow("job queued", "job_id", job.ID, "content_type", sub.ContentType)
	return job, nil
}

// Get returns a job snapshot
func (m *Manager) Get(id string) (model.Job, error) {
	return m.registry.Get(id)
}

// Shutdown drains the pool
func (m *Manager) Shutdown(ctx context.Context) error {
	return m.pool.Shutdown(ctx)
}
