package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veritaslabs/veritas/internal/jobs"
	"github.com/veritaslabs/veritas/internal/model"
)

// Jobs handles job inspection endpoints
type Jobs struct {
	manager *jobs.Manager
}

// NewJobs creates the job handlers
func NewJobs(manager *jobs.Manager) Jobs {
	return Jobs{manager: manager}
}

// Status returns the lifecycle view of a job
func (j Jobs) Status(c *gin.Context) {
	job, ok := j.lookup(c)
	if !ok {
		return
	}

	resp := gin.H{
		"job_id":     job.ID,
		"status":     job.Status,
		"created_at": job.CreatedAt,
	}
	if job.ProgressNote != "" {
		resp["progress_note"] = job.ProgressNote
	}
	if job.Error != "" {
		resp["error"] = job.Error
	}
	if job.CompletedAt != nil {
		resp["completed_at"] = job.CompletedAt
	}
	c.JSON(http.StatusOK, resp)
}

// Result returns the full job once it has reached a terminal state
func (j Jobs) Result(c *gin.Context) {
	job, ok := j.lookup(c)
	if !ok {
		return
	}
	if !job.Status.Terminal() {
		c.JSON(http.StatusConflict, gin.H{"err": "job not finished", "status": job.Status})
		return
	}
	c.JSON(http.StatusOK, job)
}

// Receipts returns the evidence trail per claim for a completed job
func (j Jobs) Receipts(c *gin.Context) {
	job, ok := j.lookup(c)
	if !ok {
		return
	}
	if job.Status != model.StatusCompleted {
		c.JSON(http.StatusConflict, gin.H{"err": "job not completed", "status": job.Status})
		return
	}

	receipts := make([]gin.H, 0, len(job.Results))
	for _, r := range job.Results {
		sources := make([]gin.H, 0, len(r.Evidence))
		for _, ev := range r.Evidence {
			sources = append(sources, gin.H{
				"url":               ev.URL,
				"source_name":       ev.SourceName,
				"source_type":       ev.SourceType,
				"credibility_score": ev.CredibilityScore,
			})
		}
		receipts = append(receipts, gin.H{
			"claim_id": r.Claim.ID,
			"claim":    r.Claim.Text,
			"label":    r.Label,
			"sources":  sources,
		})
	}
	c.JSON(http.StatusOK, gin.H{"job_id": job.ID, "receipts": receipts})
}

func (j Jobs) lookup(c *gin.Context) (model.Job, bool) {
	job, err := j.manager.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"err": "job not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		}
		return model.Job{}, false
	}
	return job, true
}
