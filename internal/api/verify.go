package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veritaslabs/veritas/internal/jobs"
	"github.com/veritaslabs/veritas/internal/model"
)

// Verify handles content submission endpoints
type Verify struct {
	manager *jobs.Manager
}

// NewVerify creates the submission handlers
func NewVerify(manager *jobs.Manager) Verify {
	return Verify{manager: manager}
}

// Text accepts a raw text submission and queues a verification job
func (v Verify) Text(c *gin.Context) {
	var req struct {
		Content    string           `json:"content" binding:"required,min=1,max=20000"`
		Engagement model.Engagement `json:"engagement"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	v.submit(c, model.Submission{
		Content:     req.Content,
		ContentType: model.ContentText,
		Engagement:  req.Engagement,
	})
}

// URL accepts a URL submission and queues a verification job
func (v Verify) URL(c *gin.Context) {
	var req struct {
		URL        string           `json:"url" binding:"required,url"`
		Engagement model.Engagement `json:"engagement"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	v.submit(c, model.Submission{
		Content:     req.URL,
		ContentType: model.ContentURL,
		Engagement:  req.Engagement,
	})
}

func (v Verify) submit(c *gin.Context, sub model.Submission) {
	job, err := v.manager.Submit(sub)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "server busy, try again later"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"job_id": job.ID,
		"status": job.Status,
	})
}
