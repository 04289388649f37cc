// Package api exposes the verification service over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veritaslabs/veritas/internal/jobs"
	"github.com/veritaslabs/veritas/internal/model"
)

// New builds the HTTP router
func New(manager *jobs.Manager) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, manager)
	return g
}

func attachRoutes(g *gin.Engine, manager *jobs.Manager) {
	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v := NewVerify(manager)
	j := NewJobs(manager)

	api := g.Group("/api/v1")
	api.POST("/verify/text", v.Text)
	api.POST("/verify/url", v.URL)
	api.GET("/jobs/:id", j.Status)
	api.GET("/jobs/:id/result", j.Result)
	api.GET("/jobs/:id/receipts", j.Receipts)
}

// Server runs the router on the configured address
type Server struct {
	engine *gin.Engine
	addr   string
}

// NewServer creates a server
func NewServer(cfg model.ServerConfig, manager *jobs.Manager) *Server {
	return &Server{engine: New(manager), addr: cfg.Addr}
}

// Run blocks serving HTTP
func (s *Server) Run() error {
	return s.engine.Run(s.addr)
}
