// Package api serves imported election results read-only over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"wahlimport/internal/config"
	"wahlimport/internal/errors"
	"wahlimport/models"
	"wahlimport/ports"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Summarizer computes the summary of one election
type Summarizer interface {
	Summarize(ctx context.Context, wahl, stimmart string) (*models.ElectionSummary, error)
}

// Server wires the read handlers onto a gin engine
type Server struct {
	router    *gin.Engine
	results   ports.ResultRepository
	runs      ports.ImportRunRepository
	summaries Summarizer
	cfg       config.ServerConfig
	logger    logrus.FieldLogger
}

// NewServer creates the API server and registers its routes
func NewServer(results ports.ResultRepository, runs ports.ImportRunRepository, summaries Summarizer, cfg config.ServerConfig, logger logrus.FieldLogger) *Server {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	s := &Server{
		router:    gin.New(),
		results:   results,
		runs:      runs,
		summaries: summaries,
		cfg:       cfg,
		logger:    logger.WithField("component", "api"),
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// HTTPServer builds an http.Server listening on the configured port
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	api.GET("/results", s.handleListResults)
	api.GET("/elections/:wahl/summary", s.handleSummary)
	api.GET("/imports", s.handleListImports)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Debug("request")
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps error codes onto HTTP statuses. Internal details stay in the log.
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"
	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		status, message = http.StatusNotFound, err.Error()
	case errors.CodeInvalidInput:
		status, message = http.StatusBadRequest, err.Error()
	default:
		s.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	}
	c.JSON(status, gin.H{"error": message, "code": errors.GetCode(err)})
}
