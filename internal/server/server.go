// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pgxtools/pgx-report/internal/analyze"
	"github.com/pgxtools/pgx-report/internal/catalog"
)

// DefaultMaxBodyBytes caps the VCF payload size. Size limits belong to the
// I/O boundary, not the analysis core.
const DefaultMaxBodyBytes = 10 << 20

// Server wraps a gin engine around the analyzer.
type Server struct {
	tables       *catalog.Tables
	router       *gin.Engine
	srv          *http.Server
	logger       *zap.Logger
	maxBodyBytes int64
}

// New creates an HTTP server over the given tables. Passing nil uses the
// built-in catalog and rule table.
func New(tables *catalog.Tables, logger *zap.Logger) *Server {
	if tables == nil {
		tables = catalog.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		tables:       tables,
		router:       router,
		logger:       logger,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	s.setupRoutes()

	return s
}

// Router returns the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/v1")
	api.POST("/analyze", s.handleAnalyze)
	api.GET("/catalog", s.handleCatalog)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type analyzeRequest struct {
	VCF       string `json:"vcf" binding:"required"`
	PatientID string `json:"patient_id"`
	Strict    bool   `json:"strict"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes)

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	a := analyze.NewAnalyzer(s.tables)
	a.SetLogger(s.logger)
	a.SetStrict(req.Strict)

	result, err := a.Analyze(req.VCF, req.PatientID)
	if err != nil {
		var verr *analyze.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error()})
			return
		}
		s.logger.Error("analysis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"genes":   catalog.TargetGenes,
		"markers": s.tables.Markers(),
	})
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.srv = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info("http server listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}
