// Package api exposes the classifier over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Veraticus/spamsift/internal/classifier"
	"github.com/Veraticus/spamsift/internal/model"
	"github.com/Veraticus/spamsift/internal/rules"
	"github.com/Veraticus/spamsift/internal/service"
)

// Classifier is the classification surface the API needs.
type Classifier interface {
	Classify(ctx context.Context, text string) (*model.Verdict, error)
	ClassifyBatch(ctx context.Context, texts []string, workers int, progress classifier.ProgressFunc) ([]*model.Verdict, error)
	HasModel() bool
}

// Config holds server settings.
type Config struct {
	Addr         string
	RateLimit    float64
	Burst        int
	BatchWorkers int
	MaxBatch     int
}

// DefaultMaxBatch caps the number of messages in one batch request.
const DefaultMaxBatch = 500

// Server serves the HTTP API.
type Server struct {
	classifier Classifier
	registry   *rules.Registry
	policy     *rules.Policy
	store      service.Storage
	config     Config
}

// NewServer creates a server. store may be nil, which disables the history
// endpoints and recording.
func NewServer(c Classifier, registry *rules.Registry, policy *rules.Policy, store service.Storage, cfg Config) *Server {
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = DefaultMaxBatch
	}
	return &Server{
		classifier: c,
		registry:   registry,
		policy:     policy,
		store:      store,
		config:     cfg,
	}
}

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger())

	r.GET("/healthz", s.handleHealth)

	v1 := r.Group("/api/v1")
	v1.Use(RateLimit(s.config.RateLimit, s.config.Burst))
	{
		v1.POST("/classify", s.handleClassify)
		v1.POST("/classify/batch", s.handleClassifyBatch)
		v1.GET("/groups", s.handleGroups)

		history := v1.Group("/history")
		history.Use(s.requireHistory)
		history.GET("", s.handleHistory)
		history.GET("/stats", s.handleHistoryStats)
		history.GET("/:id", s.handleHistoryRecord)
	}

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("Shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
