package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/feedguard/feedguard/internal/model"
	"github.com/feedguard/feedguard/internal/pipeline"
	"github.com/feedguard/feedguard/internal/recommend"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server exposes the analysis pipeline over HTTP
type Server struct {
	router      *gin.Engine
	coordinator *pipeline.Coordinator
	selector    *recommend.Selector
	feedback    *FeedbackStore
	cfg         model.ServerConfig
	logger      *zap.Logger
}

// NewServer wires the HTTP surface around an assembled coordinator
func NewServer(coordinator *pipeline.Coordinator, selector *recommend.Selector, cfg model.ServerConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router:      router,
		coordinator: coordinator,
		selector:    selector,
		feedback:    NewFeedbackStore(),
		cfg:         cfg,
		logger:      logger,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.requestLogger())

	s.router.GET("/health", s.handleHealth)
	s.router.POST("/analyze", s.handleAnalyze)
	s.router.GET("/recommend", s.handleRecommend)
	s.router.POST("/feedback", s.handleFeedback)
	s.router.GET("/stats", s.handleStats)
	s.router.DELETE("/user/:user_id", s.handleDeleteUser)
	s.router.GET("/metrics", s.handleMetrics)
	s.router.POST("/metrics/reset", s.handleMetricsReset)
}

// requestLogger logs one structured line per request
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

// Run serves until the context is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleAnalyze runs the full pipeline on one item. Validation failures
// return 400 with the partial result so callers see which stage rejected
// the input.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req pipeline.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := s.coordinator.Analyze(c.Request.Context(), req)
	if err != nil {
		var stageErr *model.StageError
		if errors.As(err, &stageErr) {
			status := http.StatusInternalServerError
			var valErr *model.ValidationError
			if errors.As(err, &valErr) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{
				"error":   stageErr.Err.Error(),
				"stage":   stageErr.Stage,
				"partial": stageErr.Partial,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleRecommend returns alternatives for a title without running the
// full pipeline
func (s *Server) handleRecommend(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		title = c.Query("q")
	}
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title query parameter is required"})
		return
	}

	item := &model.ContentItem{Title: title}
	var classification *model.Classification
	if category := c.Query("category"); category != "" {
		classification = &model.Classification{Category: model.Category(category)}
	}

	alternatives := s.selector.Recommend(c.Request.Context(), item, classification)
	c.JSON(http.StatusOK, gin.H{"alternatives": alternatives})
}

func (s *Server) handleFeedback(c *gin.Context) {
	var fb Feedback
	if err := c.ShouldBindJSON(&fb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if fb.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	if err := ValidateFeedbackType(fb.Type); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fb.ReceivedAt = time.Now().UTC()
	s.feedback.Add(fb)

	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

func (s *Server) handleStats(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id query parameter is required"})
		return
	}

	insight := s.coordinator.Tracker().Analyze(userID)
	c.JSON(http.StatusOK, gin.H{
		"user_id":  userID,
		"insights": insight,
		"feedback": s.feedback.CountsForUser(userID),
	})
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	userID := c.Param("user_id")
	s.coordinator.Tracker().Delete(userID)
	s.feedback.DeleteUser(userID)
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "user_id": userID})
}

func (s *Server) handleMetrics(c *gin.Context) {
	snap := s.coordinator.Metrics().Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"pipeline": snap,
		"feedback": s.feedback.Counts(),
	})
}

func (s *Server) handleMetricsReset(c *gin.Context) {
	s.coordinator.Metrics().Reset()
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
