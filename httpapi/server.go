// Copyright 2025 Veldt Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Runner answers a batch of questions.
type Runner interface {
	Run(ctx context.Context, questions []string) ([]string, error)
}

// RunRequest is the request body for the run endpoint.
type RunRequest struct {
	Questions []string `json:"questions" binding:"required,min=1"`
}

// RunResponse is the response body for the run endpoint. Answers align
// with the request's questions by position.
type RunResponse struct {
	Answers []string `json:"answers"`
}

// Server exposes the question answering workflow over HTTP.
type Server struct {
	engine *gin.Engine
	runner Runner
	token  string
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewServer creates the HTTP server. token guards the run endpoint as a
// bearer credential; the health endpoint stays open.
func NewServer(runner Runner, token string, opts ...Option) (*Server, error) {
	if runner == nil {
		return nil, ErrRunnerRequired
	}
	if token == "" {
		return nil, ErrTokenRequired
	}

	s := &Server{
		runner: runner,
		token:  token,
		logger: slog.Default().With("component", "httpapi"),
	}
	for _, opt := range opts {
		opt(s)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), requestLogger(s.logger))

	engine.GET("/healthz", s.handleHealth)

	v1 := engine.Group("/v1", bearerAuth(s.token))
	v1.POST("/run", s.handleRun)

	s.engine = engine
	return s, nil
}

// Handler returns the root HTTP handler, for mounting or for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves requests on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return s.engine.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleRun(c *gin.Context) {
	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request must carry a non-empty questions array"})
		return
	}
	for _, q := range req.Questions {
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "questions must not be empty strings"})
			return
		}
	}

	answers, err := s.runner.Run(c.Request.Context(), req.Questions)
	if err != nil {
		s.logger.Error("run failed", "request_id", RequestID(c), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, RunResponse{Answers: answers})
}

var (
	// ErrRunnerRequired is returned when a runner is not provided.
	ErrRunnerRequired = errors.New("runner required")

	// ErrTokenRequired is returned when an API token is not provided.
	ErrTokenRequired = errors.New("API token required")
)
