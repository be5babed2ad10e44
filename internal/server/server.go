// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the outreach service over HTTP. It is stateless:
// refinement transcripts travel in the request and response bodies.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/ir-outreach/internal/logger"
	"github.com/pdiddy/ir-outreach/internal/outreach"
	"github.com/pdiddy/ir-outreach/pkg/types"
)

const shutdownTimeout = 10 * time.Second

// Outreach is the part of outreach.Service the server calls.
type Outreach interface {
	Generate(ctx context.Context, in outreach.GenerateInput) (*outreach.GenerateOutput, error)
	Refine(ctx context.Context, in outreach.RefineInput) (*outreach.RefineOutput, error)
	Compare(ctx context.Context, in outreach.GenerateInput) (*outreach.Comparison, error)
	PromptInfo() outreach.PromptInfo
}

// Server routes API requests to an Outreach implementation.
type Server struct {
	router *chi.Mux
	svc    Outreach
	cfg    types.ServerConfig
	log    logrus.FieldLogger
}

// New builds the router for svc.
func New(svc Outreach, cfg types.ServerConfig, log logrus.FieldLogger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		svc:    svc,
		cfg:    cfg,
		log:    logger.OrDiscard(log),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.log))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/generate-email", s.handleGenerate)
		r.Post("/refine-email", s.handleRefine)
		r.Post("/compare-email", s.handleCompare)
		r.Get("/prompt-info", s.handlePromptInfo)
	})
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.cfg.Addr).Info("starting HTTP server")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// requestLogger logs one line per request through log.
func requestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.WithFields(logrus.Fields{
					"request_id": middleware.GetReqID(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"status":     ww.Status(),
					"bytes":      ww.BytesWritten(),
					"elapsed":    time.Since(start).Round(time.Millisecond),
				}).Info("request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
