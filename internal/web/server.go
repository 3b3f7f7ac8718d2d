// Package web serves the dashboard: rendered pages, JSON APIs for charts,
// and the SSE live streams.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/kyoungmook/claude-dashboard/internal/config"
	"github.com/kyoungmook/claude-dashboard/internal/stats"
)

// Server hosts the dashboard HTTP endpoints.
type Server struct {
	cfg   config.Config
	stats *stats.Service
	tmpl  *template.Template
}

// New creates a server over the given stats service.
func New(cfg config.Config, statsSvc *stats.Service) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Server{cfg: cfg, stats: statsSvc, tmpl: tmpl}, nil
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleOverview)
	mux.HandleFunc("GET /sessions", s.handleSessions)
	mux.HandleFunc("GET /sessions/{id}", s.handleSessionDetail)
	mux.HandleFunc("GET /sessions/{id}/stream", s.handleSessionStream)
	mux.HandleFunc("GET /live", s.handleLive)
	mux.HandleFunc("GET /live/stream", s.handleLiveStream)
	mux.HandleFunc("GET /tokens", s.handleTokens)
	mux.HandleFunc("GET /tools", s.handleTools)
	mux.HandleFunc("GET /projects", s.handleProjects)
	mux.HandleFunc("GET /projects/{name}", s.handleProjectDetail)
	mux.HandleFunc("GET /tasks", s.handleTasks)
	mux.HandleFunc("GET /agents", s.handleAgents)
	mux.HandleFunc("GET /agents/{name}", s.handleAgentDetail)
	mux.HandleFunc("GET /teams", s.handleTeams)
	mux.HandleFunc("GET /teams/replay/{id}", s.handleReplay)
	mux.HandleFunc("GET /pixel-office", s.handlePixelOffice)
	mux.HandleFunc("GET /pixel-office/stream", s.handlePixelStream)

	mux.HandleFunc("GET /api/overview", s.apiOverview)
	mux.HandleFunc("GET /api/sessions", s.apiSessions)
	mux.HandleFunc("GET /api/projects", s.apiProjects)
	mux.HandleFunc("GET /api/tools", s.apiTools)
	mux.HandleFunc("GET /api/tokens/daily", s.apiDailyTokens)
	mux.HandleFunc("GET /api/tokens/models", s.apiModelCosts)
	mux.HandleFunc("GET /api/tokens/cache", s.apiCacheEfficiency)
	mux.HandleFunc("GET /api/agents", s.apiAgents)
	mux.HandleFunc("GET /api/teams", s.apiTeams)
	mux.HandleFunc("GET /api/tasks", s.apiTasks)
	mux.HandleFunc("GET /api/pixel-office", s.apiPixelOffice)
	mux.HandleFunc("GET /api/replay/{id}", s.apiReplay)

	return mux
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Printf("claude-dashboard listening on http://%s", s.cfg.Server.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("dashboard http server: %w", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) livePollInterval() time.Duration {
	return time.Duration(s.cfg.Server.LivePollIntervalSec) * time.Second
}

func (s *Server) sessionPollInterval() time.Duration {
	return time.Duration(s.cfg.Server.SessionPollIntervalSec) * time.Second
}
