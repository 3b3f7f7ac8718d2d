// Package stats computes the aggregate views served by the dashboard:
// overview totals, per-project rollups, token/cost breakdowns, tool usage,
// and agent/team analytics. Every aggregator is a pure function over the
// current session corpus, wrapped in a TTL cache.
package stats

import (
	"math"
	"path/filepath"
	"time"

	"github.com/kyoungmook/claude-dashboard/internal/cache"
	"github.com/kyoungmook/claude-dashboard/internal/config"
	"github.com/kyoungmook/claude-dashboard/internal/model"
	"github.com/kyoungmook/claude-dashboard/internal/session"
)

// Service exposes the dashboard aggregators over one Claude data directory.
type Service struct {
	claudeDir string
	cfg       config.Config
	corpus    *session.Corpus
	cache     *cache.Cache
	loc       *time.Location
	now       func() time.Time
}

// New creates a Service over the given corpus.
func New(cfg config.Config, corpus *session.Corpus) *Service {
	loc := time.Local
	if tz := cfg.General.DisplayTimezone; tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	return &Service{
		claudeDir: cfg.ClaudeDir(),
		cfg:       cfg,
		corpus:    corpus,
		cache:     cache.New(),
		loc:       loc,
		now:       time.Now,
	}
}

func (s *Service) projectsDir() string    { return filepath.Join(s.claudeDir, "projects") }
func (s *Service) agentsDir() string      { return filepath.Join(s.claudeDir, "agents") }
func (s *Service) tasksDir() string       { return filepath.Join(s.claudeDir, "tasks") }
func (s *Service) teamsDir() string       { return filepath.Join(s.claudeDir, "teams") }
func (s *Service) statsCachePath() string { return filepath.Join(s.claudeDir, "stats-cache.json") }

func (s *Service) sessionsTTL() time.Duration {
	return time.Duration(s.cfg.Cache.SessionsTTLSec) * time.Second
}

func (s *Service) overviewTTL() time.Duration {
	return time.Duration(s.cfg.Cache.OverviewTTLSec) * time.Second
}

func (s *Service) agentsTTL() time.Duration {
	return time.Duration(s.cfg.Cache.AgentsTTLSec) * time.Second
}

func (s *Service) pixelTTL() time.Duration {
	return time.Duration(s.cfg.Cache.PixelTTLSec) * time.Second
}

// cached runs compute through the TTL cache, asserting the result type.
// Aggregators never fail, so compute is plain and the error path is unused.
func cached[T any](s *Service, key string, ttl time.Duration, compute func() T) T {
	v, _ := s.cache.Do(key, ttl, func() (any, error) {
		return compute(), nil
	})
	return v.(T)
}

// Sessions returns the full session corpus, most recent first.
func (s *Service) Sessions() []model.SessionInfo {
	return cached(s, "sessions", s.sessionsTTL(), s.corpus.Sessions)
}

// SessionsByProject returns the sessions of one project.
func (s *Service) SessionsByProject(projectName string) []model.SessionInfo {
	var out []model.SessionInfo
	for _, sess := range s.Sessions() {
		if sess.ProjectName == projectName {
			out = append(out, sess)
		}
	}
	return out
}

// SessionDetail reads the full transcript for one session id.
func (s *Service) SessionDetail(sessionID string) (*session.Detail, error) {
	return s.corpus.SessionDetail(sessionID)
}

// FindSessionFile resolves a session id to its transcript path.
func (s *Service) FindSessionFile(sessionID string) (string, string, error) {
	return s.corpus.FindSessionFile(sessionID)
}

// ProjectsDir returns the projects root the service scans.
func (s *Service) ProjectsDir() string {
	return s.projectsDir()
}

// SearchSessions filters the corpus by a free-text query.
func (s *Service) SearchSessions(query string) []model.SessionInfo {
	return session.Search(s.Sessions(), query)
}

// InvalidateAll drops every cached aggregate, forcing recomputation on the
// next request. The per-file mtime memo below the corpus is unaffected.
func (s *Service) InvalidateAll() {
	s.cache.Clear()
}

// displayTime renders an ISO-8601 UTC timestamp in the display timezone.
// Strings too short or unparseable pass through unchanged.
func (s *Service) displayTime(iso, layout string) string {
	if len(iso) < 16 {
		return iso
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.In(s.loc).Format(layout)
}

const (
	dateTimeLayout = "2006-01-02 15:04"
	dateLayout     = "2006-01-02"
)

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
