package web

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/kyoungmook/claude-dashboard/internal/model"
)

const sessionsPageSize = 20

type pageData struct {
	Title     string
	UpdatedAt string
	Data      any
}

func (s *Server) render(w http.ResponseWriter, name, title string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.tmpl.ExecuteTemplate(w, name, pageData{
		Title:     title,
		UpdatedAt: time.Now().Format("15:04:05"),
		Data:      data,
	})
	if err != nil {
		log.Printf("render %s: %v", name, err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type overviewView struct {
	Stats      model.OverviewStats
	DailyJSON  template.JS
	ModelsJSON template.JS
}

// toJSON marshals a chart payload for inline script embedding.
func toJSON(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return template.JS(b)
}

func (s *Server) handleOverview(w http.ResponseWriter, _ *http.Request) {
	stats := s.stats.Overview()
	s.render(w, "overview", "Overview", overviewView{
		Stats:      stats,
		DailyJSON:  toJSON(stats.DailyActivity),
		ModelsJSON: toJSON(stats.ModelUsage),
	})
}

type sessionsView struct {
	Sessions   []model.SessionInfo
	Query      string
	Page       int
	PrevPage   int
	NextPage   int
	TotalPages int
	Total      int
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	sessions := s.stats.Sessions()
	if q != "" {
		sessions = s.stats.SearchSessions(q)
	}
	total := len(sessions)
	totalPages := (total + sessionsPageSize - 1) / sessionsPageSize
	if totalPages < 1 {
		totalPages = 1
	}
	start := (page - 1) * sessionsPageSize
	if start > total {
		start = total
	}
	end := start + sessionsPageSize
	if end > total {
		end = total
	}

	s.render(w, "sessions", "Sessions", sessionsView{
		Sessions:   sessions[start:end],
		Query:      q,
		Page:       page,
		PrevPage:   page - 1,
		NextPage:   page + 1,
		TotalPages: totalPages,
		Total:      total,
	})
}

func (s *Server) handleSessionDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	detail, err := s.stats.SessionDetail(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	visible := make([]model.Message, 0, len(detail.Messages))
	for _, m := range detail.Messages {
		if !m.IsMeta {
			visible = append(visible, m)
		}
	}
	s.render(w, "session_detail", "Session "+shortID(id), struct {
		Info     model.SessionInfo
		Messages []model.Message
	}{detail.Info, visible})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (s *Server) handleLive(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "live", "Live", nil)
}

type tokensView struct {
	Daily      []model.DailyTokens
	ModelCosts []model.ModelCost
	Cache      model.CacheEfficiency
	DailyJSON  template.JS
}

func (s *Server) handleTokens(w http.ResponseWriter, _ *http.Request) {
	daily := s.stats.DailyTokens()
	s.render(w, "tokens", "Tokens & Cost", tokensView{
		Daily:      daily,
		ModelCosts: s.stats.ModelCosts(),
		Cache:      s.stats.CacheEfficiency(),
		DailyJSON:  toJSON(daily),
	})
}

func (s *Server) handleTools(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "tools", "Tools", struct {
		Usage      []model.ToolUsage
		BySessions []model.SessionToolUsage
	}{s.stats.ToolUsage(), s.stats.ToolUsageBySession()})
}

func (s *Server) handleProjects(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "projects", "Projects", s.stats.Projects())
}

func (s *Server) handleProjectDetail(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	sessions := s.stats.SessionsByProject(name)
	if len(sessions) == 0 {
		http.NotFound(w, r)
		return
	}
	s.render(w, "project_detail", name, struct {
		ProjectName string
		Sessions    []model.SessionInfo
	}{name, sessions})
}

func (s *Server) handleTasks(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "tasks", "Tasks", s.stats.TaskLists())
}

func (s *Server) handleAgents(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "agents", "Agents", struct {
		Analytics   []model.AgentStats
		Definitions []model.AgentDefinition
	}{s.stats.AgentAnalytics(), s.stats.AgentDefinitions()})
}

func (s *Server) handleAgentDetail(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	def, agentStats, activities, projectDist := s.stats.AgentDetail(name)
	if agentStats == nil && def == nil {
		http.NotFound(w, r)
		return
	}
	s.render(w, "agent_detail", "Agent "+name, struct {
		Name        string
		Definition  *model.AgentDefinition
		Stats       *model.AgentStats
		Activities  []model.SubagentActivity
		ProjectDist map[string]int
	}{name, def, agentStats, activities, projectDist})
}

func (s *Server) handleTeams(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "teams", "Teams", struct {
		Teams    []model.Team
		Sessions []model.TeamSession
	}{s.stats.Teams(), s.stats.TeamSessions()})
}

func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	events := s.stats.ReplayEvents(id)
	s.render(w, "replay", "Replay "+shortID(id), struct {
		SessionID string
		Events    []model.ReplayEvent
	}{id, events})
}

func (s *Server) handlePixelOffice(w http.ResponseWriter, _ *http.Request) {
	agents := s.stats.ActiveAgents()
	s.render(w, "pixel_office", "Office", struct {
		Agents     []model.PixelAgentState
		AgentsJSON template.JS
	}{agents, toJSON(agents)})
}

func (s *Server) apiOverview(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.stats.Overview())
}

func (s *Server) apiSessions(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		writeJSON(w, s.stats.SearchSessions(q))
		return
	}
	writeJSON(w, s.stats.Sessions())
}

func (s *Server) apiProjects(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.stats.Projects())
}

func (s *Server) apiTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.stats.ToolUsage())
}

func (s *Server) apiDailyTokens(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.stats.DailyTokens())
}

func (s *Server) apiModelCosts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.stats.ModelCosts())
}

func (s *Server) apiCacheEfficiency(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.stats.CacheEfficiency())
}

func (s *Server) apiAgents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.stats.AgentAnalytics())
}

func (s *Server) apiTeams(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.stats.TeamSessions())
}

func (s *Server) apiTasks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.stats.TaskLists())
}

func (s *Server) apiPixelOffice(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.stats.ActiveAgents())
}

func (s *Server) apiReplay(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.stats.ReplayEvents(r.PathValue("id")))
}
