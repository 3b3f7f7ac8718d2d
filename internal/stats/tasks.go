package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/kyoungmook/claude-dashboard/internal/model"
)

type taskFile struct {
	ID          json.RawMessage `json:"id"`
	Subject     string          `json:"subject"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
	ActiveForm  string          `json:"activeForm"`
	Blocks      []any           `json:"blocks"`
	BlockedBy   []any           `json:"blockedBy"`
}

type teamConfigFile struct {
	Name          string `json:"name"`
	LeadSessionID string `json:"leadSessionId"`
	Members       []struct {
		Name      string `json:"name"`
		AgentID   string `json:"agentId"`
		AgentType string `json:"agentType"`
	} `json:"members"`
}

// TaskLists reads every tasks/<list-id>/*.json list, most recently modified
// first. Lists with no parseable task are omitted.
func (s *Service) TaskLists() []model.TaskList {
	return cached(s, "task_lists", s.sessionsTTL(), func() []model.TaskList {
		entries, err := os.ReadDir(s.tasksDir())
		if err != nil {
			return nil
		}
		var out []model.TaskList
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			if tl := s.loadTaskList(filepath.Join(s.tasksDir(), e.Name())); tl != nil {
				out = append(out, *tl)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].LastModified > out[j].LastModified })
		return out
	})
}

func (s *Service) loadTaskList(dir string) *model.TaskList {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var tasks []model.TaskItem
	for _, name := range names {
		if item := parseTaskItem(filepath.Join(dir, name)); item != nil {
			tasks = append(tasks, *item)
		}
	}
	if len(tasks) == 0 {
		return nil
	}

	modified := ""
	if fi, err := os.Stat(dir); err == nil {
		modified = fi.ModTime().In(s.loc).Format("2006-01-02 15:04:05")
	}
	return &model.TaskList{
		ListID:       filepath.Base(dir),
		Tasks:        tasks,
		LastModified: modified,
	}
}

func parseTaskItem(path string) *model.TaskItem {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var tf taskFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil
	}
	id := rawScalarString(tf.ID)
	if id == "" {
		return nil
	}
	status := tf.Status
	if status == "" {
		status = "pending"
	}
	return &model.TaskItem{
		ID:          id,
		Subject:     tf.Subject,
		Status:      status,
		Description: tf.Description,
		ActiveForm:  tf.ActiveForm,
		Blocks:      anyToStrings(tf.Blocks),
		BlockedBy:   anyToStrings(tf.BlockedBy),
	}
}

// rawScalarString renders a JSON string or number id as text; ids are
// written either way by different tool versions.
func rawScalarString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var str string
	if json.Unmarshal(raw, &str) == nil {
		return str
	}
	var num json.Number
	if json.Unmarshal(raw, &num) == nil {
		return num.String()
	}
	return ""
}

func anyToStrings(vals []any) []string {
	var out []string
	for _, v := range vals {
		switch t := v.(type) {
		case string:
			out = append(out, t)
		case json.Number:
			out = append(out, t.String())
		case float64:
			out = append(out, strconv.FormatFloat(t, 'f', -1, 64))
		}
	}
	return out
}

// Teams reads every teams/<name>/config.json. Malformed configs are skipped.
func (s *Service) Teams() []model.Team {
	return cached(s, "teams", s.sessionsTTL(), func() []model.Team {
		entries, err := os.ReadDir(s.teamsDir())
		if err != nil {
			return nil
		}
		var out []model.Team
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			cfg, ok := readTeamConfig(filepath.Join(s.teamsDir(), e.Name(), "config.json"))
			if !ok {
				continue
			}
			team := model.Team{TeamName: e.Name()}
			for _, m := range cfg.Members {
				team.Members = append(team.Members, model.TeamMember{
					Name:      m.Name,
					AgentID:   m.AgentID,
					AgentType: m.AgentType,
				})
			}
			out = append(out, team)
		}
		return out
	})
}

func readTeamConfig(path string) (teamConfigFile, bool) {
	var cfg teamConfigFile
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, true
}

// teamMemberships maps lead session ids to team names for the active teams.
func (s *Service) teamMemberships() map[string]string {
	memberships := make(map[string]string)
	entries, err := os.ReadDir(s.teamsDir())
	if err != nil {
		return memberships
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		cfg, ok := readTeamConfig(filepath.Join(s.teamsDir(), e.Name(), "config.json"))
		if !ok || cfg.LeadSessionID == "" {
			continue
		}
		name := cfg.Name
		if name == "" {
			name = e.Name()
		}
		memberships[cfg.LeadSessionID] = name
	}
	return memberships
}
