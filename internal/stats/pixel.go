package stats

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kyoungmook/claude-dashboard/internal/model"
	"github.com/kyoungmook/claude-dashboard/internal/session"
	"github.com/kyoungmook/claude-dashboard/internal/watch"
)

// Recency windows for the pixel-office board. Subagents terminate quickly,
// so their window is much shorter than top-level sessions.
const (
	sessionActiveWindow  = 300 * time.Second
	subagentActiveWindow = 60 * time.Second
)

type activeFile struct {
	path        string
	projectName string
	mtime       time.Time
	teamName    string
}

func (a activeFile) stem() string {
	return strings.TrimSuffix(filepath.Base(a.path), ".jsonl")
}

// ActiveAgents returns the live status board: every recently-modified
// transcript resolved to a desk, with its state inferred from tail bytes.
func (s *Service) ActiveAgents() []model.PixelAgentState {
	return cached(s, "active_agents", s.pixelTTL(), s.activeAgents)
}

func (s *Service) activeAgents() []model.PixelAgentState {
	files := s.findActiveFiles()
	sort.Slice(files, func(i, j int) bool { return files[i].stem() < files[j].stem() })

	memberships := s.teamMemberships()
	for i := range files {
		files[i].teamName = resolveTeamName(files[i].path, memberships)
	}

	// Team members occupy contiguous desk ranges ahead of solo agents.
	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i], files[j]
		if (a.teamName == "") != (b.teamName == "") {
			return a.teamName != ""
		}
		if a.teamName != b.teamName {
			return a.teamName < b.teamName
		}
		return a.stem() < b.stem()
	})

	agents := make([]model.PixelAgentState, 0, len(files))
	for deskIndex, f := range files {
		inferred := watch.InferState(f.path)
		stem := f.stem()
		agents = append(agents, model.PixelAgentState{
			AgentID:        stem,
			ProjectName:    f.projectName,
			State:          inferred.State,
			ToolName:       inferred.ToolName,
			ToolStatus:     inferred.Status,
			Model:          inferred.Model,
			DeskIndex:      deskIndex,
			LastActivityTS: f.mtime.In(s.loc).Format(dateTimeLayout),
			SessionID:      stem,
			IsSubagent:     inferred.IsSubagent,
			TeamName:       f.teamName,
		})
	}
	return agents
}

func (s *Service) findActiveFiles() []activeFile {
	now := s.now()
	var active []activeFile

	entries, err := os.ReadDir(s.projectsDir())
	if err != nil {
		return nil
	}
	for _, project := range entries {
		if !project.IsDir() {
			continue
		}
		projectName := session.DecodeProjectName(project.Name())
		projectDir := filepath.Join(s.projectsDir(), project.Name())

		files, err := os.ReadDir(projectDir)
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".jsonl") {
				continue
			}
			fi, err := f.Info()
			if err != nil {
				continue
			}
			if now.Sub(fi.ModTime()) < sessionActiveWindow {
				active = append(active, activeFile{
					path:        filepath.Join(projectDir, f.Name()),
					projectName: projectName,
					mtime:       fi.ModTime(),
				})
			}
		}

		for _, sessDir := range files {
			if !sessDir.IsDir() {
				continue
			}
			subagentsDir := filepath.Join(projectDir, sessDir.Name(), "subagents")
			subFiles, err := os.ReadDir(subagentsDir)
			if err != nil {
				continue
			}
			for _, f := range subFiles {
				if f.IsDir() || !strings.HasSuffix(f.Name(), ".jsonl") {
					continue
				}
				fi, err := f.Info()
				if err != nil {
					continue
				}
				if now.Sub(fi.ModTime()) < subagentActiveWindow {
					active = append(active, activeFile{
						path:        filepath.Join(subagentsDir, f.Name()),
						projectName: projectName,
						mtime:       fi.ModTime(),
					})
				}
			}
		}
	}
	return active
}

// resolveTeamName maps a transcript file to a team: either it is a lead
// session itself, or it sits under <lead>/subagents/ and inherits the lead's
// team.
func resolveTeamName(path string, memberships map[string]string) string {
	stem := strings.TrimSuffix(filepath.Base(path), ".jsonl")
	if name, ok := memberships[stem]; ok {
		return name
	}
	parent := filepath.Dir(path)
	if filepath.Base(parent) == "subagents" {
		lead := filepath.Base(filepath.Dir(parent))
		if name, ok := memberships[lead]; ok {
			return name
		}
	}
	return ""
}
