package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const (
	readingLine = `{"type":"assistant","message":{"model":"claude-sonnet-4-5","content":[{"type":"tool_use","name":"Read","input":{"file_path":"/src/main.go"}}]}}`
	userLine    = `{"type":"user","message":{"role":"user","content":"keep going"}}`
	subToolLine = `{"parentToolUseID":"tu_01","type":"assistant","message":{"model":"claude-haiku-4-5","content":[{"type":"tool_use","name":"Edit","input":{"file_path":"/src/fix.go"}}]}}`
)

func writeTeamConfig(t *testing.T, claudeDir, dirName string, cfg map[string]any) {
	t.Helper()
	writeJSONFile(t, filepath.Join(claudeDir, "teams", dirName, "config.json"), cfg)
}

func TestActiveAgents_DeskOrderAndTeams(t *testing.T) {
	claudeDir := t.TempDir()
	svc := newTestService(t, claudeDir)

	writeLines(t, sessionPath(claudeDir, "-tmp-alpha", leadSessionID), userLine)
	writeLines(t, sessionPath(claudeDir, "-tmp-alpha", soloSessionID), readingLine)
	subPath := filepath.Join(claudeDir, "projects", "-tmp-alpha", leadSessionID, "subagents", "agent-x.jsonl")
	writeLines(t, subPath, subToolLine)

	writeTeamConfig(t, claudeDir, "alpha", map[string]any{
		"name":          "alpha-team",
		"leadSessionId": leadSessionID,
		"members":       []any{},
	})

	agents := svc.ActiveAgents()
	if len(agents) != 3 {
		t.Fatalf("len(agents) = %d, want 3", len(agents))
	}

	// Team desks come first, ordered by file stem within the team.
	lead := agents[0]
	if lead.AgentID != leadSessionID || lead.TeamName != "alpha-team" {
		t.Errorf("desk 0 = %q team %q, want lead session in alpha-team", lead.AgentID, lead.TeamName)
	}
	if lead.DeskIndex != 0 {
		t.Errorf("lead DeskIndex = %d, want 0", lead.DeskIndex)
	}
	if lead.State != "typing" || lead.ToolStatus != "generating response..." {
		t.Errorf("lead state = %q/%q, want typing after a user record", lead.State, lead.ToolStatus)
	}

	sub := agents[1]
	if sub.AgentID != "agent-x" || sub.TeamName != "alpha-team" {
		t.Errorf("desk 1 = %q team %q, want agent-x in alpha-team", sub.AgentID, sub.TeamName)
	}
	if !sub.IsSubagent {
		t.Error("subagent transcript not flagged IsSubagent")
	}
	if sub.State != "typing" || sub.ToolName != "Edit" {
		t.Errorf("subagent state = %q tool %q, want typing/Edit", sub.State, sub.ToolName)
	}
	if sub.Model != "claude-haiku-4-5" {
		t.Errorf("subagent model = %q", sub.Model)
	}

	solo := agents[2]
	if solo.AgentID != soloSessionID || solo.TeamName != "" {
		t.Errorf("desk 2 = %q team %q, want solo session with no team", solo.AgentID, solo.TeamName)
	}
	if solo.State != "reading" || solo.ToolName != "Read" {
		t.Errorf("solo state = %q tool %q, want reading/Read", solo.State, solo.ToolName)
	}
	if solo.ProjectName != "tmp-alpha" {
		t.Errorf("ProjectName = %q, want tmp-alpha", solo.ProjectName)
	}
	for i, a := range agents {
		if a.DeskIndex != i {
			t.Errorf("agents[%d].DeskIndex = %d", i, a.DeskIndex)
		}
		if _, err := time.Parse(dateTimeLayout, a.LastActivityTS); err != nil {
			t.Errorf("agents[%d].LastActivityTS = %q: %v", i, a.LastActivityTS, err)
		}
	}
}

func TestActiveAgents_StaleSubagentExcluded(t *testing.T) {
	claudeDir := t.TempDir()
	svc := newTestService(t, claudeDir)

	sessPath := sessionPath(claudeDir, "-tmp-alpha", soloSessionID)
	writeLines(t, sessPath, readingLine)
	subPath := filepath.Join(claudeDir, "projects", "-tmp-alpha", soloSessionID, "subagents", "agent-y.jsonl")
	writeLines(t, subPath, subToolLine)

	// 2 minutes old: inside the 5-minute session window, past the 1-minute
	// subagent window.
	aged := time.Now().Add(-2 * time.Minute)
	if err := os.Chtimes(sessPath, aged, aged); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(subPath, aged, aged); err != nil {
		t.Fatal(err)
	}

	agents := svc.ActiveAgents()
	if len(agents) != 1 {
		t.Fatalf("len(agents) = %d, want 1", len(agents))
	}
	if agents[0].AgentID != soloSessionID {
		t.Errorf("AgentID = %q, want the session to survive the longer window", agents[0].AgentID)
	}
}

func TestActiveAgents_NoProjectsDir(t *testing.T) {
	svc := newTestService(t, t.TempDir())
	if got := svc.ActiveAgents(); len(got) != 0 {
		t.Errorf("ActiveAgents = %v, want empty", got)
	}
}

func TestResolveTeamName(t *testing.T) {
	memberships := map[string]string{leadSessionID: "alpha-team"}

	leadPath := filepath.Join("p", "-proj", leadSessionID+".jsonl")
	if got := resolveTeamName(leadPath, memberships); got != "alpha-team" {
		t.Errorf("lead resolveTeamName = %q, want alpha-team", got)
	}

	subPath := filepath.Join("p", "-proj", leadSessionID, "subagents", "agent-z.jsonl")
	if got := resolveTeamName(subPath, memberships); got != "alpha-team" {
		t.Errorf("subagent resolveTeamName = %q, want inherited alpha-team", got)
	}

	stray := filepath.Join("p", "-proj", soloSessionID+".jsonl")
	if got := resolveTeamName(stray, memberships); got != "" {
		t.Errorf("unknown resolveTeamName = %q, want empty", got)
	}
}
