package stats

import (
	"testing"
)

func TestProjects_Rollup(t *testing.T) {
	claudeDir := t.TempDir()
	writeLines(t, sessionPath(claudeDir, "-tmp-alpha", leadSessionID),
		transcriptLines(leadSessionID, "2025-06-01T10:00:00Z", "claude-sonnet-4-5",
			`{"input_tokens":1000000}`)...)
	writeLines(t, sessionPath(claudeDir, "-tmp-beta", soloSessionID),
		transcriptLines(soloSessionID, "2025-06-02T10:00:00Z", "claude-sonnet-4-5",
			`{"input_tokens":500000}`)...)

	projects := newTestService(t, claudeDir).Projects()
	if len(projects) != 2 {
		t.Fatalf("len(projects) = %d, want 2", len(projects))
	}
	// Most recent activity first.
	if projects[0].ProjectName != "tmp-beta" {
		t.Errorf("projects[0] = %s", projects[0].ProjectName)
	}
	alpha := projects[1]
	if alpha.SessionCount != 1 || alpha.TotalMessages != 2 || alpha.ToolCallsCount != 1 {
		t.Errorf("alpha = %+v", alpha)
	}
	// 1M sonnet input: $3.00
	if alpha.TotalCostUSD != 3.0 {
		t.Errorf("alpha cost = %v, want 3.0", alpha.TotalCostUSD)
	}
}

func TestProjects_BlendedCostAcrossModels(t *testing.T) {
	claudeDir := t.TempDir()
	// Two sessions in one project on different models. The union usage is
	// 1M input + 1M output; blended = (sonnet $18 + opus $90) / 2 = $54.
	writeLines(t, sessionPath(claudeDir, "-tmp-alpha", leadSessionID),
		transcriptLines(leadSessionID, "2025-06-01T10:00:00Z", "claude-sonnet-4-5",
			`{"input_tokens":1000000}`)...)
	writeLines(t, sessionPath(claudeDir, "-tmp-alpha", soloSessionID),
		transcriptLines(soloSessionID, "2025-06-01T11:00:00Z", "claude-opus-4-5",
			`{"output_tokens":1000000}`)...)

	projects := newTestService(t, claudeDir).Projects()
	if len(projects) != 1 {
		t.Fatalf("len(projects) = %d, want 1", len(projects))
	}
	p := projects[0]
	if len(p.ModelsUsed) != 2 {
		t.Fatalf("ModelsUsed = %v", p.ModelsUsed)
	}
	if p.TotalCostUSD != 54.0 {
		t.Errorf("blended cost = %v, want 54.0", p.TotalCostUSD)
	}
}

func TestToolUsage(t *testing.T) {
	claudeDir := t.TempDir()
	writeLines(t, sessionPath(claudeDir, "-tmp-alpha", leadSessionID),
		`{"type":"user","sessionId":"`+leadSessionID+`","timestamp":"2025-06-01T10:00:00Z","message":{"content":"padding padding padding padding padding padding"}}`,
		`{"type":"assistant","timestamp":"2025-06-01T10:00:01Z","message":{"content":[{"type":"tool_use","name":"Read"},{"type":"tool_use","name":"Read"},{"type":"tool_use","name":"Bash"}]}}`,
	)

	usage := newTestService(t, claudeDir).ToolUsage()
	if len(usage) != 2 {
		t.Fatalf("usage = %+v", usage)
	}
	if usage[0].Name != "Read" || usage[0].CallCount != 2 || usage[0].SessionCount != 1 {
		t.Errorf("usage[0] = %+v", usage[0])
	}
	if usage[0].AvgPerSession != 2.0 {
		t.Errorf("AvgPerSession = %v", usage[0].AvgPerSession)
	}
	if usage[1].Name != "Bash" {
		t.Errorf("usage[1] = %+v", usage[1])
	}
}

func TestToolUsageBySession_SkipsToollessSessions(t *testing.T) {
	claudeDir := t.TempDir()
	writeLines(t, sessionPath(claudeDir, "-tmp-alpha", leadSessionID),
		transcriptLines(leadSessionID, "2025-06-01T10:00:00Z", "claude-sonnet-4-5", `{}`)...)
	writeLines(t, sessionPath(claudeDir, "-tmp-alpha", soloSessionID),
		`{"type":"user","sessionId":"`+soloSessionID+`","timestamp":"2025-06-02T10:00:00Z","message":{"content":"no tools used in this session at all, just words"}}`,
	)

	got := newTestService(t, claudeDir).ToolUsageBySession()
	if len(got) != 1 || got[0].SessionID != leadSessionID {
		t.Errorf("got = %+v, want only the tool-using session", got)
	}
	if got[0].Date != "2025-06-01" {
		t.Errorf("Date = %q", got[0].Date)
	}
}
