package stats

import (
	"path/filepath"
	"testing"
)

func TestOverview_NoSnapshot(t *testing.T) {
	svc := newTestService(t, t.TempDir())
	ov := svc.Overview()
	if ov.TotalSessions != 0 || len(ov.DailyActivity) != 0 {
		t.Errorf("overview without snapshot = %+v, want zero value", ov)
	}
}

func TestOverview_SnapshotTotals(t *testing.T) {
	claudeDir := t.TempDir()
	writeJSONFile(t, filepath.Join(claudeDir, "stats-cache.json"), map[string]any{
		"totalSessions":    10,
		"totalMessages":    200,
		"firstSessionDate": "2025-05-01",
		"dailyActivity": []map[string]any{
			{"date": "2025-06-01", "messageCount": 40, "sessionCount": 3, "toolCallCount": 12},
		},
		"modelUsage": map[string]any{
			"claude-sonnet-4-5": map[string]any{
				"inputTokens": 1000000, "outputTokens": 1000000,
				"cacheReadInputTokens": 0, "cacheCreationInputTokens": 0,
			},
		},
		"longestSession": map[string]any{
			"sessionId": leadSessionID, "duration": 7200000, "messageCount": 80,
		},
	})

	ov := newTestService(t, claudeDir).Overview()

	if ov.TotalSessions != 10 || ov.TotalMessages != 200 {
		t.Errorf("totals = %d/%d", ov.TotalSessions, ov.TotalMessages)
	}
	if len(ov.ModelUsage) != 1 {
		t.Fatalf("ModelUsage = %+v", ov.ModelUsage)
	}
	// Sonnet: 1M in + 1M out = $3 + $15
	if ov.ModelUsage[0].CostUSD != 18.0 || ov.TotalCostUSD != 18.0 {
		t.Errorf("cost = %v / %v, want 18.0", ov.ModelUsage[0].CostUSD, ov.TotalCostUSD)
	}
	if ov.ModelUsage[0].DisplayName != "Sonnet 4.5" {
		t.Errorf("DisplayName = %q", ov.ModelUsage[0].DisplayName)
	}
	if ov.LongestSession.DurationHours != 2.0 {
		t.Errorf("DurationHours = %v, want 2.0", ov.LongestSession.DurationHours)
	}
	if ov.AvgMessagesPerSession != 20.0 {
		t.Errorf("AvgMessagesPerSession = %v", ov.AvgMessagesPerSession)
	}
	if ov.ActiveDays != 1 {
		t.Errorf("ActiveDays = %d", ov.ActiveDays)
	}
}

func TestOverview_SupplementsNewerDays(t *testing.T) {
	claudeDir := t.TempDir()
	writeJSONFile(t, filepath.Join(claudeDir, "stats-cache.json"), map[string]any{
		"totalSessions": 3,
		"totalMessages": 40,
		"dailyActivity": []map[string]any{
			{"date": "2025-06-01", "messageCount": 40, "sessionCount": 3, "toolCallCount": 2},
		},
		"modelUsage": map[string]any{},
	})

	// One session on the snapshot's last day (must not double count) and one
	// the day after (must appear).
	writeLines(t, sessionPath(claudeDir, "-tmp-proj", leadSessionID),
		transcriptLines(leadSessionID, "2025-06-01T23:00:00Z", "claude-sonnet-4-5", `{"input_tokens":10}`)...)
	writeLines(t, sessionPath(claudeDir, "-tmp-proj", soloSessionID),
		transcriptLines(soloSessionID, "2025-06-02T09:00:00Z", "claude-sonnet-4-5", `{"input_tokens":10}`)...)

	ov := newTestService(t, claudeDir).Overview()

	if len(ov.DailyActivity) != 2 {
		t.Fatalf("DailyActivity = %+v, want snapshot day + supplemented day", ov.DailyActivity)
	}
	last := ov.DailyActivity[1]
	if last.Date != "2025-06-02" || last.SessionCount != 1 || last.MessageCount != 2 {
		t.Errorf("supplemented day = %+v", last)
	}
	// snapshot totals still dominate: 3 snapshot + 1 new = 4 sessions
	if ov.TotalSessions != 4 {
		t.Errorf("TotalSessions = %d, want 4", ov.TotalSessions)
	}
	if ov.ActiveDays != 2 {
		t.Errorf("ActiveDays = %d", ov.ActiveDays)
	}
}
