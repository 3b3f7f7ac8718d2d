package stats

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/kyoungmook/claude-dashboard/internal/config"
	"github.com/kyoungmook/claude-dashboard/internal/model"
)

// statsSnapshot is the wire shape of stats-cache.json, a pre-aggregated
// snapshot maintained by the assistant itself. Absence yields an empty
// overview, never an error.
type statsSnapshot struct {
	TotalSessions    int                      `json:"totalSessions"`
	TotalMessages    int                      `json:"totalMessages"`
	FirstSessionDate string                   `json:"firstSessionDate"`
	DailyActivity    []snapshotDaily          `json:"dailyActivity"`
	ModelUsage       map[string]snapshotUsage `json:"modelUsage"`
	HourCounts       map[string]int           `json:"hourCounts"`
	LongestSession   snapshotLongest          `json:"longestSession"`
}

type snapshotDaily struct {
	Date          string `json:"date"`
	MessageCount  int    `json:"messageCount"`
	SessionCount  int    `json:"sessionCount"`
	ToolCallCount int    `json:"toolCallCount"`
}

type snapshotUsage struct {
	InputTokens              int64 `json:"inputTokens"`
	OutputTokens             int64 `json:"outputTokens"`
	CacheReadInputTokens     int64 `json:"cacheReadInputTokens"`
	CacheCreationInputTokens int64 `json:"cacheCreationInputTokens"`
}

type snapshotLongest struct {
	SessionID    string `json:"sessionId"`
	DurationMs   int64  `json:"duration"`
	MessageCount int    `json:"messageCount"`
}

func loadStatsSnapshot(path string) (statsSnapshot, bool) {
	var snap statsSnapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return snap, false
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, false
	}
	return snap, true
}

// Overview returns the dashboard summary: the external snapshot's historical
// totals supplemented with per-session data newer than the snapshot covers.
func (s *Service) Overview() model.OverviewStats {
	return cached(s, "overview", s.overviewTTL(), s.overview)
}

func (s *Service) overview() model.OverviewStats {
	snap, ok := loadStatsSnapshot(s.statsCachePath())
	if !ok {
		return model.OverviewStats{}
	}

	daily := make([]model.DailyActivity, 0, len(snap.DailyActivity))
	for _, d := range snap.DailyActivity {
		daily = append(daily, model.DailyActivity{
			Date:          d.Date,
			MessageCount:  d.MessageCount,
			SessionCount:  d.SessionCount,
			ToolCallCount: d.ToolCallCount,
		})
	}
	daily = s.supplementDaily(daily)

	modelIDs := make([]string, 0, len(snap.ModelUsage))
	for id := range snap.ModelUsage {
		modelIDs = append(modelIDs, id)
	}
	sort.Strings(modelIDs)

	var modelUsage []model.ModelUsageStats
	totalCost := 0.0
	for _, id := range modelIDs {
		u := snap.ModelUsage[id]
		cost := config.CostForUsage(model.TokenUsage{
			InputTokens:              u.InputTokens,
			OutputTokens:             u.OutputTokens,
			CacheReadInputTokens:     u.CacheReadInputTokens,
			CacheCreationInputTokens: u.CacheCreationInputTokens,
		}, id)
		totalCost += cost
		modelUsage = append(modelUsage, model.ModelUsageStats{
			ModelID:                  id,
			DisplayName:              config.ModelDisplayName(id),
			InputTokens:              u.InputTokens,
			OutputTokens:             u.OutputTokens,
			CacheReadInputTokens:     u.CacheReadInputTokens,
			CacheCreationInputTokens: u.CacheCreationInputTokens,
			CostUSD:                  cost,
		})
	}

	totalToolCalls := 0
	supplementedSessions := 0
	supplementedMessages := 0
	for _, d := range daily {
		totalToolCalls += d.ToolCallCount
		supplementedSessions += d.SessionCount
		supplementedMessages += d.MessageCount
	}
	totalSessions := snap.TotalSessions
	if supplementedSessions > totalSessions {
		totalSessions = supplementedSessions
	}
	totalMessages := snap.TotalMessages
	if supplementedMessages > totalMessages {
		totalMessages = supplementedMessages
	}

	avgMessages := 0.0
	if totalSessions > 0 {
		avgMessages = round1(float64(totalMessages) / float64(totalSessions))
	}

	return model.OverviewStats{
		TotalSessions:    totalSessions,
		TotalMessages:    totalMessages,
		TotalToolCalls:   totalToolCalls,
		FirstSessionDate: snap.FirstSessionDate,
		DailyActivity:    daily,
		ModelUsage:       modelUsage,
		HourCounts:       snap.HourCounts,
		TotalCostUSD:     config.Round2(totalCost),
		LongestSession: model.LongestSession{
			SessionID:     snap.LongestSession.SessionID,
			DurationHours: round1(float64(snap.LongestSession.DurationMs) / 3_600_000),
			MessageCount:  snap.LongestSession.MessageCount,
		},
		AvgMessagesPerSession: avgMessages,
		ActiveDays:            len(daily),
	}
}

// supplementDaily appends activity for dates strictly after the snapshot's
// latest covered date, so fresh sessions show before the snapshot refreshes.
func (s *Service) supplementDaily(snapshotDaily []model.DailyActivity) []model.DailyActivity {
	lastDate := ""
	for _, d := range snapshotDaily {
		if d.Date > lastDate {
			lastDate = d.Date
		}
	}

	type bucket struct {
		messages int
		sessions int
		tools    int
	}
	buckets := make(map[string]*bucket)
	for _, sess := range s.Sessions() {
		if len(sess.FirstTimestamp) < 10 {
			continue
		}
		date := sess.FirstTimestamp[:10]
		if date <= lastDate {
			continue
		}
		b := buckets[date]
		if b == nil {
			b = &bucket{}
			buckets[date] = b
		}
		b.messages += sess.MessageCount
		b.sessions++
		b.tools += sess.ToolCallsCount
	}
	if len(buckets) == 0 {
		return snapshotDaily
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	out := snapshotDaily
	for _, date := range dates {
		b := buckets[date]
		out = append(out, model.DailyActivity{
			Date:          date,
			MessageCount:  b.messages,
			SessionCount:  b.sessions,
			ToolCallCount: b.tools,
		})
	}
	return out
}
