package stats

import (
	"sort"

	"github.com/kyoungmook/claude-dashboard/internal/model"
)

const toolSessionsLimit = 50

// ToolUsage returns per-tool call counts across the corpus, ordered by call
// count. The average is calls divided by the number of sessions that used
// the tool at least once.
func (s *Service) ToolUsage() []model.ToolUsage {
	return cached(s, "tool_usage", s.sessionsTTL(), func() []model.ToolUsage {
		counts := make(map[string]int)
		toolSessions := make(map[string]map[string]bool)

		for _, sess := range s.Sessions() {
			for _, name := range sess.ToolNames {
				counts[name]++
				if toolSessions[name] == nil {
					toolSessions[name] = make(map[string]bool)
				}
				toolSessions[name][sess.SessionID] = true
			}
		}

		out := make([]model.ToolUsage, 0, len(counts))
		for name, count := range counts {
			sessions := len(toolSessions[name])
			avg := 0.0
			if sessions > 0 {
				avg = round1(float64(count) / float64(sessions))
			}
			out = append(out, model.ToolUsage{
				Name:          name,
				CallCount:     count,
				SessionCount:  sessions,
				AvgPerSession: avg,
			})
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].CallCount != out[j].CallCount {
				return out[i].CallCount > out[j].CallCount
			}
			return out[i].Name < out[j].Name
		})
		return out
	})
}

// ToolUsageBySession lists the most recent tool-using sessions.
func (s *Service) ToolUsageBySession() []model.SessionToolUsage {
	return cached(s, "tool_usage_by_session", s.sessionsTTL(), func() []model.SessionToolUsage {
		var out []model.SessionToolUsage
		for _, sess := range s.Sessions() {
			if sess.ToolCallsCount == 0 {
				continue
			}
			date := ""
			if sess.FirstTimestamp != "" {
				date = s.displayTime(sess.FirstTimestamp, dateLayout)
			}
			out = append(out, model.SessionToolUsage{
				SessionID:      sess.SessionID,
				ProjectName:    sess.ProjectName,
				ToolCallsCount: sess.ToolCallsCount,
				Date:           date,
			})
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
		if len(out) > toolSessionsLimit {
			out = out[:toolSessionsLimit]
		}
		return out
	})
}
