package stats

import (
	"sort"

	"github.com/kyoungmook/claude-dashboard/internal/config"
	"github.com/kyoungmook/claude-dashboard/internal/model"
)

// Projects groups sessions by project and rolls up their usage. When a
// project used more than one model, cost is blended: the union token totals
// are priced under every model and averaged across them. This is a known
// approximation, not per-message attribution.
func (s *Service) Projects() []model.ProjectStats {
	return cached(s, "projects", s.overviewTTL(), func() []model.ProjectStats {
		type bucket struct {
			stats  model.ProjectStats
			models map[string]bool
		}
		projects := make(map[string]*bucket)

		for _, sess := range s.Sessions() {
			b := projects[sess.ProjectName]
			if b == nil {
				b = &bucket{
					stats: model.ProjectStats{
						ProjectPath: sess.ProjectPath,
						ProjectName: sess.ProjectName,
					},
					models: make(map[string]bool),
				}
				projects[sess.ProjectName] = b
			}
			b.stats.SessionCount++
			b.stats.TotalMessages += sess.MessageCount
			b.stats.TotalUsage = b.stats.TotalUsage.Add(sess.TotalUsage)
			b.stats.ToolCallsCount += sess.ToolCallsCount
			for _, m := range sess.ModelsUsed {
				b.models[m] = true
			}
			if sess.LastTimestamp > b.stats.LastActivity {
				b.stats.LastActivity = sess.LastTimestamp
			}
		}

		out := make([]model.ProjectStats, 0, len(projects))
		for _, b := range projects {
			cost := 0.0
			for m := range b.models {
				cost += rawCost(b.stats.TotalUsage, m)
			}
			if len(b.models) > 1 {
				cost /= float64(len(b.models))
			}
			b.stats.TotalCostUSD = config.Round2(cost)

			models := make([]string, 0, len(b.models))
			for m := range b.models {
				models = append(models, m)
			}
			sort.Strings(models)
			b.stats.ModelsUsed = models

			out = append(out, b.stats)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].LastActivity > out[j].LastActivity })
		return out
	})
}

// rawCost prices a usage under one model without rounding, so blending
// happens before the final 2-decimal round.
func rawCost(u model.TokenUsage, modelID string) float64 {
	p := config.LookupPricing(modelID)
	return float64(u.InputTokens)*p.InputPerMTok/1_000_000 +
		float64(u.OutputTokens)*p.OutputPerMTok/1_000_000 +
		float64(u.CacheReadInputTokens)*p.CacheReadPerMTok/1_000_000 +
		float64(u.CacheCreationInputTokens)*p.CacheCreationPerMTok/1_000_000
}
