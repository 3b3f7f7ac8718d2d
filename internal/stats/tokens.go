package stats

import (
	"sort"

	"github.com/kyoungmook/claude-dashboard/internal/config"
	"github.com/kyoungmook/claude-dashboard/internal/model"
)

// DailyTokens returns per-day token totals by kind, keyed by the display
// timezone's calendar date.
func (s *Service) DailyTokens() []model.DailyTokens {
	return cached(s, "daily_tokens", s.overviewTTL(), func() []model.DailyTokens {
		daily := make(map[string]*model.DailyTokens)
		for _, sess := range s.Sessions() {
			if sess.FirstTimestamp == "" {
				continue
			}
			date := s.displayTime(sess.FirstTimestamp, dateLayout)
			d := daily[date]
			if d == nil {
				d = &model.DailyTokens{Date: date}
				daily[date] = d
			}
			d.Input += sess.TotalUsage.InputTokens
			d.Output += sess.TotalUsage.OutputTokens
			d.CacheRead += sess.TotalUsage.CacheReadInputTokens
			d.CacheCreation += sess.TotalUsage.CacheCreationInputTokens
		}

		out := make([]model.DailyTokens, 0, len(daily))
		for _, d := range daily {
			out = append(out, *d)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
		return out
	})
}

// ModelCosts returns session-derived token totals and cost per model. A
// session's full usage is attributed to every model it used; the per-message
// split is not recorded in the rollup.
func (s *Service) ModelCosts() []model.ModelCost {
	return cached(s, "model_costs", s.overviewTTL(), func() []model.ModelCost {
		totals := make(map[string]model.TokenUsage)
		for _, sess := range s.Sessions() {
			for _, m := range sess.ModelsUsed {
				totals[m] = totals[m].Add(sess.TotalUsage)
			}
		}

		ids := make([]string, 0, len(totals))
		for id := range totals {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		out := make([]model.ModelCost, 0, len(ids))
		for _, id := range ids {
			u := totals[id]
			out = append(out, model.ModelCost{
				ModelID:             id,
				DisplayName:         config.ModelDisplayName(id),
				InputTokens:         u.InputTokens,
				OutputTokens:        u.OutputTokens,
				CacheReadTokens:     u.CacheReadInputTokens,
				CacheCreationTokens: u.CacheCreationInputTokens,
				CostUSD:             config.CostForUsage(u, id),
			})
		}
		return out
	})
}

// CacheEfficiency summarizes how much of the total input-side token volume
// was served from the prompt cache.
func (s *Service) CacheEfficiency() model.CacheEfficiency {
	return cached(s, "cache_efficiency", s.overviewTTL(), func() model.CacheEfficiency {
		var eff model.CacheEfficiency
		for _, sess := range s.Sessions() {
			eff.CacheReadTokens += sess.TotalUsage.CacheReadInputTokens
			eff.CacheCreationTokens += sess.TotalUsage.CacheCreationInputTokens
			eff.DirectInputTokens += sess.TotalUsage.InputTokens
		}
		eff.TotalInputTokens = eff.DirectInputTokens + eff.CacheReadTokens + eff.CacheCreationTokens
		if eff.TotalInputTokens > 0 {
			eff.EfficiencyPct = round1(float64(eff.CacheReadTokens) / float64(eff.TotalInputTokens) * 100)
		}
		return eff
	})
}
