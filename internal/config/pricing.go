package config

import (
	"math"
	"strings"

	"github.com/kyoungmook/claude-dashboard/internal/model"
)

// ModelPricing holds per-million-token prices and the display name of a model.
type ModelPricing struct {
	InputPerMTok         float64
	OutputPerMTok        float64
	CacheReadPerMTok     float64
	CacheCreationPerMTok float64
	DisplayName          string
}

// DefaultPricing maps model id markers to their pricing. Lookup is by
// substring match against the full model id, so dated ids like
// "claude-sonnet-4-5-20250929" resolve through their base name.
var DefaultPricing = map[string]ModelPricing{
	"claude-opus-4-6": {
		InputPerMTok: 15.0, OutputPerMTok: 75.0,
		CacheReadPerMTok: 1.50, CacheCreationPerMTok: 18.75,
		DisplayName: "Opus 4.6",
	},
	"claude-opus-4-5": {
		InputPerMTok: 15.0, OutputPerMTok: 75.0,
		CacheReadPerMTok: 1.50, CacheCreationPerMTok: 18.75,
		DisplayName: "Opus 4.5",
	},
	"claude-sonnet-4-5": {
		InputPerMTok: 3.0, OutputPerMTok: 15.0,
		CacheReadPerMTok: 0.30, CacheCreationPerMTok: 3.75,
		DisplayName: "Sonnet 4.5",
	},
	"claude-haiku-4-5": {
		InputPerMTok: 0.80, OutputPerMTok: 4.0,
		CacheReadPerMTok: 0.08, CacheCreationPerMTok: 1.0,
		DisplayName: "Haiku 4.5",
	},
}

// UnknownPricing is used for model ids with no table entry. Priced at the
// top tier so unknown usage is never under-reported.
var UnknownPricing = ModelPricing{
	InputPerMTok: 15.0, OutputPerMTok: 75.0,
	CacheReadPerMTok: 1.50, CacheCreationPerMTok: 18.75,
	DisplayName: "Unknown",
}

var pricingOverrides map[string]ModelPricing

// ApplyPricingOverrides merges user-configured per-model prices over the
// defaults. Passing an empty map clears previous overrides.
func ApplyPricingOverrides(overrides map[string]ModelPricingOverride) {
	merged := make(map[string]ModelPricing, len(overrides))
	for marker, o := range overrides {
		p, ok := DefaultPricing[marker]
		if !ok {
			p = UnknownPricing
			p.DisplayName = marker
		}
		if o.InputPerMTok != nil {
			p.InputPerMTok = *o.InputPerMTok
		}
		if o.OutputPerMTok != nil {
			p.OutputPerMTok = *o.OutputPerMTok
		}
		if o.CacheReadPerMTok != nil {
			p.CacheReadPerMTok = *o.CacheReadPerMTok
		}
		if o.CacheCreationPerMTok != nil {
			p.CacheCreationPerMTok = *o.CacheCreationPerMTok
		}
		if o.DisplayName != nil {
			p.DisplayName = *o.DisplayName
		}
		merged[marker] = p
	}
	pricingOverrides = merged
}

// LookupPricing returns the pricing for a model id. Markers are matched as
// substrings; unknown ids fall back to UnknownPricing.
func LookupPricing(modelID string) ModelPricing {
	for marker, p := range pricingOverrides {
		if strings.Contains(modelID, marker) {
			return p
		}
	}
	for marker, p := range DefaultPricing {
		if strings.Contains(modelID, marker) {
			return p
		}
	}
	return UnknownPricing
}

// ModelDisplayName returns the human-readable name for a model id.
func ModelDisplayName(modelID string) string {
	return LookupPricing(modelID).DisplayName
}

// CostForUsage computes the USD cost of a token usage under one model's
// prices, rounded to 2 decimals.
func CostForUsage(usage model.TokenUsage, modelID string) float64 {
	p := LookupPricing(modelID)
	cost := float64(usage.InputTokens) * p.InputPerMTok / 1_000_000
	cost += float64(usage.OutputTokens) * p.OutputPerMTok / 1_000_000
	cost += float64(usage.CacheReadInputTokens) * p.CacheReadPerMTok / 1_000_000
	cost += float64(usage.CacheCreationInputTokens) * p.CacheCreationPerMTok / 1_000_000
	return Round2(cost)
}

// Round2 rounds to 2 decimal places, the precision used for reported costs.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
