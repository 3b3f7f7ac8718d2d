package config

import (
	"testing"

	"github.com/kyoungmook/claude-dashboard/internal/model"
)

func TestLookupPricing_SubstringMatch(t *testing.T) {
	p := LookupPricing("claude-sonnet-4-5-20250929")
	if p.DisplayName != "Sonnet 4.5" {
		t.Errorf("DisplayName = %q, want Sonnet 4.5", p.DisplayName)
	}
	if p.InputPerMTok != 3.0 {
		t.Errorf("InputPerMTok = %v", p.InputPerMTok)
	}
}

func TestLookupPricing_UnknownFallsBack(t *testing.T) {
	p := LookupPricing("claude-experimental-9")
	if p != UnknownPricing {
		t.Errorf("got %+v, want UnknownPricing", p)
	}
}

func TestCostForUsage(t *testing.T) {
	usage := model.TokenUsage{
		InputTokens:              1_000_000,
		OutputTokens:             1_000_000,
		CacheReadInputTokens:     1_000_000,
		CacheCreationInputTokens: 1_000_000,
	}
	// Sonnet: 3 + 15 + 0.30 + 3.75
	if got := CostForUsage(usage, "claude-sonnet-4-5"); got != 22.05 {
		t.Errorf("CostForUsage = %v, want 22.05", got)
	}
}

func TestCostForUsage_Rounds(t *testing.T) {
	usage := model.TokenUsage{InputTokens: 1234}
	got := CostForUsage(usage, "claude-sonnet-4-5")
	// 1234 * 3 / 1e6 = 0.003702 -> 0.00
	if got != 0.0 {
		t.Errorf("CostForUsage = %v, want 0.00", got)
	}
}

func TestApplyPricingOverrides(t *testing.T) {
	defer ApplyPricingOverrides(nil)

	in := 5.0
	name := "Custom Sonnet"
	ApplyPricingOverrides(map[string]ModelPricingOverride{
		"claude-sonnet-4-5": {InputPerMTok: &in, DisplayName: &name},
	})

	p := LookupPricing("claude-sonnet-4-5-20250929")
	if p.InputPerMTok != 5.0 {
		t.Errorf("InputPerMTok = %v, want override", p.InputPerMTok)
	}
	if p.DisplayName != "Custom Sonnet" {
		t.Errorf("DisplayName = %q", p.DisplayName)
	}
	// Non-overridden field keeps the default.
	if p.OutputPerMTok != 15.0 {
		t.Errorf("OutputPerMTok = %v", p.OutputPerMTok)
	}
}

func TestApplyPricingOverrides_NewModel(t *testing.T) {
	defer ApplyPricingOverrides(nil)

	in, out := 1.0, 2.0
	ApplyPricingOverrides(map[string]ModelPricingOverride{
		"my-local-model": {InputPerMTok: &in, OutputPerMTok: &out},
	})

	p := LookupPricing("my-local-model-v2")
	if p.InputPerMTok != 1.0 || p.OutputPerMTok != 2.0 {
		t.Errorf("pricing = %+v", p)
	}
	if p.DisplayName != "my-local-model" {
		t.Errorf("DisplayName = %q, want marker as fallback name", p.DisplayName)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{1.005, 1.0}, // float repr of 1.005 sits just below
		{1.006, 1.01},
		{0.004, 0.0},
		{12.346, 12.35},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Errorf("Round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
