package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskTierBands(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.0, "Minimal Risk"},
		{9.9, "Minimal Risk"},
		{10.0, "Low Risk"},
		{29.9, "Low Risk"},
		{30.0, "Moderate Risk"},
		{49.9, "Moderate Risk"},
		{50.0, "High Risk"},
		{69.9, "High Risk"},
		{70.0, "Critical Risk"},
		{100.0, "Critical Risk"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RiskTier(tt.score).Label, "score %.1f", tt.score)
	}
}

func TestWellnessTierBands(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.0, "Critical"},
		{19.9, "Critical"},
		{20.0, "Poor"},
		{40.0, "Fair"},
		{59.9, "Fair"},
		{60.0, "Good"},
		{80.0, "Excellent"},
		{100.0, "Excellent"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, WellnessTier(tt.score).Label, "score %.1f", tt.score)
	}
}

func TestTiersCarryGuidance(t *testing.T) {
	for _, score := range []float64{0, 15, 35, 55, 75, 95} {
		rt := RiskTier(score)
		assert.NotEmpty(t, rt.Guidance, "risk score %.0f", score)
		assert.NotEmpty(t, rt.Color)
		assert.NotEmpty(t, rt.Icon)

		wt := WellnessTier(score)
		assert.NotEmpty(t, wt.Guidance, "wellness score %.0f", score)
		assert.NotEmpty(t, wt.Color)
	}
}
