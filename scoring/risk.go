package scoring

import (
	"fmt"
	"time"

	"github.com/Sentira-Labs/sentira-go-sdk/models"
)

// riskWeights are the clinically-motivated contributions of each negative
// emotion. Labels outside this table contribute nothing to risk.
var riskWeights = map[models.Emotion]float64{
	models.Sadness: 0.45,
	models.Fear:    0.30,
	models.Anger:   0.20,
	models.Disgust: 0.15,
}

// riskOrder fixes the summation order so floating-point results are
// bit-identical across calls.
var riskOrder = []models.Emotion{models.Sadness, models.Fear, models.Anger, models.Disgust}

// presenceThreshold is the percentage of session samples a negative emotion
// must exceed before the threshold-gated strategy counts it at all.
const presenceThreshold = 20.0

// escalationBonus is added once when two or more negative emotions each
// clear the presence threshold in the same session.
const escalationBonus = 0.5 * ScaleMax / 10

// ContinuousRisk scores a single-sample probability vector: every negative
// emotion contributes its weighted share, with no presence gating. This is
// the strategy for one-shot text, voice, and image analyses.
func ContinuousRisk(v models.EmotionVector) float64 {
	total := v.Sum()
	if total == 0 {
		return 0.0
	}

	var risk float64
	for _, e := range riskOrder {
		risk += v[e] / total * riskWeights[e] * ScaleMax
	}
	return round1(clamp(risk, 0, ScaleMax))
}

// ThresholdGatedRisk scores session-level dominant-emotion counts: a
// negative emotion only contributes once it exceeds the 20%-presence
// threshold, and co-occurring negative emotions above the threshold add a
// fixed escalation bonus. This is the strategy for frame-based realtime
// aggregates.
func ThresholdGatedRisk(c models.EmotionCounts) float64 {
	total := c.Total()
	if total == 0 {
		return 0.0
	}

	var risk float64
	exceeded := 0
	for _, e := range riskOrder {
		pct := float64(c[e]) / float64(total) * 100
		if pct > presenceThreshold {
			risk += pct / 100 * riskWeights[e] * ScaleMax
			exceeded++
		}
	}
	if exceeded >= 2 {
		risk += escalationBonus
	}
	return round1(clamp(risk, 0, ScaleMax))
}

// Score derives the full single-sample result for a vector: dominant
// emotion, wellness, continuous risk, and both tiers. An all-zero vector is
// no-signal and is refused; it never scores as any emotion.
func Score(v models.EmotionVector) (models.ScoreResult, error) {
	dominant, confidence := v.Dominant()
	if dominant == "" {
		return models.ScoreResult{}, fmt.Errorf("%w: all-zero distribution", models.ErrNoSignal)
	}
	wellnessScore := Wellness(v)
	riskScore := ContinuousRisk(v)

	return models.ScoreResult{
		DominantEmotion: dominant,
		Confidence:      round1(confidence),
		Distribution:    v,
		WellnessScore:   wellnessScore,
		WellnessTier:    WellnessTier(wellnessScore).Label,
		RiskScore:       riskScore,
		RiskTier:        RiskTier(riskScore).Label,
		Timestamp:       time.Now(),
	}, nil
}
