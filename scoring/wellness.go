// Package scoring implements the emotion-to-risk scoring core: pure
// functions that turn normalized emotion distributions (or session-level
// dominant-emotion counts) into wellness scores, risk scores, tiers, and
// insights. Everything here is deterministic and free of I/O; all scores
// live on the canonical 0-100 scale.
package scoring

import (
	"math"

	"github.com/Sentira-Labs/sentira-go-sdk/models"
)

// ScaleMax is the canonical internal scale. Tier lookup tables are
// calibrated to 0-10 and rescale at the boundary, see tiers.go.
const ScaleMax = 100.0

const midpoint = ScaleMax / 2

var positiveEmotions = []models.Emotion{models.Joy, models.Surprise}

var negativeEmotions = []models.Emotion{models.Sadness, models.Anger, models.Fear, models.Disgust}

// Wellness converts an emotion vector into a single 0-100 wellness score.
// Neutral mass counts half toward positivity. An all-zero vector has no
// signal and returns the 50.0 midpoint.
func Wellness(v models.EmotionVector) float64 {
	var positive, negative float64
	for _, e := range positiveEmotions {
		positive += v[e]
	}
	for _, e := range negativeEmotions {
		negative += v[e]
	}
	neutral := v[models.Neutral]

	return wellness(positive, negative, neutral)
}

// WellnessFromCounts applies the same partition to session-level
// dominant-emotion counts.
func WellnessFromCounts(c models.EmotionCounts) float64 {
	var positive, negative float64
	for _, e := range positiveEmotions {
		positive += float64(c[e])
	}
	for _, e := range negativeEmotions {
		negative += float64(c[e])
	}
	neutral := float64(c[models.Neutral])

	return wellness(positive, negative, neutral)
}

func wellness(positive, negative, neutral float64) float64 {
	total := positive + negative + neutral
	if total == 0 {
		return midpoint
	}
	return round1((positive + 0.5*neutral) / total * ScaleMax)
}

// round1 rounds to one decimal place, the precision every score is
// reported at.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}
