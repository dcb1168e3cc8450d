package models

import (
	"time"
)

const (
	SESSION_END = "<SESSION_END>"
)

// SessionSummary is the aggregate view of one realtime session: how many
// samples were seen, how dominant emotions were distributed, and the scores
// re-derived from those counts.
type SessionSummary struct {
	SessionID       string              `json:"session_id"`
	UserID          string              `json:"user_id,omitempty"`
	TotalSamples    int                 `json:"total_samples"`
	Counts          EmotionCounts       `json:"emotion_counts"`
	Percentages     map[Emotion]float64 `json:"emotion_percentages"`
	DominantEmotion Emotion             `json:"dominant_emotion,omitempty"`
	WellnessScore   float64             `json:"wellness_score"`
	WellnessTier    string              `json:"wellness_tier"`
	RiskScore       float64             `json:"risk_score"`
	RiskTier        string              `json:"risk_tier"`
	StartTime       time.Time           `json:"start_time"`
	EndTime         time.Time           `json:"end_time"`
}
