package models

import (
	"time"
)

// Modality identifies which analysis pipeline produced a record.
type Modality string

const (
	ModalityText     Modality = "text"
	ModalityVoice    Modality = "voice"
	ModalityImage    Modality = "image"
	ModalityRealtime Modality = "realtime"
)

// ScoreResult is the outcome of scoring one emotion vector. Created once per
// analysis call and never mutated afterwards.
type ScoreResult struct {
	DominantEmotion Emotion       `json:"dominant_emotion"`
	Confidence      float64       `json:"confidence"`
	Distribution    EmotionVector `json:"emotion_distribution"`
	WellnessScore   float64       `json:"wellness_score"`
	WellnessTier    string        `json:"wellness_tier"`
	RiskScore       float64       `json:"risk_score"`
	RiskTier        string        `json:"risk_tier"`
	Timestamp       time.Time     `json:"timestamp"`
}

// Insight is one qualitative observation derived from a score result.
type Insight struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// AnalysisRecord ties a score result and its input metadata to a user. The
// store persists these as-is; schema beyond this struct belongs to the
// persistence layer.
type AnalysisRecord struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	Modality     Modality    `json:"modality"`
	Result       ScoreResult `json:"result"`
	InputPreview string      `json:"input_preview,omitempty"`
	WordCount    int         `json:"word_count,omitempty"`
	FrameCount   int         `json:"frame_count,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}
