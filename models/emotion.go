package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrUnknownEmotion  = errors.New("unknown emotion label")
	ErrMalformedVector = errors.New("malformed emotion vector")

	// ErrNoSignal means the input carried no emotion signal at all (an
	// all-zero distribution). Scoring refuses such input rather than
	// reporting a fabricated dominant emotion.
	ErrNoSignal = errors.New("no emotion signal")
)

// Emotion is one of the canonical emotion labels every classifier output is
// normalized to.
type Emotion string

const (
	Joy      Emotion = "joy"
	Sadness  Emotion = "sadness"
	Anger    Emotion = "anger"
	Fear     Emotion = "fear"
	Surprise Emotion = "surprise"
	Disgust  Emotion = "disgust"
	Neutral  Emotion = "neutral"
)

// AllEmotions fixes the enumeration order. Dominant-emotion tie-breaks and
// aggregate summaries iterate in this order, never in map order.
var AllEmotions = []Emotion{Joy, Sadness, Anger, Fear, Surprise, Disgust, Neutral}

// emotionAliases remaps the label variants the upstream classifiers emit
// (the facial model capitalizes and uses Happy/Fearful/..., the voice model
// adds a "calm" class) onto the canonical set.
var emotionAliases = map[string]Emotion{
	"joy":       Joy,
	"happy":     Joy,
	"happiness": Joy,
	"sadness":   Sadness,
	"sad":       Sadness,
	"anger":     Anger,
	"angry":     Anger,
	"fear":      Fear,
	"fearful":   Fear,
	"surprise":  Surprise,
	"surprised": Surprise,
	"disgust":   Disgust,
	"disgusted": Disgust,
	"neutral":   Neutral,
	"calm":      Neutral,
}

// ParseEmotion resolves a raw classifier label to its canonical emotion.
// Unrecognized labels are an explicit error, not a silent drop.
func ParseEmotion(label string) (Emotion, error) {
	e, ok := emotionAliases[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEmotion, label)
	}
	return e, nil
}

// LabelScore is one entry of raw classifier output.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// EmotionVector is a confidence distribution over the canonical emotion set
// on a 0-100 scale. Vectors built through NewEmotionVector always carry all
// seven labels and sum to 100 (or are all-zero when the classifier produced
// no signal). Treat as immutable once created.
type EmotionVector map[Emotion]float64

// NewEmotionVector builds a normalized vector from raw classifier output.
// Missing labels are zero-filled, scores are renormalized to sum to 100,
// and unknown labels or out-of-domain scores fail the whole vector.
func NewEmotionVector(raw []LabelScore) (EmotionVector, error) {
	v := make(EmotionVector, len(AllEmotions))
	for _, e := range AllEmotions {
		v[e] = 0
	}

	var total float64
	for _, ls := range raw {
		e, err := ParseEmotion(ls.Label)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(ls.Score) || math.IsInf(ls.Score, 0) || ls.Score < 0 {
			return nil, fmt.Errorf("%w: score %v for label %q", ErrMalformedVector, ls.Score, ls.Label)
		}
		v[e] += ls.Score
		total += ls.Score
	}

	if total == 0 {
		return v, nil
	}
	for e := range v {
		v[e] = v[e] / total * 100
	}
	return v, nil
}

// Dominant returns the emotion with the highest confidence and that
// confidence. Ties are broken by the fixed enumeration order. An all-zero
// vector has no dominant emotion and returns the empty label with zero
// confidence; callers must treat that as no-signal, not as a detection.
func (v EmotionVector) Dominant() (Emotion, float64) {
	var best Emotion
	var bestScore float64
	for _, e := range AllEmotions {
		if v[e] > bestScore {
			best = e
			bestScore = v[e]
		}
	}
	return best, bestScore
}

// Sum returns the total confidence mass of the vector.
func (v EmotionVector) Sum() float64 {
	var total float64
	for _, score := range v {
		total += score
	}
	return total
}

// EmotionCounts accumulates per-sample dominant emotions over one session.
type EmotionCounts map[Emotion]int

// NewEmotionCounts returns a zero-filled count map over the canonical set.
func NewEmotionCounts() EmotionCounts {
	c := make(EmotionCounts, len(AllEmotions))
	for _, e := range AllEmotions {
		c[e] = 0
	}
	return c
}

// Total returns the number of samples counted so far.
func (c EmotionCounts) Total() int {
	var n int
	for _, count := range c {
		n += count
	}
	return n
}
