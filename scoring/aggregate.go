package scoring

import (
	"fmt"
	"sync"
	"time"

	"github.com/Sentira-Labs/sentira-go-sdk/models"
)

// SessionAggregator folds per-sample emotion vectors into session-level
// dominant-emotion counts and re-derives wellness and risk at the aggregate
// level. Each aggregator belongs to exactly one session; the mutex only
// matters when two requests for the same session race, in which case each
// count update stays a single atomic step.
type SessionAggregator struct {
	mu        sync.Mutex
	counts    models.EmotionCounts
	startTime time.Time
}

func NewSessionAggregator() *SessionAggregator {
	return &SessionAggregator{
		counts:    models.NewEmotionCounts(),
		startTime: time.Now(),
	}
}

// Record counts the dominant emotion of one sample vector and returns it
// with its confidence. Samples are never re-examined once counted. An
// all-zero vector is no-signal: it is rejected and not counted.
func (a *SessionAggregator) Record(v models.EmotionVector) (models.Emotion, float64, error) {
	dominant, confidence := v.Dominant()
	if dominant == "" {
		return "", 0, fmt.Errorf("%w: all-zero distribution", models.ErrNoSignal)
	}
	a.RecordLabel(dominant)
	return dominant, confidence, nil
}

// RecordLabel counts a pre-classified dominant emotion directly, for callers
// that run the classifier themselves.
func (a *SessionAggregator) RecordLabel(e models.Emotion) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counts[e]++
}

// Total returns the number of samples recorded so far.
func (a *SessionAggregator) Total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counts.Total()
}

// Snapshot derives the current session summary: counts, percentages, the
// overall dominant emotion (enum-order tie-break), and aggregate scores
// using the threshold-gated risk strategy. A session with no samples yet is
// not an error; it reports the wellness midpoint, zero risk, and no dominant
// emotion.
func (a *SessionAggregator) Snapshot() models.SessionSummary {
	a.mu.Lock()
	counts := make(models.EmotionCounts, len(a.counts))
	for e, n := range a.counts {
		counts[e] = n
	}
	startTime := a.startTime
	a.mu.Unlock()

	total := counts.Total()

	percentages := make(map[models.Emotion]float64, len(models.AllEmotions))
	var dominant models.Emotion
	best := 0
	for _, e := range models.AllEmotions {
		if total > 0 {
			percentages[e] = round1(float64(counts[e]) / float64(total) * 100)
		} else {
			percentages[e] = 0
		}
		if counts[e] > best {
			dominant = e
			best = counts[e]
		}
	}

	wellnessScore := WellnessFromCounts(counts)
	riskScore := ThresholdGatedRisk(counts)

	return models.SessionSummary{
		TotalSamples:    total,
		Counts:          counts,
		Percentages:     percentages,
		DominantEmotion: dominant,
		WellnessScore:   wellnessScore,
		WellnessTier:    WellnessTier(wellnessScore).Label,
		RiskScore:       riskScore,
		RiskTier:        RiskTier(riskScore).Label,
		StartTime:       startTime,
		EndTime:         time.Now(),
	}
}

// Reset clears all counts and starts a new session. This is the only way to
// discard recorded samples.
func (a *SessionAggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counts = models.NewEmotionCounts()
	a.startTime = time.Now()
}
