package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sentira-Labs/sentira-go-sdk/models"
)

func TestContinuousRiskWeightedSum(t *testing.T) {
	// 0.60*0.45 + 0.20*0.30 + 0.10*0.20 = 0.35 on the unit scale.
	v := mustVector(t, map[string]float64{
		"sadness": 60,
		"fear":    20,
		"anger":   10,
		"joy":     5,
		"neutral": 5,
	})
	assert.InDelta(t, 35.0, ContinuousRisk(v), 0.05)
}

func TestContinuousRiskPositiveOnlyIsZero(t *testing.T) {
	v := mustVector(t, map[string]float64{"joy": 70, "surprise": 30})
	assert.Equal(t, 0.0, ContinuousRisk(v))
}

func TestContinuousRiskEmptyVectorIsZero(t *testing.T) {
	v, err := models.NewEmotionVector(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, ContinuousRisk(v))
}

func TestContinuousRiskBounds(t *testing.T) {
	vectors := []map[string]float64{
		{"sadness": 1},
		{"sadness": 0.25, "fear": 0.25, "anger": 0.25, "disgust": 0.25},
		{"joy": 0.5, "disgust": 0.5},
	}
	for _, scores := range vectors {
		r := ContinuousRisk(mustVector(t, scores))
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, ScaleMax)
	}
}

func TestContinuousRiskMonotoneInSadness(t *testing.T) {
	prev := -1.0
	for sad := 0.0; sad <= 100; sad += 10 {
		v := mustVector(t, map[string]float64{"joy": 100 - sad, "sadness": sad})
		r := ContinuousRisk(v)
		assert.GreaterOrEqual(t, r, prev, "sadness %.0f", sad)
		prev = r
	}
}

func TestContinuousRiskDeterministic(t *testing.T) {
	v := mustVector(t, map[string]float64{
		"sadness": 17, "fear": 23, "anger": 19, "disgust": 11, "joy": 30,
	})
	first := ContinuousRisk(v)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, ContinuousRisk(v))
	}
}

func TestThresholdGatedRiskBelowPresenceThreshold(t *testing.T) {
	// Sadness at exactly 20% does not clear the strict threshold.
	c := models.NewEmotionCounts()
	c[models.Sadness] = 2
	c[models.Joy] = 8
	assert.Equal(t, 0.0, ThresholdGatedRisk(c))
}

func TestThresholdGatedRiskSingleEmotionNoBonus(t *testing.T) {
	// Sadness at 30%: 0.30 * 0.45 * 100 = 13.5, no escalation bonus.
	c := models.NewEmotionCounts()
	c[models.Sadness] = 3
	c[models.Joy] = 7
	assert.Equal(t, 13.5, ThresholdGatedRisk(c))
}

func TestThresholdGatedRiskEscalationBonusAppliedOnce(t *testing.T) {
	// Sadness and fear both at 30%:
	// 0.30*0.45*100 + 0.30*0.30*100 = 22.5, plus the 5.0 bonus once.
	c := models.NewEmotionCounts()
	c[models.Sadness] = 3
	c[models.Fear] = 3
	c[models.Joy] = 4
	assert.Equal(t, 27.5, ThresholdGatedRisk(c))

	// A third emotion over the threshold still adds the bonus only once.
	c2 := models.NewEmotionCounts()
	c2[models.Sadness] = 3
	c2[models.Fear] = 3
	c2[models.Anger] = 3
	c2[models.Joy] = 1
	// 13.5 + 9.0 + 6.0 + 5.0
	assert.Equal(t, 33.5, ThresholdGatedRisk(c2))
}

func TestThresholdGatedRiskEmptyIsZero(t *testing.T) {
	assert.Equal(t, 0.0, ThresholdGatedRisk(models.NewEmotionCounts()))
}

func TestScorePositiveScenario(t *testing.T) {
	v := mustVector(t, map[string]float64{
		"joy":      80,
		"sadness":  5,
		"anger":    5,
		"fear":     5,
		"surprise": 3,
		"disgust":  2,
	})

	res, err := Score(v)
	require.NoError(t, err)
	assert.Equal(t, models.Joy, res.DominantEmotion)
	assert.Greater(t, res.WellnessScore, 70.0)
	assert.Less(t, res.RiskScore, 20.0)
	assert.Equal(t, "Excellent", res.WellnessTier)
	assert.Equal(t, "Minimal Risk", res.RiskTier)
	assert.False(t, res.Timestamp.IsZero())
}

func TestScoreSadScenario(t *testing.T) {
	v := mustVector(t, map[string]float64{
		"sadness": 60,
		"fear":    20,
		"anger":   10,
		"joy":     5,
		"neutral": 5,
	})

	res, err := Score(v)
	require.NoError(t, err)
	assert.Equal(t, models.Sadness, res.DominantEmotion)
	assert.GreaterOrEqual(t, res.RiskScore, 30.0)
	assert.Equal(t, "Moderate Risk", res.RiskTier)
	assert.Less(t, res.WellnessScore, 20.0)
}

func TestScoreRefusesNoSignal(t *testing.T) {
	v, err := models.NewEmotionVector(nil)
	require.NoError(t, err)

	_, err = Score(v)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNoSignal)
}
