package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmotion(t *testing.T) {
	tests := []struct {
		label string
		want  Emotion
	}{
		{"joy", Joy},
		{"Happy", Joy},
		{"sad", Sadness},
		{"Sadness", Sadness},
		{"Angry", Anger},
		{"Fearful", Fear},
		{"Surprised", Surprise},
		{"Disgusted", Disgust},
		{"calm", Neutral},
		{"  neutral ", Neutral},
	}

	for _, tt := range tests {
		got, err := ParseEmotion(tt.label)
		require.NoError(t, err, "label %q", tt.label)
		assert.Equal(t, tt.want, got, "label %q", tt.label)
	}
}

func TestParseEmotionUnknown(t *testing.T) {
	_, err := ParseEmotion("melancholy")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownEmotion)
}

func TestNewEmotionVectorNormalizes(t *testing.T) {
	// Classifier scores in [0,1] must come out on the 0-100 scale.
	v, err := NewEmotionVector([]LabelScore{
		{Label: "joy", Score: 0.8},
		{Label: "sadness", Score: 0.2},
	})
	require.NoError(t, err)

	assert.InDelta(t, 80.0, v[Joy], 1e-9)
	assert.InDelta(t, 20.0, v[Sadness], 1e-9)
	assert.InDelta(t, 100.0, v.Sum(), 1e-9)

	// Every canonical label is present, zero-filled.
	for _, e := range AllEmotions {
		_, ok := v[e]
		assert.True(t, ok, "missing label %s", e)
	}
}

func TestNewEmotionVectorAliasedLabels(t *testing.T) {
	v, err := NewEmotionVector([]LabelScore{
		{Label: "Happy", Score: 60},
		{Label: "Fearful", Score: 40},
	})
	require.NoError(t, err)
	assert.InDelta(t, 60.0, v[Joy], 1e-9)
	assert.InDelta(t, 40.0, v[Fear], 1e-9)
}

func TestNewEmotionVectorRejectsUnknownLabel(t *testing.T) {
	_, err := NewEmotionVector([]LabelScore{
		{Label: "joy", Score: 0.5},
		{Label: "ennui", Score: 0.5},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownEmotion)
}

func TestNewEmotionVectorRejectsBadScores(t *testing.T) {
	_, err := NewEmotionVector([]LabelScore{{Label: "joy", Score: -1}})
	assert.ErrorIs(t, err, ErrMalformedVector)

	_, err = NewEmotionVector([]LabelScore{{Label: "joy", Score: math.NaN()}})
	assert.ErrorIs(t, err, ErrMalformedVector)
}

func TestNewEmotionVectorEmptyInput(t *testing.T) {
	v, err := NewEmotionVector(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v.Sum())
}

func TestDominantTieBreak(t *testing.T) {
	// Sadness precedes anger in the enumeration order, so it wins the tie.
	v, err := NewEmotionVector([]LabelScore{
		{Label: "anger", Score: 40},
		{Label: "sadness", Score: 40},
		{Label: "neutral", Score: 20},
	})
	require.NoError(t, err)

	dominant, confidence := v.Dominant()
	assert.Equal(t, Sadness, dominant)
	assert.InDelta(t, 40.0, confidence, 1e-9)
}

func TestDominantIsDeterministic(t *testing.T) {
	v, err := NewEmotionVector([]LabelScore{
		{Label: "joy", Score: 50},
		{Label: "surprise", Score: 50},
	})
	require.NoError(t, err)

	first, _ := v.Dominant()
	for i := 0; i < 100; i++ {
		got, _ := v.Dominant()
		assert.Equal(t, first, got)
	}
	assert.Equal(t, Joy, first)
}

func TestDominantAllZeroIsNoSignal(t *testing.T) {
	v, err := NewEmotionVector(nil)
	require.NoError(t, err)

	dominant, confidence := v.Dominant()
	assert.Equal(t, Emotion(""), dominant)
	assert.Equal(t, 0.0, confidence)
}

func TestEmotionCountsTotal(t *testing.T) {
	c := NewEmotionCounts()
	assert.Equal(t, 0, c.Total())

	c[Joy] = 3
	c[Sadness] = 2
	assert.Equal(t, 5, c.Total())
}
