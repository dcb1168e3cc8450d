package scoring

import (
	"fmt"

	"github.com/Sentira-Labs/sentira-go-sdk/models"
)

// Thresholds for the insight rule chain, on the 0-100 scale.
const (
	fearInsightThreshold = 40.0
	riskInsightThreshold = 70.0
)

// Insights evaluates the deterministic insight rule chain against a vector
// and its score result. Rules accumulate rather than exclude each other, and
// the elevated-concern insight, when triggered, is always last. Templates
// are fixed strings parameterized only by the emotion label.
func Insights(v models.EmotionVector, res models.ScoreResult) []models.Insight {
	var insights []models.Insight

	switch res.DominantEmotion {
	case models.Joy, models.Surprise:
		insights = append(insights, models.Insight{
			Title:   "Positive Emotional Indicators",
			Content: fmt.Sprintf("Your dominant emotion is %s. Continue engaging in activities that bring you joy!", res.DominantEmotion),
		})
	case models.Sadness:
		insights = append(insights, models.Insight{
			Title:   "Sadness Detected",
			Content: "Your emotional patterns show signs of sadness or low mood. Acknowledging these feelings is a healthy first step; consider talking to someone about how you're feeling.",
		})
	case models.Anger:
		insights = append(insights, models.Insight{
			Title:   "Elevated Stress Indicators",
			Content: "Anger is your most prominent emotion right now. Stress-management techniques such as deep breathing or a short walk can help.",
		})
	}

	if v[models.Fear] > fearInsightThreshold {
		insights = append(insights, models.Insight{
			Title:   "Anxiety Indicators",
			Content: "A high level of fear was detected, which can be a sign of anxiety or stress. Try some calming breathing exercises.",
		})
	}

	if res.RiskScore > riskInsightThreshold {
		insights = append(insights, models.Insight{
			Title:   "Elevated Concern Level",
			Content: "The analysis suggests heightened stress or emotional distress. We recommend consulting with a mental health professional.",
		})
	}

	return insights
}
