package classifier

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Sentira-Labs/sentira-go-sdk/models"
)

// MockClassifier is a deterministic classifier for tests and for running the
// service without any backend configured. Text inputs containing an emotion
// word get a distribution dominated by that emotion; everything else is
// mostly neutral.
type MockClassifier struct {
	logger *logrus.Logger
}

func NewMockClassifier(logger *logrus.Logger) *MockClassifier {
	return &MockClassifier{logger: logger}
}

func (p *MockClassifier) Name() string {
	return "mock"
}

func (p *MockClassifier) Initialize() error {
	p.logger.Info("Mock emotion classifier initialized")
	return nil
}

func (p *MockClassifier) Classify(ctx context.Context, input Input) (models.EmotionVector, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	dominant := models.Neutral
	lowered := strings.ToLower(input.Text)
	for _, e := range models.AllEmotions {
		if strings.Contains(lowered, string(e)) {
			dominant = e
			break
		}
	}

	raw := make([]models.LabelScore, 0, len(models.AllEmotions))
	for _, e := range models.AllEmotions {
		score := 5.0
		if e == dominant {
			score = 70.0
		}
		raw = append(raw, models.LabelScore{Label: string(e), Score: score})
	}

	p.logger.WithFields(logrus.Fields{
		"provider": p.Name(),
		"dominant": dominant,
	}).Debug("Mock classification generated")

	return models.NewEmotionVector(raw)
}
