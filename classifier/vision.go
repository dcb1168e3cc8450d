package classifier

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Sentira-Labs/sentira-go-sdk/models"
	"github.com/Sentira-Labs/sentira-go-sdk/utils"
)

// VisionClassifier scores the facial modality with the OpenAI vision model,
// prompted to return a per-emotion confidence distribution for the face in
// the image.
type VisionClassifier struct {
	openai *utils.OpenAIClient
	logger *logrus.Logger
}

func NewVisionClassifier(openai *utils.OpenAIClient, logger *logrus.Logger) *VisionClassifier {
	return &VisionClassifier{
		openai: openai,
		logger: logger,
	}
}

func (c *VisionClassifier) Name() string {
	return "vision-openai"
}

func (c *VisionClassifier) Initialize() error {
	if c.openai == nil {
		return fmt.Errorf("%w: OpenAI client not configured", ErrClassifierUnavailable)
	}
	return nil
}

func (c *VisionClassifier) Classify(ctx context.Context, input Input) (models.EmotionVector, error) {
	if len(input.Image) == 0 {
		return nil, fmt.Errorf("%w: empty image input", models.ErrMalformedVector)
	}

	distribution, err := c.openai.ClassifyFacialEmotion(ctx, input.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}

	raw := make([]models.LabelScore, 0, len(distribution))
	for label, score := range distribution {
		raw = append(raw, models.LabelScore{Label: label, Score: score})
	}

	vector, err := models.NewEmotionVector(raw)
	if err != nil {
		return nil, err
	}

	c.logger.WithField("provider", c.Name()).Debug("Facial classification succeeded")
	return vector, nil
}
