package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sentira-Labs/sentira-go-sdk/models"
)

// TextClassifier calls an external transformer-based emotion service over
// HTTP. The service contract is POST {base}/detect with {"text": ...} and a
// response of {"emotions": [{"label","score"}], "dominant_emotion": ...};
// scores may be unnormalized, NewEmotionVector renormalizes them.
type TextClassifier struct {
	baseURL string
	client  *http.Client
	logger  *logrus.Logger
}

type detectRequest struct {
	Text string `json:"text"`
}

type detectResponse struct {
	Emotions        []models.LabelScore `json:"emotions"`
	DominantEmotion string              `json:"dominant_emotion"`
}

func NewTextClassifier(baseURL string, logger *logrus.Logger) *TextClassifier {
	return &TextClassifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

func (c *TextClassifier) Name() string {
	return "text-transformer"
}

func (c *TextClassifier) Initialize() error {
	if c.baseURL == "" {
		return fmt.Errorf("%w: EMOTION_API_URL not set", ErrClassifierUnavailable)
	}
	return nil
}

func (c *TextClassifier) Classify(ctx context.Context, input Input) (models.EmotionVector, error) {
	if input.Text == "" {
		return nil, fmt.Errorf("%w: empty text input", models.ErrMalformedVector)
	}

	b, _ := json.Marshal(detectRequest{Text: input.Text})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/detect", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: emotion service %s: %s", ErrClassifierUnavailable, resp.Status, string(body))
	}

	var out detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("emotion service decode: %w", err)
	}

	vector, err := models.NewEmotionVector(out.Emotions)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"provider": c.Name(),
		"labels":   len(out.Emotions),
	}).Debug("Text classification succeeded")

	return vector, nil
}
