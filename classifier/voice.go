package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Sentira-Labs/sentira-go-sdk/models"
	"github.com/Sentira-Labs/sentira-go-sdk/utils"
)

// VoiceClassifier scores the voice modality by transcribing the audio with
// Deepgram and delegating the transcript to a text classifier. Acoustic
// feature extraction stays out of scope; speech content carries the signal.
type VoiceClassifier struct {
	transcriber *utils.DeepgramTranscriber
	text        Classifier
	logger      *logrus.Logger
}

func NewVoiceClassifier(transcriber *utils.DeepgramTranscriber, text Classifier, logger *logrus.Logger) *VoiceClassifier {
	return &VoiceClassifier{
		transcriber: transcriber,
		text:        text,
		logger:      logger,
	}
}

func (c *VoiceClassifier) Name() string {
	return "voice-deepgram"
}

func (c *VoiceClassifier) Initialize() error {
	if c.transcriber == nil {
		return fmt.Errorf("%w: deepgram transcriber not configured", ErrClassifierUnavailable)
	}
	if c.text == nil {
		return fmt.Errorf("%w: voice classifier needs a text backend", ErrClassifierUnavailable)
	}
	return nil
}

func (c *VoiceClassifier) Classify(ctx context.Context, input Input) (models.EmotionVector, error) {
	if len(input.Audio) == 0 {
		return nil, fmt.Errorf("%w: empty audio input", models.ErrMalformedVector)
	}

	transcript, err := c.transcriber.TranscribeAudio(ctx, input.Audio, input.MimeType)
	if err != nil {
		return nil, fmt.Errorf("%w: transcription failed: %v", ErrClassifierUnavailable, err)
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrNoSpeech
	}

	c.logger.WithFields(logrus.Fields{
		"provider":   c.Name(),
		"word_count": len(strings.Fields(transcript)),
	}).Debug("Transcription complete, delegating to text classifier")

	return c.text.Classify(ctx, Input{
		Modality: models.ModalityText,
		Text:     transcript,
	})
}
