package utils

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	listenv1rest "github.com/deepgram/deepgram-go-sdk/pkg/api/listen/v1/rest"
	"github.com/deepgram/deepgram-go-sdk/pkg/client/interfaces"
	listen "github.com/deepgram/deepgram-go-sdk/pkg/client/listen"
)

// DeepgramTranscriber wraps the Deepgram prerecorded REST API for one-shot
// voice uploads. Voice samples arrive as complete recordings, so the live
// streaming client is not used here.
type DeepgramTranscriber struct {
	client *listenv1rest.Client
	lang   string
}

func NewDeepgramTranscriber(lang string) *DeepgramTranscriber {
	apiKey := os.Getenv("DEEPGRAM_API_KEY")
	if apiKey == "" {
		log.Error("DEEPGRAM_API_KEY environment variable not set")
		return nil
	}

	if lang == "" {
		lang = "en"
	}

	c := listen.NewRESTWithDefaults()
	return &DeepgramTranscriber{
		client: listenv1rest.New(c),
		lang:   lang,
	}
}

// TranscribeAudio sends one complete recording to Deepgram and returns the
// transcript of the first channel's best alternative. An empty transcript is
// not an error; the caller decides what silence means.
func (t *DeepgramTranscriber) TranscribeAudio(ctx context.Context, audio []byte, mimeType string) (string, error) {
	options := &interfaces.PreRecordedTranscriptionOptions{
		Model:       "nova-2",
		Language:    t.lang,
		SmartFormat: true,
		Punctuate:   true,
	}

	res, err := t.client.FromStream(ctx, bytes.NewReader(audio), options)
	if err != nil {
		return "", fmt.Errorf("deepgram transcription: %w", err)
	}

	if len(res.Results.Channels) == 0 || len(res.Results.Channels[0].Alternatives) == 0 {
		return "", nil
	}

	transcript := res.Results.Channels[0].Alternatives[0].Transcript
	log.WithFields(log.Fields{
		"mime_type":  mimeType,
		"word_count": len(strings.Fields(transcript)),
	}).Debug("Deepgram transcription complete")

	return transcript, nil
}
