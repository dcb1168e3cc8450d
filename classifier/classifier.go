// Package classifier defines the capability boundary to the external
// emotion models. The scoring core only ever sees the EmotionVector a
// Classifier returns; swapping a backend never touches scoring logic.
package classifier

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sentira-Labs/sentira-go-sdk/metrics"
	"github.com/Sentira-Labs/sentira-go-sdk/models"
)

var (
	// ErrClassifierUnavailable means the backend model could not be loaded
	// or invoked. Callers must surface an indeterminate result rather than
	// scoring a missing vector.
	ErrClassifierUnavailable = errors.New("emotion classifier unavailable")

	// ErrNoProviderAvailable means neither the requested nor the default
	// classifier is registered.
	ErrNoProviderAvailable = errors.New("no classifier provider available")

	// ErrNoSpeech means the voice pipeline transcribed no usable speech.
	ErrNoSpeech = errors.New("no speech detected in audio")
)

// Input is one sample handed to a classifier. Exactly one payload field is
// set, matching the modality.
type Input struct {
	Modality models.Modality
	Text     string
	Audio    []byte
	MimeType string
	Image    []byte
}

// Classifier turns one input sample into a normalized emotion vector.
type Classifier interface {
	// Initialize verifies the provider's configuration.
	Initialize() error

	// Name returns the provider name.
	Name() string

	// Classify returns the emotion distribution for the input, or an error
	// wrapping ErrClassifierUnavailable when the backend cannot be reached.
	Classify(ctx context.Context, input Input) (models.EmotionVector, error)
}

// Registry holds the registered classifiers and routes requests to them,
// falling back to the default provider when a name is unknown.
type Registry struct {
	logger          *logrus.Logger
	providers       map[string]Classifier
	defaultProvider string
}

func NewRegistry(logger *logrus.Logger, defaultProvider string) *Registry {
	return &Registry{
		logger:          logger,
		providers:       make(map[string]Classifier),
		defaultProvider: defaultProvider,
	}
}

// Register initializes and adds a classifier provider.
func (r *Registry) Register(provider Classifier) error {
	if err := provider.Initialize(); err != nil {
		r.logger.WithFields(logrus.Fields{
			"provider": provider.Name(),
			"error":    err,
		}).Error("Failed to initialize emotion classifier")
		return err
	}

	r.providers[provider.Name()] = provider
	r.logger.WithField("provider", provider.Name()).Info("Registered emotion classifier")
	return nil
}

// Get returns a provider by name.
func (r *Registry) Get(name string) (Classifier, bool) {
	provider, exists := r.providers[name]
	return provider, exists
}

// GetDefault returns the default provider.
func (r *Registry) GetDefault() (Classifier, bool) {
	return r.Get(r.defaultProvider)
}

// ClassifyWith routes one input to the named provider, falling back to the
// default when the name is unknown.
func (r *Registry) ClassifyWith(ctx context.Context, providerName string, input Input) (models.EmotionVector, error) {
	startTime := time.Now()

	provider, exists := r.Get(providerName)
	if !exists {
		r.logger.WithFields(logrus.Fields{
			"provider":         providerName,
			"default_provider": r.defaultProvider,
		}).Warn("Classifier not found, falling back to default")

		provider, exists = r.GetDefault()
		if !exists {
			return nil, ErrNoProviderAvailable
		}
	}

	vector, err := provider.Classify(ctx, input)
	if err != nil {
		// Attributed to the provider that ran, which after a fallback is
		// the default, not the requested name.
		metrics.ClassifierFailures.WithLabelValues(provider.Name()).Inc()
	}

	elapsed := time.Since(startTime)
	r.logger.WithFields(logrus.Fields{
		"provider":    provider.Name(),
		"modality":    input.Modality,
		"duration_ms": elapsed.Milliseconds(),
		"error":       err != nil,
	}).Info("Classification completed")

	return vector, err
}
