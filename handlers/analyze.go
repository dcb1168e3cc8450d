// Package handlers exposes the HTTP and WebSocket surface over the scoring
// core. Handlers classify via the registry, score via the scoring package,
// and hand records to the store; they own no scoring logic themselves.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Sentira-Labs/sentira-go-sdk/classifier"
	"github.com/Sentira-Labs/sentira-go-sdk/metrics"
	"github.com/Sentira-Labs/sentira-go-sdk/models"
	"github.com/Sentira-Labs/sentira-go-sdk/scoring"
)

// AnalysisStore is the persistence surface the handlers depend on; the redis
// implementation lives in the store package.
type AnalysisStore interface {
	SaveRecord(ctx context.Context, rec models.AnalysisRecord) error
	ListRecords(ctx context.Context, userID string, limit int) ([]models.AnalysisRecord, error)
	SaveSessionSummary(ctx context.Context, summary models.SessionSummary) error
	ListSessionSummaries(ctx context.Context, userID string, limit int) ([]models.SessionSummary, error)
}

// Deps carries the collaborators every handler needs. Store and Redis may
// be nil; analyses still complete, they just are not persisted.
type Deps struct {
	Registry *classifier.Registry
	Store    AnalysisStore
	Redis    *redis.Client
}

// AnalyzeResponse is the JSON shape of every one-shot analysis endpoint.
// Status is "ok" when a result is present and "indeterminate" when the
// classifier could not produce a vector.
type AnalyzeResponse struct {
	Status       string              `json:"status"`
	Result       *models.ScoreResult `json:"result,omitempty"`
	Insights     []models.Insight    `json:"insights,omitempty"`
	RiskTier     *scoring.Tier       `json:"risk_tier,omitempty"`
	WellnessTier *scoring.Tier       `json:"wellness_tier,omitempty"`
	Error        string              `json:"error,omitempty"`
}

const analyzeTimeout = 60 * time.Second

// runAnalysis classifies one input with the named provider, scores it, and
// persists the record. The returned response is ready to serialize.
func runAnalysis(ctx context.Context, deps Deps, providerName string, input classifier.Input, record models.AnalysisRecord) (AnalyzeResponse, int) {
	vector, err := deps.Registry.ClassifyWith(ctx, providerName, input)
	if err != nil {
		return classifyErrorResponse(err)
	}

	result, err := scoring.Score(vector)
	if err != nil {
		return classifyErrorResponse(err)
	}
	insights := scoring.Insights(vector, result)
	riskTier := scoring.RiskTier(result.RiskScore)
	wellnessTier := scoring.WellnessTier(result.WellnessScore)

	metrics.ObserveResult(string(input.Modality), result.WellnessScore, result.RiskScore)

	record.ID = uuid.New().String()
	record.Modality = input.Modality
	record.Result = result
	record.CreatedAt = time.Now()

	if deps.Store != nil && record.UserID != "" {
		if err := deps.Store.SaveRecord(ctx, record); err != nil {
			// The analysis itself succeeded; persistence failure is reported
			// in logs, not to the caller.
			zap.L().Error("Failed to save analysis record", zap.Error(err), zap.String("user_id", record.UserID))
		}
	}

	return AnalyzeResponse{
		Status:       "ok",
		Result:       &result,
		Insights:     insights,
		RiskTier:     &riskTier,
		WellnessTier: &wellnessTier,
	}, http.StatusOK
}

// classifyErrorResponse maps classifier failures onto the error contract:
// unavailable backends yield an explicit indeterminate result, malformed
// input a client error. No path invents a neutral-looking score.
func classifyErrorResponse(err error) (AnalyzeResponse, int) {
	switch {
	case errors.Is(err, classifier.ErrClassifierUnavailable), errors.Is(err, classifier.ErrNoProviderAvailable):
		return AnalyzeResponse{Status: "indeterminate", Error: err.Error()}, http.StatusServiceUnavailable
	case errors.Is(err, classifier.ErrNoSpeech), errors.Is(err, models.ErrNoSignal):
		return AnalyzeResponse{Status: "indeterminate", Error: err.Error()}, http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrUnknownEmotion), errors.Is(err, models.ErrMalformedVector):
		return AnalyzeResponse{Status: "error", Error: err.Error()}, http.StatusUnprocessableEntity
	default:
		return AnalyzeResponse{Status: "error", Error: err.Error()}, http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Error("Failed to encode response", zap.Error(err))
	}
}

// HealthCheckHandler reports liveness.
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
