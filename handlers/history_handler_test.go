package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sentira-Labs/sentira-go-sdk/models"
)

// stubStore is an in-memory AnalysisStore for handler tests.
type stubStore struct {
	records   []models.AnalysisRecord
	summaries []models.SessionSummary
	saved     []models.AnalysisRecord
}

func (s *stubStore) SaveRecord(ctx context.Context, rec models.AnalysisRecord) error {
	s.saved = append(s.saved, rec)
	return nil
}

func (s *stubStore) ListRecords(ctx context.Context, userID string, limit int) ([]models.AnalysisRecord, error) {
	return s.records, nil
}

func (s *stubStore) SaveSessionSummary(ctx context.Context, summary models.SessionSummary) error {
	return nil
}

func (s *stubStore) ListSessionSummaries(ctx context.Context, userID string, limit int) ([]models.SessionSummary, error) {
	return s.summaries, nil
}

func TestHandleHistoryRequiresUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rec := httptest.NewRecorder()
	HandleHistory(rec, req, mockDeps(t))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHistoryMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/history?user_id=u1", nil)
	rec := httptest.NewRecorder()
	HandleHistory(rec, req, mockDeps(t))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleHistoryWithoutStore(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/history?user_id=u1", nil)
	rec := httptest.NewRecorder()
	HandleHistory(rec, req, mockDeps(t))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleHistoryReturnsRecordsAndSessions(t *testing.T) {
	now := time.Now()
	deps := mockDeps(t)
	deps.Store = &stubStore{
		records: []models.AnalysisRecord{
			{
				ID:        "r1",
				UserID:    "u1",
				Modality:  models.ModalityText,
				Result:    models.ScoreResult{DominantEmotion: models.Joy, WellnessScore: 80.0},
				CreatedAt: now,
			},
			{
				ID:        "r2",
				UserID:    "u1",
				Modality:  models.ModalityVoice,
				Result:    models.ScoreResult{DominantEmotion: models.Neutral, WellnessScore: 60.0},
				CreatedAt: now.Add(-time.Hour),
			},
		},
		summaries: []models.SessionSummary{
			{SessionID: "s1", UserID: "u1", TotalSamples: 12, DominantEmotion: models.Joy},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/history?user_id=u1", nil)
	rec := httptest.NewRecorder()
	HandleHistory(rec, req, deps)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp historyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Len(t, resp.Records, 2)
	require.Len(t, resp.Sessions, 1)
	assert.Equal(t, "s1", resp.Sessions[0].SessionID)

	assert.Equal(t, 70.0, resp.AverageWellness)
	assert.Equal(t, "Good", resp.WellnessTier)

	require.NotEmpty(t, resp.Insights)
	assert.Equal(t, "Wellness Trend", resp.Insights[0].Title)
}
