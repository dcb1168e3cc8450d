package handlers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Sentira-Labs/sentira-go-sdk/models"
	"github.com/Sentira-Labs/sentira-go-sdk/scoring"
	"github.com/Sentira-Labs/sentira-go-sdk/utils"
)

type historyResponse struct {
	Records         []models.AnalysisRecord `json:"records"`
	Sessions        []models.SessionSummary `json:"sessions,omitempty"`
	AverageWellness float64                 `json:"average_wellness"`
	WellnessTier    string                  `json:"wellness_tier,omitempty"`
	Insights        []models.Insight        `json:"insights,omitempty"`
}

// HandleHistory returns a user's recent analysis records and realtime
// session summaries with cross-record insights: average wellness and, when
// pinecone is configured, recurring patterns from past session summaries.
func HandleHistory(w http.ResponseWriter, r *http.Request, deps Deps) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id is required"})
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	if deps.Store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "history store not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	records, err := deps.Store.ListRecords(ctx, userID, limit)
	if err != nil {
		zap.L().Error("Failed to list analysis records", zap.Error(err), zap.String("user_id", userID))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load history"})
		return
	}

	resp := historyResponse{Records: records}

	sessions, err := deps.Store.ListSessionSummaries(ctx, userID, limit)
	if err != nil {
		zap.L().Warn("Failed to list session summaries", zap.Error(err), zap.String("user_id", userID))
	} else {
		resp.Sessions = sessions
	}

	if len(records) > 0 {
		var total float64
		for _, rec := range records {
			total += rec.Result.WellnessScore
		}
		avg := math.Round(total/float64(len(records))*10) / 10
		resp.AverageWellness = avg
		resp.WellnessTier = scoring.WellnessTier(avg).Label
		resp.Insights = append(resp.Insights, models.Insight{
			Title:   "Wellness Trend",
			Content: fmt.Sprintf("Your average wellness score across your last %d analyses is %.1f/100 (%s).", len(records), avg, resp.WellnessTier),
		})

		resp.Insights = append(resp.Insights, similarSessionInsights(ctx, userID, records[0])...)
	}

	writeJSON(w, http.StatusOK, resp)
}

// similarSessionInsights is best-effort: without pinecone or embeddings the
// history response simply carries fewer insights.
func similarSessionInsights(ctx context.Context, userID string, latest models.AnalysisRecord) []models.Insight {
	idx, err := utils.GetPineconeIndex(&userID)
	if err != nil || idx == nil {
		return nil
	}

	summary := models.SessionSummary{
		SessionID:       latest.ID,
		UserID:          userID,
		DominantEmotion: latest.Result.DominantEmotion,
		TotalSamples:    latest.FrameCount,
		WellnessScore:   latest.Result.WellnessScore,
		WellnessTier:    latest.Result.WellnessTier,
		RiskScore:       latest.Result.RiskScore,
		RiskTier:        latest.Result.RiskTier,
		EndTime:         latest.CreatedAt,
	}

	similar, err := utils.FindSimilarSessions(ctx, idx, summary)
	if err != nil || len(similar) < 2 {
		return nil
	}

	return []models.Insight{{
		Title:   "Recurring Pattern",
		Content: fmt.Sprintf("Several of your past sessions look similar to this one (for example: %s). Recurring emotional patterns are worth discussing with someone you trust.", similar[0]),
	}}
}
