package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Sentira-Labs/sentira-go-sdk/classifier"
	"github.com/Sentira-Labs/sentira-go-sdk/models"
)

// previewLimit truncates persisted text for privacy; only the first part of
// an input is ever stored.
const previewLimit = 500

type analyzeTextRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

// HandleTextAnalysis scores one text sample: classify, score, tier,
// insights, persist.
func HandleTextAnalysis(w http.ResponseWriter, r *http.Request, deps Deps) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req analyzeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AnalyzeResponse{Status: "error", Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, AnalyzeResponse{Status: "error", Error: "text must not be empty"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	preview := req.Text
	if len(preview) > previewLimit {
		preview = preview[:previewLimit]
	}

	resp, status := runAnalysis(ctx, deps, "text-transformer",
		classifier.Input{
			Modality: models.ModalityText,
			Text:     req.Text,
		},
		models.AnalysisRecord{
			UserID:       req.UserID,
			InputPreview: preview,
			WordCount:    len(strings.Fields(req.Text)),
		},
	)
	writeJSON(w, status, resp)
}
