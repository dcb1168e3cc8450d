package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/Sentira-Labs/sentira-go-sdk/classifier"
	"github.com/Sentira-Labs/sentira-go-sdk/models"
)

type analyzeImageRequest struct {
	UserID string `json:"user_id"`
	Image  string `json:"image"` // base64-encoded face image
}

// HandleImageAnalysis scores one facial image via the vision classifier.
func HandleImageAnalysis(w http.ResponseWriter, r *http.Request, deps Deps) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req analyzeImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AnalyzeResponse{Status: "error", Error: "invalid request body"})
		return
	}
	if req.Image == "" {
		writeJSON(w, http.StatusBadRequest, AnalyzeResponse{Status: "error", Error: "image must not be empty"})
		return
	}

	imageBytes, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, AnalyzeResponse{Status: "error", Error: "image must be base64-encoded"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	resp, status := runAnalysis(ctx, deps, "vision-openai",
		classifier.Input{
			Modality: models.ModalityImage,
			Image:    imageBytes,
		},
		models.AnalysisRecord{
			UserID: req.UserID,
		},
	)
	writeJSON(w, status, resp)
}
