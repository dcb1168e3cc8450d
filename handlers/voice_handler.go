package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/Sentira-Labs/sentira-go-sdk/classifier"
	"github.com/Sentira-Labs/sentira-go-sdk/models"
)

type analyzeVoiceRequest struct {
	UserID   string `json:"user_id"`
	Audio    string `json:"audio"` // base64-encoded recording
	MimeType string `json:"mime_type"`
}

// HandleVoiceAnalysis scores one voice recording. The voice classifier
// transcribes the audio and scores the transcript; a recording with no
// usable speech comes back indeterminate, never neutrally scored.
func HandleVoiceAnalysis(w http.ResponseWriter, r *http.Request, deps Deps) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req analyzeVoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AnalyzeResponse{Status: "error", Error: "invalid request body"})
		return
	}
	if req.Audio == "" {
		writeJSON(w, http.StatusBadRequest, AnalyzeResponse{Status: "error", Error: "audio must not be empty"})
		return
	}

	audioBytes, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, AnalyzeResponse{Status: "error", Error: "audio must be base64-encoded"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	resp, status := runAnalysis(ctx, deps, "voice-deepgram",
		classifier.Input{
			Modality: models.ModalityVoice,
			Audio:    audioBytes,
			MimeType: req.MimeType,
		},
		models.AnalysisRecord{
			UserID: req.UserID,
		},
	)
	writeJSON(w, status, resp)
}
