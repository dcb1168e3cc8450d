package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Sentira-Labs/sentira-go-sdk/classifier"
	"github.com/Sentira-Labs/sentira-go-sdk/metrics"
	"github.com/Sentira-Labs/sentira-go-sdk/models"
	"github.com/Sentira-Labs/sentira-go-sdk/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow connections from any origin
	},
}

// clientMessage is what the realtime client sends; Data is decoded per type.
type clientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// framePayload is one sample from the client: either classifier output the
// client computed locally, or a base64 image for server-side vision
// classification.
type framePayload struct {
	Scores []models.LabelScore `json:"scores,omitempty"`
	Image  string              `json:"image,omitempty"`
}

type configPayload struct {
	FrameStride int `json:"frame_stride"`
}

// HandleRealtimeSession upgrades the connection and runs one realtime
// analysis session: per-frame emotion vectors feed the session aggregator,
// and the aggregate summary is re-scored on demand and at session end.
func HandleRealtimeSession(w http.ResponseWriter, r *http.Request, deps Deps) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.L().Error("Failed to upgrade to websocket", zap.Error(err))
		return
	}
	defer conn.Close()

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = "anonymous"
	}

	sessionID := uuid.New().String()
	session := NewAnalysisSession(sessionID, userID, conn, deps.Redis)
	session.Logger.Info("New realtime analysis session started")

	metrics.ActiveRealtimeSessions.Inc()
	defer metrics.ActiveRealtimeSessions.Dec()

	session.sendWebSocketMessage("session_started", map[string]interface{}{
		"session_id": session.ID,
	})

	session.listenWebsocketMessages(conn, deps)

	// Whatever ended the loop, the session's samples become a summary.
	session.finalize(deps)
	session.Logger.Info("Realtime analysis session ended")
	session.Stop()
}

func (session *AnalysisSession) listenWebsocketMessages(conn *websocket.Conn, deps Deps) {
	for {
		var msg clientMessage
		err := conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				session.Logger.Error("WebSocket error", zap.Error(err))
			}
			return
		}
		session.LastActivity = time.Now()

		switch msg.Type {
		case "frame":
			session.handleFrame(msg.Data, deps)
		case "summary":
			summary := session.snapshotSummary()
			session.sendWebSocketMessage("session_summary", summary)
		case "reset":
			// An explicit state transition: counts are cleared, nothing is
			// carried over into the new session window.
			session.Aggregator.Reset()
			session.Logger.Info("Session aggregator reset")
			session.sendWebSocketMessage("session_reset", map[string]interface{}{
				"session_id": session.ID,
			})
		case "config":
			session.handleConfigMessage(msg.Data)
		case "ping":
			session.sendWebSocketMessage("pong", nil)
		case "stop", models.SESSION_END:
			session.Logger.Info("Received stop command from client")
			return
		default:
			session.Logger.Warn("Unknown message type", zap.String("type", msg.Type))
		}
	}
}

func (session *AnalysisSession) handleFrame(data json.RawMessage, deps Deps) {
	var payload framePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		session.Logger.Error("Invalid frame payload", zap.Error(err))
		session.sendWebSocketMessage("error", map[string]interface{}{"error": "invalid frame payload"})
		return
	}

	session.framesSeen++
	if session.FrameStride > 1 && session.framesSeen%session.FrameStride != 0 {
		return
	}

	vector, err := session.frameVector(payload, deps)
	if err != nil {
		// A failed sample is simply not counted; the aggregator state is
		// untouched.
		session.Logger.Warn("Frame not counted", zap.Error(err))
		session.sendWebSocketMessage("error", map[string]interface{}{"error": err.Error()})
		return
	}

	dominant, confidence, err := session.Aggregator.Record(vector)
	if err != nil {
		session.Logger.Warn("Frame not counted", zap.Error(err))
		session.sendWebSocketMessage("error", map[string]interface{}{"error": err.Error()})
		return
	}

	session.sendWebSocketMessage("frame_result", map[string]interface{}{
		"dominant_emotion": dominant,
		"confidence":       confidence,
		"total_samples":    session.Aggregator.Total(),
	})
}

func (session *AnalysisSession) frameVector(payload framePayload, deps Deps) (models.EmotionVector, error) {
	if payload.Image != "" {
		imgBytes, err := base64.StdEncoding.DecodeString(payload.Image)
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return deps.Registry.ClassifyWith(ctx, "vision-openai", classifier.Input{
			Modality: models.ModalityImage,
			Image:    imgBytes,
		})
	}

	if len(payload.Scores) == 0 {
		return nil, fmt.Errorf("%w: frame carried neither scores nor image", models.ErrNoSignal)
	}
	return models.NewEmotionVector(payload.Scores)
}

func (session *AnalysisSession) handleConfigMessage(data json.RawMessage) {
	var payload configPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		session.Logger.Error("Invalid config data format", zap.Error(err))
		return
	}

	if payload.FrameStride > 0 {
		session.FrameStride = payload.FrameStride
		session.Logger.Info("Updated frame stride", zap.Int("frame_stride", session.FrameStride))
	}

	session.sendWebSocketMessage("config_updated", map[string]interface{}{
		"frame_stride": session.FrameStride,
	})
}

func (session *AnalysisSession) snapshotSummary() models.SessionSummary {
	summary := session.Aggregator.Snapshot()
	summary.SessionID = session.ID
	summary.UserID = session.UserID
	summary.StartTime = session.StartTime
	return summary
}

// finalize sends the final summary and persists it. Sessions with no
// counted samples leave no trace.
func (session *AnalysisSession) finalize(deps Deps) {
	summary := session.snapshotSummary()
	session.sendWebSocketMessage("session_summary", summary)

	if summary.TotalSamples == 0 {
		return
	}

	metrics.ObserveResult(string(models.ModalityRealtime), summary.WellnessScore, summary.RiskScore)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if deps.Store != nil {
		if err := deps.Store.SaveSessionSummary(ctx, summary); err != nil {
			session.Logger.Error("Failed to save session summary", zap.Error(err))
		}

		record := models.AnalysisRecord{
			ID:       uuid.New().String(),
			UserID:   session.UserID,
			Modality: models.ModalityRealtime,
			Result: models.ScoreResult{
				DominantEmotion: summary.DominantEmotion,
				WellnessScore:   summary.WellnessScore,
				WellnessTier:    summary.WellnessTier,
				RiskScore:       summary.RiskScore,
				RiskTier:        summary.RiskTier,
				Timestamp:       summary.EndTime,
			},
			FrameCount: summary.TotalSamples,
			CreatedAt:  time.Now(),
		}
		if err := deps.Store.SaveRecord(ctx, record); err != nil {
			session.Logger.Error("Failed to save realtime analysis record", zap.Error(err))
		}
	}

	// Session history embeddings are best-effort: without pinecone the
	// summary is still persisted above.
	idx, err := utils.GetPineconeIndex(&session.UserID)
	if err != nil || idx == nil {
		if err != nil {
			session.Logger.Warn("Pinecone unavailable, skipping summary embedding", zap.Error(err))
		}
		return
	}
	if err := utils.UpsertSessionSummary(ctx, idx, summary); err != nil {
		session.Logger.Warn("Failed to embed session summary", zap.Error(err))
	}
}
