package handlers

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Sentira-Labs/sentira-go-sdk/scoring"
)

// AnalysisSession is the state of one realtime websocket session. Each
// session exclusively owns its aggregator; nothing outside the session's
// goroutines touches it.
type AnalysisSession struct {
	ID          string
	UserID      string
	Connection  *websocket.Conn
	RedisClient *redis.Client
	Logger      *zap.Logger

	Aggregator *scoring.SessionAggregator

	IsActive     bool
	StartTime    time.Time
	LastActivity time.Time

	// FrameStride records every Nth frame; the client controls its own
	// capture rate, this is a server-side downsample on top of it.
	FrameStride int

	framesSeen int
}

func NewAnalysisSession(id, userID string, conn *websocket.Conn, redisClient *redis.Client) *AnalysisSession {
	logger := zap.L().With(
		zap.String("session_id", id),
		zap.String("user_id", userID),
	)

	return &AnalysisSession{
		ID:          id,
		UserID:      userID,
		Connection:  conn,
		RedisClient: redisClient,
		Logger:      logger,

		Aggregator: scoring.NewSessionAggregator(),

		IsActive:     true,
		StartTime:    time.Now(),
		LastActivity: time.Now(),

		FrameStride: 1,
	}
}

// Stop ends the session. Idempotent; the websocket close triggers the read
// loop to exit.
func (s *AnalysisSession) Stop() {
	if !s.IsActive {
		return
	}
	s.Logger.Info("Stopping session")
	s.IsActive = false

	if s.Connection != nil {
		s.Connection.Close()
	}
}

type WebSocketMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

func (s *AnalysisSession) sendWebSocketMessage(msgType string, data interface{}) {
	msg := WebSocketMessage{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now(),
	}

	err := s.Connection.WriteJSON(msg)
	if err != nil {
		s.Logger.Error("Failed to send websocket message", zap.Error(err), zap.String("type", msgType))
	}
}
