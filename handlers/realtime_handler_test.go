package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sentira-Labs/sentira-go-sdk/models"
)

type wsEnvelope struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

func dialRealtime(t *testing.T, deps Deps) (*websocket.Conn, func()) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HandleRealtimeSession(w, r, deps)
	}))

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/?user_id=u1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	return conn, func() {
		conn.Close()
		server.Close()
	}
}

func readEnvelope(t *testing.T, conn *websocket.Conn) wsEnvelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg wsEnvelope
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestRealtimeSessionEndMarkerStopsSession(t *testing.T) {
	conn, cleanup := dialRealtime(t, mockDeps(t))
	defer cleanup()

	started := readEnvelope(t, conn)
	assert.Equal(t, "session_started", started.Type)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": models.SESSION_END}))

	final := readEnvelope(t, conn)
	require.Equal(t, "session_summary", final.Type)

	var summary models.SessionSummary
	require.NoError(t, json.Unmarshal(final.Data, &summary))
	assert.Equal(t, 0, summary.TotalSamples)
	assert.Empty(t, summary.DominantEmotion)
	assert.Equal(t, 50.0, summary.WellnessScore)
}

func TestRealtimeFramesCountedAndNoSignalFramesRejected(t *testing.T) {
	conn, cleanup := dialRealtime(t, mockDeps(t))
	defer cleanup()

	started := readEnvelope(t, conn)
	require.Equal(t, "session_started", started.Type)

	// A frame with real scores is counted.
	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "frame",
		"data": map[string]any{
			"scores": []map[string]any{
				{"label": "joy", "score": 0.9},
				{"label": "neutral", "score": 0.1},
			},
		},
	}))
	result := readEnvelope(t, conn)
	require.Equal(t, "frame_result", result.Type)

	var frame struct {
		DominantEmotion string  `json:"dominant_emotion"`
		Confidence      float64 `json:"confidence"`
		TotalSamples    int     `json:"total_samples"`
	}
	require.NoError(t, json.Unmarshal(result.Data, &frame))
	assert.Equal(t, "joy", frame.DominantEmotion)
	assert.Equal(t, 1, frame.TotalSamples)

	// A frame with neither scores nor image is no-signal.
	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "frame",
		"data": map[string]any{},
	}))
	assert.Equal(t, "error", readEnvelope(t, conn).Type)

	// So is a frame whose scores are all zero.
	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "frame",
		"data": map[string]any{
			"scores": []map[string]any{{"label": "joy", "score": 0}},
		},
	}))
	assert.Equal(t, "error", readEnvelope(t, conn).Type)

	// Neither rejected frame entered the aggregate.
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "summary"}))
	summaryMsg := readEnvelope(t, conn)
	require.Equal(t, "session_summary", summaryMsg.Type)

	var summary models.SessionSummary
	require.NoError(t, json.Unmarshal(summaryMsg.Data, &summary))
	assert.Equal(t, 1, summary.TotalSamples)
	assert.Equal(t, models.Joy, summary.DominantEmotion)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "stop"}))
	final := readEnvelope(t, conn)
	assert.Equal(t, "session_summary", final.Type)
}
