// Package store persists analysis records and session summaries. The
// scoring core only produces the records; everything about their storage
// (keys, retention, encoding) lives here and can be swapped without touching
// scoring logic.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Sentira-Labs/sentira-go-sdk/models"
)

// maxRecordsPerUser caps each user's history list.
const maxRecordsPerUser = 500

type AnalysisStore struct {
	client *redis.Client
	logger *logrus.Logger
}

func NewAnalysisStore(client *redis.Client, logger *logrus.Logger) *AnalysisStore {
	return &AnalysisStore{
		client: client,
		logger: logger,
	}
}

func recordsKey(userID string) string {
	return "sentira:records:" + userID
}

func sessionsKey(userID string) string {
	return "sentira:sessions:" + userID
}

// SaveRecord appends one analysis record to the user's history, newest
// first, trimming the list to its cap.
func (s *AnalysisStore) SaveRecord(ctx context.Context, rec models.AnalysisRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis record: %w", err)
	}

	key := recordsKey(rec.UserID)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, b)
	pipe.LTrim(ctx, key, 0, maxRecordsPerUser-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save analysis record: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  rec.UserID,
		"modality": rec.Modality,
		"record":   rec.ID,
	}).Debug("Saved analysis record")

	return nil
}

// ListRecords returns up to limit of the user's most recent records, newest
// first.
func (s *AnalysisStore) ListRecords(ctx context.Context, userID string, limit int) ([]models.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	raw, err := s.client.LRange(ctx, recordsKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis records: %w", err)
	}

	records := make([]models.AnalysisRecord, 0, len(raw))
	for _, item := range raw {
		var rec models.AnalysisRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			s.logger.WithError(err).Warn("Skipping undecodable analysis record")
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// SaveSessionSummary appends one realtime session summary to the user's
// session history.
func (s *AnalysisStore) SaveSessionSummary(ctx context.Context, summary models.SessionSummary) error {
	b, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal session summary: %w", err)
	}

	key := sessionsKey(summary.UserID)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, b)
	pipe.LTrim(ctx, key, 0, maxRecordsPerUser-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session summary: %w", err)
	}

	return nil
}

// ListSessionSummaries returns up to limit of the user's most recent
// realtime session summaries, newest first.
func (s *AnalysisStore) ListSessionSummaries(ctx context.Context, userID string, limit int) ([]models.SessionSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	raw, err := s.client.LRange(ctx, sessionsKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list session summaries: %w", err)
	}

	summaries := make([]models.SessionSummary, 0, len(raw))
	for _, item := range raw {
		var summary models.SessionSummary
		if err := json.Unmarshal([]byte(item), &summary); err != nil {
			s.logger.WithError(err).Warn("Skipping undecodable session summary")
			continue
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}
