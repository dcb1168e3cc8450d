package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/pinecone-io/go-pinecone/pinecone"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Sentira-Labs/sentira-go-sdk/models"
)

// GetPineconeIndex opens an index connection namespaced per user, so one
// user's session history never leaks into another's similarity queries.
// A nil return with nil error means pinecone is simply not configured.
func GetPineconeIndex(userID *string) (*pinecone.IndexConnection, error) {
	ctx := context.Background()
	if userID == nil {
		return nil, nil
	}

	indexName := os.Getenv("PINECONE_INDEX")
	if indexName == "" {
		return nil, fmt.Errorf("PINECONE_INDEX environment variable is not set")
	}

	pineconeAPIKey := os.Getenv("PINECONE_API_KEY")
	if pineconeAPIKey == "" {
		return nil, fmt.Errorf("PINECONE_API_KEY environment variable is not set")
	}

	clientParams := pinecone.NewClientParams{
		ApiKey: pineconeAPIKey,
	}

	client, err := pinecone.NewClient(clientParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pinecone client: %w", err)
	}

	idx, err := client.DescribeIndex(ctx, indexName)
	if err != nil {
		return nil, fmt.Errorf("failed to describe index %q: %v", indexName, err)
	}

	namespace := fmt.Sprintf("sentira-%s", *userID)
	idxConnection, err := client.Index(pinecone.NewIndexConnParams{Host: idx.Host, Namespace: namespace})
	if err != nil {
		return nil, fmt.Errorf("failed to create IndexConnection for Host %v: %v", idx.Host, err)
	}

	return idxConnection, nil
}

// SummaryText renders a session summary as the text that gets embedded and
// stored; the same rendering is used as the query text when looking for
// similar past sessions.
func SummaryText(summary models.SessionSummary) string {
	return fmt.Sprintf(
		"dominant emotion %s over %d samples, wellness %.1f (%s), risk %.1f (%s)",
		summary.DominantEmotion, summary.TotalSamples,
		summary.WellnessScore, summary.WellnessTier,
		summary.RiskScore, summary.RiskTier,
	)
}

// UpsertSessionSummary embeds and stores one session summary in the user's
// namespace.
func UpsertSessionSummary(ctx context.Context, index *pinecone.IndexConnection, summary models.SessionSummary) error {
	text := SummaryText(summary)

	embedding, err := VectorizePrompt("text-embedding-ada-002", ctx, text)
	if err != nil {
		return fmt.Errorf("error vectorizing session summary: %w", err)
	}

	metadata, err := structpb.NewStruct(map[string]interface{}{
		"text":             text,
		"session_id":       summary.SessionID,
		"dominant_emotion": string(summary.DominantEmotion),
		"wellness_score":   summary.WellnessScore,
		"risk_score":       summary.RiskScore,
		"total_samples":    summary.TotalSamples,
		"timestamp":        summary.EndTime.Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to build metadata: %w", err)
	}

	vectorID := fmt.Sprintf("%s-summary", summary.SessionID)
	_, err = index.UpsertVectors(ctx, []*pinecone.Vector{
		{
			Id:       vectorID,
			Values:   embedding,
			Metadata: metadata,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert session summary: %w", err)
	}

	return nil
}

// FindSimilarSessions returns the stored summary texts most similar to the
// given session, for the recurring-pattern insight.
func FindSimilarSessions(ctx context.Context, index *pinecone.IndexConnection, summary models.SessionSummary) ([]string, error) {
	embedding, err := VectorizePrompt("text-embedding-ada-002", ctx, SummaryText(summary))
	if err != nil {
		return nil, fmt.Errorf("error vectorizing prompt: %w", err)
	}
	return QueryPinecone(ctx, embedding, index, 5)
}

func QueryPinecone(ctx context.Context, embedding []float32, index *pinecone.IndexConnection, topK int) ([]string, error) {
	queryRequest := &pinecone.QueryByVectorValuesRequest{
		Vector:          embedding,
		TopK:            uint32(topK),
		IncludeValues:   false,
		IncludeMetadata: true,
	}

	queryResponse, err := index.QueryByVectorValues(ctx, queryRequest)
	if err != nil {
		return nil, fmt.Errorf("error querying Pinecone index: %w", err)
	}

	var matches []string
	for _, match := range queryResponse.Matches {
		if match.Vector == nil || match.Vector.Metadata == nil {
			continue
		}

		value, ok := match.Vector.Metadata.Fields["text"]
		if ok {
			text := value.GetStringValue()
			if text != "" {
				matches = append(matches, text)
			}
		}
	}

	return matches, nil
}

func VectorizePrompt(model string, ctx context.Context, promptText string) ([]float32, error) {
	openAIAPIKey := os.Getenv("OPENAI_API_KEY")
	if openAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	requestBody := map[string]interface{}{
		"input": promptText,
		"model": model,
	}
	requestBodyBytes, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/embeddings", bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+openAIAPIKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send HTTP request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAI API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var responseData struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(bodyBytes, &responseData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response JSON: %w", err)
	}

	if len(responseData.Data) == 0 {
		return nil, fmt.Errorf("no data in OpenAI API response")
	}

	return responseData.Data[0].Embedding, nil
}
