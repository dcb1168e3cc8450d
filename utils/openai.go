package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

type OpenAIClient struct {
	APIKey string
	Client *http.Client
}

type GPTMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type GPTResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type ImageContent struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL *struct {
		URL string `json:"url"`
	} `json:"image_url,omitempty"`
}

func NewOpenAIClient() *OpenAIClient {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		zap.L().Error("OPENAI_API_KEY environment variable not set")
		return nil
	}

	return &OpenAIClient{
		APIKey: apiKey,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// ClassifyFacialEmotion asks the vision model for a per-emotion confidence
// distribution over the face in the image. The response maps emotion labels
// to scores in [0,1]; normalization to the canonical scale happens at the
// EmotionVector boundary, not here.
func (c *OpenAIClient) ClassifyFacialEmotion(ctx context.Context, imageData []byte) (map[string]float64, error) {
	prompt := `Analyze the facial expression of the most prominent face in this image and estimate the emotion distribution.

Respond with a JSON object only, no other text, mapping each of these emotion labels to a confidence between 0 and 1 such that the values sum to 1:

{
	"joy": float,
	"sadness": float,
	"anger": float,
	"fear": float,
	"surprise": float,
	"disgust": float,
	"neutral": float
}

If no face is visible, respond with the single word NONE.`

	content, err := c.analyzeImage(ctx, imageData, prompt)
	if err != nil {
		return nil, err
	}

	if strings.Contains(strings.ToUpper(content), "NONE") {
		return nil, fmt.Errorf("no face detected in image")
	}

	// The model occasionally fences the JSON in markdown.
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var distribution map[string]float64
	if err := json.Unmarshal([]byte(content), &distribution); err != nil {
		return nil, fmt.Errorf("failed to parse emotion distribution: %w", err)
	}
	if len(distribution) == 0 {
		return nil, fmt.Errorf("empty emotion distribution in response")
	}

	return distribution, nil
}

func (c *OpenAIClient) analyzeImage(ctx context.Context, imageData []byte, prompt string) (string, error) {
	base64Image := base64.StdEncoding.EncodeToString(imageData)
	imageURL := fmt.Sprintf("data:image/jpeg;base64,%s", base64Image)

	content := []ImageContent{
		{
			Type: "text",
			Text: prompt,
		},
		{
			Type: "image_url",
			ImageURL: &struct {
				URL string `json:"url"`
			}{
				URL: imageURL,
			},
		},
	}

	messages := []GPTMessage{
		{
			Role:    "user",
			Content: content,
		},
	}

	requestBody := map[string]interface{}{
		"model":      "gpt-4o",
		"messages":   messages,
		"max_tokens": 500,
	}

	return c.sendRequest(ctx, requestBody)
}

func (c *OpenAIClient) sendRequest(ctx context.Context, requestBody map[string]interface{}) (string, error) {
	requestBodyBytes, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/chat/completions", bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send HTTP request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenAI API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var response GPTResponse
	if err := json.Unmarshal(bodyBytes, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response JSON: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenAI API response")
	}

	content := response.Choices[0].Message.Content
	zap.L().Debug("OpenAI response content", zap.String("content", content))

	return content, nil
}
