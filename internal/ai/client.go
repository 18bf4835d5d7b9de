// Package ai calls an OpenAI-compatible chat endpoint to turn a
// project description into candidate task drafts. Drafts are untrusted
// input: everything is validated against the closed sets before a
// draft may enter the batch-create path.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4-turbo"
)

const systemPrompt = `You are a project planning assistant. When given a project description, create a list of specific, actionable tasks in JSON format. Each task must have these exact fields:
- title (string): A clear, concise task name
- description (string): Detailed explanation of what needs to be done
- priority (string): Must be exactly "HIGH", "MEDIUM", or "LOW"
- status (string): Must be exactly "TO_DO"
- estimated_time (number): Estimated hours to complete

Respond with a JSON object of the form {"tasks": [...]}.`

// Client talks to the draft-generation service.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, model string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	TopP           float64       `json:"top_p"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

type draftEnvelope struct {
	Tasks []Draft `json:"tasks"`
}

// GenerateDrafts asks the model for task drafts. The returned slice
// contains only the drafts that survived validation; malformed drafts
// are discarded, and discarded reports how many were dropped.
func (c *Client) GenerateDrafts(ctx context.Context, projectDescription string) (valid []Draft, discarded int, err error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: projectDescription},
		},
		Temperature: 0.3,
		MaxTokens:   800,
		TopP:        0.9,
	}
	reqBody.ResponseFormat.Type = "json_object"

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, 0, err
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("draft generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, 0, fmt.Errorf("draft generation API error: %s", apiErr.Error.Message)
		}
		return nil, 0, fmt.Errorf("draft generation API error: %s", resp.Status)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, 0, fmt.Errorf("decode draft response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, 0, fmt.Errorf("draft response has no choices")
	}

	var env draftEnvelope
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &env); err != nil {
		return nil, 0, fmt.Errorf("parse draft payload: %w", err)
	}

	valid, discarded = FilterValid(env.Tasks)
	return valid, discarded, nil
}
