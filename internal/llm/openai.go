// Package llm provides the chat-completion collaborator used for
// conversational framing. The agent treats it as best-effort: a failed
// call degrades to an inline error string, never a failed request.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/vthunder/optslot/internal/logging"
)

const (
	defaultBaseURL = "https://api.openai.com/v1/chat/completions"
	defaultModel   = "gpt-3.5-turbo"

	// fixed generation settings; short, deterministic framing text
	maxTokens   = 200
	temperature = 0.2
)

const systemPrompt = "You are a helpful warehouse management assistant. " +
	"If the user asks about warehouse slotting, inventory, or assignments, " +
	"respond with clear, concise, and actionable information. If the user " +
	"asks for a specific action (like assigning an item to a slot), respond " +
	"with a short confirmation and the action taken."

// ChatClient produces free-form framing text for one user utterance
type ChatClient interface {
	Chat(ctx context.Context, userMessage string) (string, error)
}

// OpenAI wire types (chat completions API)

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// OpenAIClient calls the OpenAI chat completions API over plain HTTP.
// Single attempt per call, no retry.
type OpenAIClient struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

// NewOpenAIClient reads OPENAI_API_KEY and OPENAI_MODEL from the
// environment. A missing key is an error; the caller decides whether to
// run without framing text.
func NewOpenAIClient() (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = defaultModel
	}
	logging.Info("llm", "using OpenAI model %s", model)
	return NewOpenAIClientWithConfig(apiKey, model, defaultBaseURL), nil
}

// NewOpenAIClientWithConfig builds a client with explicit settings,
// mainly for tests against a mock server.
func NewOpenAIClientWithConfig(apiKey, model, baseURL string) *OpenAIClient {
	return &OpenAIClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
	}
}

// Chat sends the fixed system prompt plus one user message and returns
// the assistant text.
func (c *OpenAIClient) Chat(ctx context.Context, userMessage string) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	logging.Debug("llm", "chat request: %s", logging.Truncate(userMessage, 60))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response (status %d): %w", resp.StatusCode, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("API error: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty response")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
