// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai wraps the OpenAI chat completions API (POST /chat/completions)
// with a synchronous call and a streamed variant that accumulates SSE
// deltas. Credentials come from runtime settings, so a Client is cheap to
// construct per request.
package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// syncTimeout bounds the synchronous completion call. The streaming call
// carries no client timeout: it is bounded by the provider closing the
// event stream.
const syncTimeout = 15 * time.Second

// ErrEmptyResponse is returned when the provider answers 200 but the
// completion carries no text.
var ErrEmptyResponse = errors.New("ai: no content in completion response")

// APIError is a non-success answer from the provider. Detail carries the
// provider's own error message verbatim when it could be parsed, else the
// raw response body.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ai: API error (status %d): %s", e.StatusCode, e.Detail)
}

// Config holds the credentials and settings for the completions API.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Client calls the chat completions endpoint.
type Client struct {
	config Config
	sync   *http.Client
	stream *http.Client
}

// New creates a Client. BaseURL defaults to the public OpenAI API.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	return &Client{
		config: cfg,
		sync:   &http.Client{Timeout: syncTimeout},
		stream: &http.Client{},
	}
}

// Complete sends a system+user message pair and returns the first
// choice's trimmed text. Returns ErrEmptyResponse when the provider
// answers successfully but with no text, and *APIError on non-2xx.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	resp, err := c.post(ctx, c.sync, chatRequest{
		Model:       c.config.Model,
		Messages:    buildMessages(systemPrompt, userPrompt),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ai: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", errorFromBody(resp.StatusCode, body)
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("ai: unmarshal response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(result.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// CompleteStream sends the same request with streaming enabled and
// accumulates the incremental deltas into one string. Event lines are
// prefixed "data: "; the literal "[DONE]" terminates the stream.
// Malformed fragments within a chunk are skipped, not fatal: losing one
// delta beats aborting an otherwise successful generation.
func (c *Client) CompleteStream(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	resp, err := c.post(ctx, c.stream, chatRequest{
		Model:       c.config.Model,
		Messages:    buildMessages(systemPrompt, userPrompt),
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Stream:      true,
	})
	if err != nil {
		return "", err
	}
	// Closing the body releases the connection on every exit path,
	// including an early terminator or scan error.
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", errorFromBody(resp.StatusCode, body)
	}

	var out strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	// Delta fragments carrying HTML can exceed the default line budget.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

scan:
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		payload := strings.TrimPrefix(line, "data: ")
		if payload == "[DONE]" {
			break scan
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			// Torn or malformed fragment; drop it and keep reading.
			continue
		}
		if len(chunk.Choices) > 0 {
			out.WriteString(chunk.Choices[0].Delta.Content)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("ai: read stream: %w", err)
	}

	if out.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return out.String(), nil
}

// post marshals and sends one chat completions request.
func (c *Client) post(ctx context.Context, httpClient *http.Client, body chatRequest) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("ai: marshal request: %w", err)
	}

	url := c.config.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("ai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai: http: %w", err)
	}
	return resp, nil
}

// buildMessages assembles the message list, omitting the system message
// when no system prompt is given.
func buildMessages(systemPrompt, userPrompt string) []chatMessage {
	var messages []chatMessage
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	return append(messages, chatMessage{Role: "user", Content: userPrompt})
}

// errorFromBody surfaces the provider's error detail: the structured
// error.message when the body parses as JSON, otherwise the raw text.
func errorFromBody(status int, body []byte) error {
	detail := strings.TrimSpace(string(body))

	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		detail = parsed.Error.Message
	}

	return &APIError{StatusCode: status, Detail: detail}
}

// --- Chat completions request/response types ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream,omitempty"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}
