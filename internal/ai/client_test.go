// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// ---------- Helpers ----------

// newTestServer creates an httptest.Server that responds with the given
// status code and body bytes. The caller must call Close on the returned server.
func newTestServer(t *testing.T, statusCode int, body []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write(body)
	}))
}

// successBody builds a JSON body matching the chat completions response
// format with a single choice containing the given text.
func successBody(text string) []byte {
	resp := chatResponse{
		Choices: []chatChoice{
			{Message: chatMessage{Role: "assistant", Content: text}},
		},
	}
	b, _ := json.Marshal(resp)
	return b
}

func testClient(baseURL string) *Client {
	return New(Config{APIKey: "sk-test-12345", Model: "gpt-4o", BaseURL: baseURL})
}

// ---------- Complete ----------

func TestComplete_Success(t *testing.T) {
	want := "<html>tailored</html>"
	srv := newTestServer(t, http.StatusOK, successBody(want))
	defer srv.Close()

	got, err := testClient(srv.URL).Complete(context.Background(), "system", "user", 100, 0.3)
	if err != nil {
		t.Fatalf("Complete: unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("Complete: got %q, want %q", got, want)
	}
}

func TestComplete_SendsRequest(t *testing.T) {
	var capturedHeaders http.Header
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedHeaders = r.Header.Clone()
		capturedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		w.Write(successBody("ok"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Complete(context.Background(), "be terse", "hello", 500, 0.3)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if auth := capturedHeaders.Get("Authorization"); auth != "Bearer sk-test-12345" {
		t.Errorf("Authorization: got %q", auth)
	}
	if ct := capturedHeaders.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}

	var req chatRequest
	if err := json.Unmarshal(capturedBody, &req); err != nil {
		t.Fatalf("unmarshal captured body: %v", err)
	}
	if req.Model != "gpt-4o" {
		t.Errorf("model: got %q", req.Model)
	}
	if req.MaxTokens != 500 {
		t.Errorf("max_tokens: got %d, want 500", req.MaxTokens)
	}
	if req.Temperature != 0.3 {
		t.Errorf("temperature: got %v, want 0.3", req.Temperature)
	}
	if req.Stream {
		t.Error("stream must be false for Complete")
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
		t.Errorf("messages: got %+v", req.Messages)
	}
}

func TestComplete_OmitsEmptySystemPrompt(t *testing.T) {
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		w.Write(successBody("ok"))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).Complete(context.Background(), "", "analyze this", 100, 0.3); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	var req chatRequest
	json.Unmarshal(capturedBody, &req)
	if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
		t.Errorf("messages: got %+v, want single user message", req.Messages)
	}
}

func TestComplete_SurfacesJSONErrorDetail(t *testing.T) {
	body := []byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`)
	srv := newTestServer(t, http.StatusUnauthorized, body)
	defer srv.Close()

	_, err := testClient(srv.URL).Complete(context.Background(), "s", "u", 100, 0.3)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status: got %d", apiErr.StatusCode)
	}
	if apiErr.Detail != "Incorrect API key provided" {
		t.Errorf("detail: got %q", apiErr.Detail)
	}
}

func TestComplete_SurfacesRawErrorBody(t *testing.T) {
	srv := newTestServer(t, http.StatusBadGateway, []byte("<html>upstream broke</html>"))
	defer srv.Close()

	_, err := testClient(srv.URL).Complete(context.Background(), "s", "u", 100, 0.3)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Detail != "<html>upstream broke</html>" {
		t.Errorf("detail: got %q", apiErr.Detail)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, []byte(`{"choices":[]}`))
	defer srv.Close()

	_, err := testClient(srv.URL).Complete(context.Background(), "s", "u", 100, 0.3)
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestComplete_BlankContent(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, successBody("   \n  "))
	defer srv.Close()

	_, err := testClient(srv.URL).Complete(context.Background(), "s", "u", 100, 0.3)
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

// ---------- CompleteStream ----------

// streamBody formats delta fragments as an SSE body the way the
// completions API emits them.
func streamBody(deltas ...string) string {
	var sb strings.Builder
	for _, d := range deltas {
		chunk, _ := json.Marshal(map[string]any{
			"choices": []map[string]any{
				{"delta": map[string]string{"content": d}},
			},
		})
		fmt.Fprintf(&sb, "data: %s\n\n", chunk)
	}
	sb.WriteString("data: [DONE]\n\n")
	return sb.String()
}

func TestCompleteStream_AccumulatesDeltas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req chatRequest
		json.Unmarshal(body, &req)
		if !req.Stream {
			t.Error("stream must be true for CompleteStream")
		}
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, streamBody("<html>", "<body>hi</body>", "</html>"))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).CompleteStream(context.Background(), "s", "u", 8000, 0.3)
	if err != nil {
		t.Fatalf("CompleteStream: %v", err)
	}
	if got != "<html><body>hi</body></html>" {
		t.Errorf("got %q", got)
	}
}

func TestCompleteStream_SkipsMalformedFragments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"keep\"}}]}\n\n")
		io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"cont\n\n") // torn fragment
		io.WriteString(w, ": comment line ignored\n\n")
		io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\" this\"}}]}\n\n")
		io.WriteString(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).CompleteStream(context.Background(), "s", "u", 8000, 0.3)
	if err != nil {
		t.Fatalf("CompleteStream: %v", err)
	}
	if got != "keep this" {
		t.Errorf("got %q, want %q", got, "keep this")
	}
}

func TestCompleteStream_IgnoresContentAfterDone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"before\"}}]}\n\n")
		io.WriteString(w, "data: [DONE]\n\n")
		io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"after\"}}]}\n\n")
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).CompleteStream(context.Background(), "s", "u", 8000, 0.3)
	if err != nil {
		t.Fatalf("CompleteStream: %v", err)
	}
	if got != "before" {
		t.Errorf("got %q, want %q", got, "before")
	}
}

func TestCompleteStream_EmptyStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CompleteStream(context.Background(), "s", "u", 8000, 0.3)
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestCompleteStream_ErrorStatus(t *testing.T) {
	body := []byte(`{"error":{"message":"Rate limit reached"}}`)
	srv := newTestServer(t, http.StatusTooManyRequests, body)
	defer srv.Close()

	_, err := testClient(srv.URL).CompleteStream(context.Background(), "s", "u", 8000, 0.3)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Detail != "Rate limit reached" {
		t.Errorf("detail: got %q", apiErr.Detail)
	}
}
