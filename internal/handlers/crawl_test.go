// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCheckURLUnknown(t *testing.T) {
	api := newTestAPI(t, nil)

	rr, body := doJSON(t, api.CheckURL, http.MethodPost, "/api/check-url", map[string]string{
		"url": "https://example.com/job",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if body["exists"] != false {
		t.Errorf("exists: %v", body["exists"])
	}
	hash, _ := body["urlHash"].(string)
	if len(hash) != 32 {
		t.Errorf("urlHash: %q", hash)
	}
}

func TestCheckURLKnown(t *testing.T) {
	api := newTestAPI(t, nil)
	if _, err := api.crawls.Save("https://example.com/job", "Backend Engineer", "PGh0bWw+", "default.html"); err != nil {
		t.Fatal(err)
	}

	rr, body := doJSON(t, api.CheckURL, http.MethodPost, "/api/check-url", map[string]string{
		"url": "https://example.com/job",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if body["exists"] != true || body["title"] != "Backend Engineer" {
		t.Errorf("body: %v", body)
	}
	if body["filename"] != api.crawls.Filename("https://example.com/job") {
		t.Errorf("filename: %v", body["filename"])
	}
}

func TestCheckURLMissingURL(t *testing.T) {
	api := newTestAPI(t, nil)
	rr, _ := doJSON(t, api.CheckURL, http.MethodPost, "/api/check-url", map[string]string{})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

func TestCrawlValidation(t *testing.T) {
	api := newTestAPI(t, nil)

	tests := []struct {
		name string
		body map[string]string
		want string
	}{
		{"missing url", map[string]string{"title": "t", "content": "c", "selectedTemplate": "s"}, "No URL provided"},
		{"missing title", map[string]string{"url": "u", "content": "c", "selectedTemplate": "s"}, "No title provided"},
		{"missing content", map[string]string{"url": "u", "title": "t", "selectedTemplate": "s"}, "No content provided"},
		{"missing template", map[string]string{"url": "u", "title": "t", "content": "c"}, "No selected template provided"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, body := doJSON(t, api.Crawl, http.MethodPost, "/api/crawl", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", rr.Code)
			}
			if body["error"] != tt.want {
				t.Errorf("error: got %v, want %q", body["error"], tt.want)
			}
		})
	}
}

func TestCrawlSaveThenUpdate(t *testing.T) {
	api := newTestAPI(t, nil)
	payload := map[string]string{
		"url":              "https://example.com/job",
		"title":            "Backend Engineer",
		"content":          "PGh0bWw+",
		"selectedTemplate": "default.html",
	}

	rr, body := doJSON(t, api.Crawl, http.MethodPost, "/api/crawl", payload)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if body["isUpdated"] != false || body["message"] != "Page saved successfully" {
		t.Errorf("first crawl: %v", body)
	}

	rr, body = doJSON(t, api.Crawl, http.MethodPost, "/api/crawl", payload)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if body["isUpdated"] != true || body["message"] != "Page updated successfully" {
		t.Errorf("second crawl: %v", body)
	}
}

func TestFetchPage(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><head><title>Platform Engineer</title></head><body>posting</body></html>"))
	}))
	defer upstream.Close()

	api := newTestAPI(t, nil)
	rr, body := doJSON(t, api.FetchPage, http.MethodPost, "/api/fetch-page", map[string]string{"url": upstream.URL})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %v", rr.Code, body)
	}
	if body["title"] != "Platform Engineer" {
		t.Errorf("title: %v", body["title"])
	}
	content, _ := body["content"].(string)
	if !strings.Contains(content, "posting") {
		t.Errorf("content: %q", content)
	}
}

func TestFetchPagePropagatesUpstreamStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer upstream.Close()

	api := newTestAPI(t, nil)
	rr, _ := doJSON(t, api.FetchPage, http.MethodPost, "/api/fetch-page", map[string]string{"url": upstream.URL})
	if rr.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rr.Code)
	}
}

func TestFetchPageMissingURL(t *testing.T) {
	api := newTestAPI(t, nil)
	rr, _ := doJSON(t, api.FetchPage, http.MethodPost, "/api/fetch-page", map[string]string{})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}
