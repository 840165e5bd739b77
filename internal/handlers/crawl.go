// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"

	"resumetailor/internal/store"
)

// CheckURL reports whether a URL has been crawled before. Always 200;
// existence is carried in the body so the UI can branch without
// treating "never seen" as a failure.
func (a *API) CheckURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := decodeJSON(r, &req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "No URL provided")
		return
	}

	hash := a.crawls.Hash(req.URL)
	record, err := a.crawls.Lookup(req.URL)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusOK, map[string]any{
			"exists":  false,
			"url":     req.URL,
			"urlHash": hash,
		})
		return
	}
	if err != nil {
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"exists":   true,
		"filename": a.crawls.Filename(req.URL),
		"title":    record.Title,
		"url":      record.URL,
		"datetime": record.Datetime,
		"urlHash":  hash,
	})
}

// Crawl persists a crawled page as a JSON record keyed by URL hash.
// Re-crawling the same URL overwrites the record and flags the response
// as an update.
func (a *API) Crawl(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL              string `json:"url"`
		Title            string `json:"title"`
		Content          string `json:"content"`
		SelectedTemplate string `json:"selectedTemplate"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	switch {
	case req.URL == "":
		writeError(w, http.StatusBadRequest, "No URL provided")
		return
	case req.Title == "":
		writeError(w, http.StatusBadRequest, "No title provided")
		return
	case req.Content == "":
		writeError(w, http.StatusBadRequest, "No content provided")
		return
	case req.SelectedTemplate == "":
		writeError(w, http.StatusBadRequest, "No selected template provided")
		return
	}

	record, err := a.crawls.Save(req.URL, req.Title, req.Content, req.SelectedTemplate)
	if err != nil {
		writeMappedError(w, err)
		return
	}

	message := "Page saved successfully"
	if record.IsUpdated {
		message = "Page updated successfully"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   message,
		"filename":  a.crawls.Filename(req.URL),
		"title":     record.Title,
		"url":       record.URL,
		"datetime":  record.Datetime,
		"urlHash":   a.crawls.Hash(req.URL),
		"isUpdated": record.IsUpdated,
	})
}

// FetchPage downloads a job posting server-side and returns its title
// and raw HTML. Upstream error statuses pass through to the client.
func (a *API) FetchPage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := decodeJSON(r, &req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "No URL provided")
		return
	}

	page, err := a.fetcher.Fetch(r.Context(), req.URL)
	if err != nil {
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"title":   page.Title,
		"content": page.HTML,
		"url":     page.URL,
	})
}
