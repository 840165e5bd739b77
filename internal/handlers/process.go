// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"resumetailor/internal/tailor"
)

// ProcessWithAI runs the two-stage job pipeline: analyze the crawled
// posting, then rewrite the selected template against the analysis and
// save the result as a new template.
func (a *API) ProcessWithAI(w http.ResponseWriter, r *http.Request) {
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
	if req.URL == "" || req.Title == "" || req.Content == "" || req.SelectedTemplate == "" {
		writeError(w, http.StatusBadRequest, "Missing required parameters: url, title, content, or selectedTemplate")
		return
	}

	client, err := a.aiClient()
	if err != nil {
		writeMappedError(w, err)
		return
	}

	result, err := a.tailor.ProcessJob(r.Context(), client, tailor.JobParams{
		URL:              req.URL,
		Title:            req.Title,
		Content:          req.Content,
		SelectedTemplate: req.SelectedTemplate,
	})
	if err != nil {
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"message":          "Template processed and saved successfully",
		"templateName":     result.TemplateName,
		"originalTemplate": result.OriginalTemplate,
		"url":              result.URL,
		"title":            result.Title,
		"jobAnalysis":      result.JobAnalysis,
	})
}
