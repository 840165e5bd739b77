// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"resumetailor/internal/tailor"
)

// CustomizeTemplateFile runs the full-template customization flow:
// preview, save-as-copy, or save client-supplied HTML directly.
func (a *API) CustomizeTemplateFile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateFilename string `json:"templateFilename"`
		Prompt           string `json:"prompt"`
		PreviewOnly      bool   `json:"previewOnly"`
		SaveExistingHTML string `json:"saveExistingHtml"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Saving pre-approved HTML never touches the AI, so the prompt is
	// not required on that path.
	if req.SaveExistingHTML != "" {
		if req.TemplateFilename == "" {
			writeError(w, http.StatusBadRequest, "Template filename is required")
			return
		}
		result, err := a.tailor.Customize(r.Context(), nil, tailor.CustomizeParams{
			TemplateFilename: req.TemplateFilename,
			SaveExistingHTML: req.SaveExistingHTML,
		})
		if err != nil {
			writeMappedError(w, err)
			return
		}
		writeCustomizeResult(w, result)
		return
	}

	if req.TemplateFilename == "" || req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "Template filename and prompt are required")
		return
	}

	client, err := a.aiClient()
	if err != nil {
		writeMappedError(w, err)
		return
	}

	result, err := a.tailor.Customize(r.Context(), client, tailor.CustomizeParams{
		TemplateFilename: req.TemplateFilename,
		Prompt:           req.Prompt,
		PreviewOnly:      req.PreviewOnly,
	})
	if err != nil {
		writeMappedError(w, err)
		return
	}

	if req.PreviewOnly {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"html":    result.HTML,
		})
		return
	}
	writeCustomizeResult(w, result)
}

// CustomizeTemplate is the legacy truncating flow kept for older
// clients: the template is trimmed to a smaller token budget before a
// single sync completion.
func (a *API) CustomizeTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateFilename string `json:"templateFilename"`
		Prompt           string `json:"prompt"`
	}
	if err := decodeJSON(r, &req); err != nil || req.TemplateFilename == "" || req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "Template filename and prompt are required")
		return
	}

	client, err := a.aiClient()
	if err != nil {
		writeMappedError(w, err)
		return
	}

	result, err := a.tailor.CustomizeTruncated(r.Context(), client, req.TemplateFilename, req.Prompt)
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeCustomizeResult(w, result)
}

func writeCustomizeResult(w http.ResponseWriter, result tailor.CustomizeResult) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"filename":    result.Filename,
		"displayName": result.DisplayName,
		"html":        result.HTML,
		"created":     result.Created,
		"modified":    result.Modified,
	})
}
