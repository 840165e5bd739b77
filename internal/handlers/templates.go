// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListTemplates returns every template plus the normalized selection.
func (a *API) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := a.templates.List()
	if err != nil {
		writeMappedError(w, err)
		return
	}
	checked, err := a.templates.Checked()
	if err != nil {
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"templates":        templates,
		"checkedTemplates": checked,
	})
}

// UpdateChecked replaces the template selection. Whatever the client
// sends, at most one entry survives normalization.
func (a *API) UpdateChecked(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CheckedTemplates []string `json:"checkedTemplates"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "checkedTemplates must be an array")
		return
	}

	if _, err := a.templates.SetChecked(req.CheckedTemplates); err != nil {
		writeMappedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// DeleteTemplate removes the template named by the ?filename= query
// parameter. The default template is protected.
func (a *API) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		writeError(w, http.StatusBadRequest, "Filename is required")
		return
	}

	if err := a.templates.Delete(filename); err != nil {
		writeMappedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// RenameTemplate renames a template; the filename is the identity, so
// display-name changes are file renames with sidecar fixups.
func (a *API) RenameTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldFilename    string `json:"oldFilename"`
		NewDisplayName string `json:"newDisplayName"`
	}
	if err := decodeJSON(r, &req); err != nil || req.OldFilename == "" || req.NewDisplayName == "" {
		writeError(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	newFilename, err := a.templates.Rename(req.OldFilename, req.NewDisplayName)
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"newFilename":    newFilename,
		"newDisplayName": req.NewDisplayName,
	})
}

// ServeTemplate returns a template's raw HTML. The path parameter is
// base64-encoded so filenames with spaces survive routing.
func (a *API) ServeTemplate(w http.ResponseWriter, r *http.Request) {
	encoded := chi.URLParam(r, "filename")
	if encoded == "" {
		writeError(w, http.StatusBadRequest, "Filename is required")
		return
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filename encoding")
		return
	}

	content, err := a.templates.Read(string(decoded))
	if err != nil {
		writeMappedError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(content))
}
