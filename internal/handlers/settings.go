// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"resumetailor/internal/models"
)

// GetSettings returns the stored settings, zero-valued when none exist.
func (a *API) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.settings.Load()
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": settings})
}

// UpdateSettings merges the posted fields into the stored settings.
// Absent fields are untouched; explicit empty strings clear values.
func (a *API) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch models.SettingsPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	settings, err := a.settings.Update(patch)
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"settings": settings,
	})
}

// TestOpenAI fires a tiny completion to verify the configured token and
// model actually work.
func (a *API) TestOpenAI(w http.ResponseWriter, r *http.Request) {
	client, err := a.aiClient()
	if err != nil {
		writeMappedError(w, err)
		return
	}

	response, err := client.Complete(r.Context(), "", `Say "Hello, OpenAI API is working!"`, 50, 0.1)
	if err != nil {
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "OpenAI API token is working correctly",
		"response": response,
	})
}
