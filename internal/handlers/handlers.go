// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the resume tailor
// API. Handlers are grouped on a single API struct and receive their
// dependencies through it. All endpoints speak JSON; errors use the
// {"error": "..."} shape throughout.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"resumetailor/internal/ai"
	"resumetailor/internal/config"
	"resumetailor/internal/fetch"
	"resumetailor/internal/store"
	"resumetailor/internal/tailor"
)

// errNoToken maps to the 400 the UI expects when settings are missing.
var errNoToken = errors.New("OpenAI API token not configured. Please set it in the settings.")

// API groups all HTTP handlers and their dependencies.
type API struct {
	cfg       *config.Config
	templates *store.TemplateStore
	crawls    *store.CrawlStore
	settings  *store.SettingsStore
	fetcher   *fetch.Fetcher
	tailor    *tailor.Service

	// newClient builds an AI client from runtime settings. Tests swap
	// this for a fake.
	newClient func(ai.Config) tailor.Completer
}

// New creates the API handler group with the given dependencies.
func New(cfg *config.Config, templates *store.TemplateStore, crawls *store.CrawlStore, settings *store.SettingsStore, fetcher *fetch.Fetcher, tailorService *tailor.Service) *API {
	return &API{
		cfg:       cfg,
		templates: templates,
		crawls:    crawls,
		settings:  settings,
		fetcher:   fetcher,
		tailor:    tailorService,
		newClient: func(c ai.Config) tailor.Completer { return ai.New(c) },
	}
}

// Health answers liveness probes.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// aiClient loads runtime settings and builds a client, or fails with
// errNoToken when no API token has been configured yet.
func (a *API) aiClient() (tailor.Completer, error) {
	settings, err := a.settings.Load()
	if err != nil {
		return nil, err
	}
	if settings.OpenAIAPIToken == "" {
		return nil, errNoToken
	}
	return a.newClient(ai.Config{
		APIKey:  settings.OpenAIAPIToken,
		Model:   settings.ModelOrDefault(),
		BaseURL: a.cfg.OpenAIBaseURL,
	}), nil
}

// decodeJSON decodes the request body into v. The body is capped so a
// misbehaving client cannot exhaust memory.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, 32<<20)).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeMappedError translates domain errors into the API's status
// codes: missing resources are 404, default-template violations 400,
// rename collisions 409, upstream AI failures 502, and upstream fetch
// statuses pass through. Everything else is a 500.
func writeMappedError(w http.ResponseWriter, err error) {
	var apiErr *ai.APIError
	var statusErr *fetch.StatusError

	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrDefaultTemplate):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNameExists):
		writeError(w, http.StatusConflict, "A template with that name already exists.")
	case errors.Is(err, errNoToken):
		writeError(w, http.StatusBadRequest, errNoToken.Error())
	case errors.As(err, &apiErr):
		writeError(w, http.StatusBadGateway, apiErr.Error())
	case errors.Is(err, ai.ErrEmptyResponse):
		writeError(w, http.StatusBadGateway, "No response from AI service")
	case errors.Is(err, tailor.ErrIncompleteHTML):
		writeError(w, http.StatusInternalServerError, "AI response is not valid HTML. Please try again.")
	case errors.As(err, &statusErr):
		writeError(w, statusErr.StatusCode, err.Error())
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
