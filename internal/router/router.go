// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chain for the
// resume tailor API.
package router

import (
	"github.com/go-chi/chi/v5"

	"resumetailor/internal/handlers"
	"resumetailor/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and API routes wired up.
func New(api *handlers.API) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)

	r.Get("/health", api.Health)

	r.Route("/api", func(r chi.Router) {
		// Crawling
		r.Post("/check-url", api.CheckURL)
		r.Post("/crawl", api.Crawl)
		r.Post("/fetch-page", api.FetchPage)

		// AI pipelines
		r.Post("/process-with-ai", api.ProcessWithAI)
		r.Post("/customize-template", api.CustomizeTemplate)
		r.Post("/customize-template-file", api.CustomizeTemplateFile)

		// Template library
		r.Route("/resume-templates", func(r chi.Router) {
			r.Get("/", api.ListTemplates)
			r.Post("/", api.UpdateChecked)
			r.Delete("/", api.DeleteTemplate)
			r.Post("/rename", api.RenameTemplate)
		})
		r.Get("/template/{filename}", api.ServeTemplate)
		r.Post("/upload-resume", api.UploadResume)

		// Settings
		r.Get("/settings", api.GetSettings)
		r.Post("/settings", api.UpdateSettings)
		r.Get("/test-openai", api.TestOpenAI)
	})

	return r
}
