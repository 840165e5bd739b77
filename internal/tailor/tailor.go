// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package tailor orchestrates the AI customization flows: one-shot
// template customization from a user prompt, and the two-stage job
// posting pipeline that analyzes a crawled page and rewrites the
// selected template against it.
package tailor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"resumetailor/internal/ai"
	"resumetailor/internal/store"
)

// ErrIncompleteHTML is returned when the model's cleaned output does
// not look like an HTML document.
var ErrIncompleteHTML = errors.New("tailor: AI response is not valid HTML")

const (
	customizeSystemPrompt = "You are an expert HTML/CSS developer. Customize the provided HTML template according to user requests. Return ONLY valid HTML code, no explanations or markdown formatting. Preserve the complete HTML structure and ensure all tags are properly closed."

	legacySystemPrompt = "You are an expert web developer. Return only valid HTML code without any explanations or markdown formatting."

	customizeMaxTokens   = 8000
	legacyMaxTokens      = 4000
	legacyTruncateTokens = 6000
	aiTemperature        = 0.3
)

// Completer is the AI capability tailor needs. *ai.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error)
	CompleteStream(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error)
}

// Service runs customization flows against the template store.
type Service struct {
	templates *store.TemplateStore
}

// New creates a Service over the given template store.
func New(templates *store.TemplateStore) *Service {
	return &Service{templates: templates}
}

// CustomizeParams describes a customize-template-file request.
type CustomizeParams struct {
	TemplateFilename string
	Prompt           string
	PreviewOnly      bool
	// SaveExistingHTML, when non-empty, is saved as a copy without
	// calling the AI at all. Used by the preview-then-save flow.
	SaveExistingHTML string
}

// CustomizeResult is the outcome of a customization flow.
type CustomizeResult struct {
	Filename    string
	DisplayName string
	HTML        string
	Created     time.Time
	Modified    time.Time
	Saved       bool
}

// Customize runs the full-template customization flow: read the
// template, send it with the user's prompt, clean and validate the
// response, and save it as a uniquely named copy unless previewing.
func (s *Service) Customize(ctx context.Context, client Completer, p CustomizeParams) (CustomizeResult, error) {
	if p.SaveExistingHTML != "" {
		return s.saveCopy(p.TemplateFilename, ai.CleanResponse(p.SaveExistingHTML))
	}

	original, err := s.templates.Read(p.TemplateFilename)
	if err != nil {
		return CustomizeResult{}, err
	}

	user := fmt.Sprintf("Customize this HTML resume template: %s\n\nHTML:\n%s", p.Prompt, original)
	response, err := client.Complete(ctx, customizeSystemPrompt, user, customizeMaxTokens, aiTemperature)
	if err != nil {
		return CustomizeResult{}, err
	}

	cleaned := ai.CleanResponse(response)
	if !strings.Contains(cleaned, "COMPLETE_EOF") && !strings.Contains(cleaned, "html") {
		slog.Warn("AI customization response looks incomplete", "template", p.TemplateFilename, "length", len(cleaned))
		return CustomizeResult{}, ErrIncompleteHTML
	}

	if p.PreviewOnly {
		return CustomizeResult{HTML: cleaned}, nil
	}
	return s.saveCopy(p.TemplateFilename, cleaned)
}

// CustomizeTruncated is the legacy single-call flow: the template is
// truncated to fit a smaller completion budget and the response is
// saved without a validity check.
func (s *Service) CustomizeTruncated(ctx context.Context, client Completer, templateFilename, prompt string) (CustomizeResult, error) {
	original, err := s.templates.Read(templateFilename)
	if err != nil {
		return CustomizeResult{}, err
	}
	truncated := ai.TruncateForTokens(original, legacyTruncateTokens)

	user := fmt.Sprintf("Here is the HTML template to customize:\n\n%s\n\n%s", truncated, legacyUserPrompt(prompt))
	response, err := client.Complete(ctx, legacySystemPrompt, user, legacyMaxTokens, aiTemperature)
	if err != nil {
		return CustomizeResult{}, err
	}

	return s.saveCopy(templateFilename, response)
}

// saveCopy writes content next to the base template under a
// non-colliding "<base> copy N.html" name.
func (s *Service) saveCopy(baseFilename, content string) (CustomizeResult, error) {
	tpl, err := s.templates.WriteUnique(baseFilename, content)
	if err != nil {
		return CustomizeResult{}, err
	}
	slog.Info("customized template saved", "filename", tpl.Filename, "base", baseFilename, "size", tpl.Size)
	return CustomizeResult{
		Filename:    tpl.Filename,
		DisplayName: tpl.DisplayName,
		HTML:        content,
		Created:     tpl.Created,
		Modified:    tpl.Modified,
		Saved:       true,
	}, nil
}

func legacyUserPrompt(prompt string) string {
	return fmt.Sprintf(`You are an expert web developer specializing in HTML and CSS. I have an HTML resume template that needs to be customized.

USER'S CUSTOMIZATION REQUEST: %s

TASK: Modify the HTML template according to the user's request. You must:
1. Keep the overall structure and functionality intact
2. Only modify styling, layout, or content as specifically requested
3. Ensure the HTML remains valid and complete
4. Return ONLY the complete HTML code - no explanations, no markdown formatting

IMPORTANT RULES:
- Return ONLY the HTML code, nothing else
- Do not add any comments or explanations
- Maintain all existing functionality
- Ensure the HTML is properly formatted and complete
- If the request is unclear, make reasonable assumptions based on common resume design principles
- If you see truncation comments, maintain the structure and apply changes to the visible parts

RESPONSE FORMAT: Return the complete HTML document as-is, ready to be saved as a file.`, prompt)
}

var _ Completer = (*ai.Client)(nil)
