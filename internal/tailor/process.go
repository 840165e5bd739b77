// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tailor

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"resumetailor/internal/extract"
	"resumetailor/internal/slug"
)

const (
	analysisMaxTokens     = 1000
	optimizationMaxTokens = 8000
	// The analysis stage only sees the head of the page text; job
	// postings front-load the relevant content.
	analysisTextLimit = 4000
)

// JobParams describes a process-with-ai request: a crawled page plus
// the template to rewrite against it.
type JobParams struct {
	URL              string
	Title            string
	Content          string // base64-encoded page HTML
	SelectedTemplate string
}

// JobResult is the outcome of the two-stage pipeline.
type JobResult struct {
	TemplateName     string
	OriginalTemplate string
	URL              string
	Title            string
	JobAnalysis      string
}

// ProcessJob runs the two-stage pipeline: a sync analysis pass over the
// page text, then a streaming rewrite of the selected template guided
// by that analysis. The rewritten template is saved under a name
// derived from the page title and the current date.
func (s *Service) ProcessJob(ctx context.Context, client Completer, p JobParams) (JobResult, error) {
	templateContent, err := s.templates.Read(p.SelectedTemplate)
	if err != nil {
		return JobResult{}, err
	}

	decoded, err := base64.StdEncoding.DecodeString(p.Content)
	if err != nil {
		return JobResult{}, fmt.Errorf("decode page content: %w", err)
	}
	pageText := extract.Text(string(decoded))

	slog.Info("processing job posting", "url", p.URL, "title", p.Title, "template", p.SelectedTemplate)

	analysis, err := client.Complete(ctx, "", analysisPrompt(pageText), analysisMaxTokens, aiTemperature)
	if err != nil {
		return JobResult{}, fmt.Errorf("job analysis: %w", err)
	}

	optimized, err := client.CompleteStream(ctx, "", optimizationPrompt(analysis, templateContent), optimizationMaxTokens, aiTemperature)
	if err != nil {
		return JobResult{}, fmt.Errorf("template optimization: %w", err)
	}

	name := jobTemplateName(p.Title, time.Now())
	if _, err := s.templates.Write(name, optimized); err != nil {
		return JobResult{}, err
	}

	slog.Info("job-tailored template saved", "filename", name, "url", p.URL)
	return JobResult{
		TemplateName:     name,
		OriginalTemplate: p.SelectedTemplate,
		URL:              p.URL,
		Title:            p.Title,
		JobAnalysis:      analysis,
	}, nil
}

// jobTemplateName derives the saved filename from the page title, the
// date, and the current second for cheap same-day uniqueness.
func jobTemplateName(title string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%d.html", slug.Title(title), now.Format("2006-01-02"), now.Second())
}

func analysisPrompt(pageText string) string {
	if len(pageText) > analysisTextLimit {
		pageText = pageText[:analysisTextLimit]
	}
	return fmt.Sprintf(`Analyze this job posting page and extract:

1. Key job requirements and qualifications
2. Required skills and technologies
3. Preferred experience and background
4. Important keywords for the position
5. Job title and level
6. Company/industry context

Job posting content:
%s

Provide a structured analysis with clear sections. Focus on actionable information for resume optimization.`, pageText)
}

func optimizationPrompt(analysis, templateContent string) string {
	return fmt.Sprintf(`Based on this job analysis, optimize the resume template:

JOB ANALYSIS:
%s

RESUME TEMPLATE:
%s

CRITICAL INSTRUCTIONS:
- Return ONLY the updated HTML template content
- NO explanations, comments, or markdown formatting
- NO "Certainly!" or similar phrases
- NO code blocks or backticks
- Start directly with <!DOCTYPE html> or <html>
- End with the closing </html> tag
- Do not include any text before or after the HTML

Update the resume template to highlight relevant skills, use keywords from the job posting, and emphasize matching experience while maintaining professional formatting.`, analysis, templateContent)
}
