// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides filesystem-friendly name generation for template
// and upload filenames.
package slug

import (
	"regexp"
	"strings"
)

var (
	// titleDisallowed matches anything not allowed in a generated
	// template name derived from a job-posting title.
	titleDisallowed = regexp.MustCompile(`[^a-zA-Z0-9\-_ ]`)
	// whitespaceRuns collapses consecutive whitespace into one underscore.
	whitespaceRuns = regexp.MustCompile(`\s+`)
	// uploadDisallowed matches anything not allowed in an uploaded filename.
	uploadDisallowed = regexp.MustCompile(`[^a-zA-Z0-9.\-]`)
)

// Title sanitizes a job-posting title into a template base name.
// Example: "Senior Engineer (Remote)!" → "Senior_Engineer_Remote"
func Title(s string) string {
	result := titleDisallowed.ReplaceAllString(s, "")
	result = strings.TrimSpace(result)
	result = whitespaceRuns.ReplaceAllString(result, "_")
	return result
}

// Upload sanitizes an uploaded file's original name, replacing anything
// outside letters, digits, dots, and hyphens with underscores.
func Upload(s string) string {
	return uploadDisallowed.ReplaceAllString(s, "_")
}

// SplitExt splits a filename into its base name and lowercased extension
// (including the dot). Names without an extension, or starting with a
// dot, return an empty extension.
func SplitExt(filename string) (base, ext string) {
	i := strings.LastIndex(filename, ".")
	if i <= 0 {
		return filename, ""
	}
	return filename[:i], strings.ToLower(filename[i:])
}
