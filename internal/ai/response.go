// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"regexp"
	"strings"
)

// TruncationMarker is appended to HTML cut down by TruncateForTokens so
// the model (and a human reader) can tell the document is incomplete.
const TruncationMarker = "\n<!-- ... rest of template truncated for token limits ... -->"

// charsPerToken is the rough estimation used for HTML token budgeting.
const charsPerToken = 4

var (
	openingHTMLFence = regexp.MustCompile("(?i)^```html\\s*")
	openingFence     = regexp.MustCompile("(?i)^```\\s*")
	closingFence     = regexp.MustCompile("(?i)\\s*```$")
)

// CleanResponse strips the markdown scaffolding models like to wrap HTML
// in: one leading ```html or ``` fence, one trailing ``` fence, and
// single stray backticks at either end. It is cosmetic cleanup only —
// malformed input passes through unchanged.
func CleanResponse(response string) string {
	cleaned := strings.TrimSpace(response)

	cleaned = openingHTMLFence.ReplaceAllString(cleaned, "")
	cleaned = openingFence.ReplaceAllString(cleaned, "")
	cleaned = closingFence.ReplaceAllString(cleaned, "")

	cleaned = strings.TrimPrefix(cleaned, "`")
	cleaned = strings.TrimSuffix(cleaned, "`")

	return strings.TrimSpace(cleaned)
}

// TruncateForTokens cuts HTML down to roughly maxTokens worth of
// characters (1 token ≈ 4 chars). The cut backs up to the nearest tag
// close when that still keeps at least 80% of the budget, so we avoid
// handing the model a severed tag. Input under budget is returned as-is.
func TruncateForTokens(html string, maxTokens int) string {
	maxChars := maxTokens * charsPerToken

	if len(html) <= maxChars {
		return html
	}

	truncated := html[:maxChars]
	lastTagEnd := strings.LastIndex(truncated, ">")

	if lastTagEnd > maxChars*4/5 {
		return truncated[:lastTagEnd+1] + TruncationMarker
	}
	return truncated + TruncationMarker
}
