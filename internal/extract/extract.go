// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package extract derives plain text and keyword summaries from raw HTML.
// It is a deliberately naive markup stripper: the input is untrusted page
// soup and the output only ever feeds AI prompts, so best-effort is enough.
package extract

import (
	"regexp"
	"sort"
	"strings"
)

var (
	scriptBlocks = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleBlocks  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	tags         = regexp.MustCompile(`<[^>]*>`)
	whitespace   = regexp.MustCompile(`\s+`)
	wordRuns     = regexp.MustCompile(`[a-z0-9]+`)
)

// entityReplacer decodes the handful of named entities that matter for
// prompt text. Anything rarer passes through untouched.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// Text strips markup from raw HTML and returns whitespace-collapsed plain
// text suitable for direct inclusion in a prompt.
func Text(html string) string {
	text := scriptBlocks.ReplaceAllString(html, "")
	text = styleBlocks.ReplaceAllString(text, "")
	text = tags.ReplaceAllString(text, " ")
	text = entityReplacer.Replace(text)
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// keywordShare is the fraction of distinct tokens kept in the summary.
// Kept low to minimize prompt tokens.
const keywordShare = 0.1

// Keywords returns a frequency-ranked keyword summary of the HTML: the
// top 10% of distinct tokens (minimum one), most frequent first, joined
// by spaces. Tokens of length <= 2 are discarded. Ties keep the order of
// first occurrence.
func Keywords(html string) string {
	text := strings.ToLower(Text(html))

	counts := make(map[string]int)
	var order []string
	for _, word := range wordRuns.FindAllString(text, -1) {
		if len(word) <= 2 {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	if len(order) == 0 {
		return ""
	}

	// Stable sort so equal frequencies keep first-occurrence order.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	top := int(float64(len(order)) * keywordShare)
	if top < 1 {
		top = 1
	}
	return strings.Join(order[:top], " ")
}
