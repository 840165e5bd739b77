// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// CrawlRecord is a cached snapshot of a fetched job-posting page, stored
// as one JSON file per URL keyed by the MD5 hash of the URL. Re-crawling
// the same URL overwrites the record rather than duplicating it.
type CrawlRecord struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	// Content is the base64-encoded HTML of the page as supplied by the
	// client at crawl time.
	Content  string `json:"content"`
	Datetime string `json:"datetime"`
	// SelectedTemplate is the template that was selected when the page
	// was crawled.
	SelectedTemplate string `json:"selectedTemplate"`
	// IsUpdated is true when a record for this URL hash already existed
	// and was overwritten.
	IsUpdated bool `json:"isUpdated"`
}
