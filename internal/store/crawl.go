// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"resumetailor/internal/models"
)

// CrawlStore persists crawl records as one JSON file per URL, keyed by
// the MD5 hash of the URL: existence checks are a stat, and re-crawling
// the same URL overwrites instead of duplicating.
type CrawlStore struct {
	dir string
}

// NewCrawlStore creates a CrawlStore over the given directory.
func NewCrawlStore(dir string) *CrawlStore {
	return &CrawlStore{dir: dir}
}

// Hash returns the fixed-width hex key for a URL.
func (s *CrawlStore) Hash(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Filename returns the record filename for a URL.
func (s *CrawlStore) Filename(url string) string {
	return s.Hash(url) + ".json"
}

// Lookup returns the stored record for a URL, or ErrNotFound when the
// URL has not been crawled.
func (s *CrawlStore) Lookup(url string) (*models.CrawlRecord, error) {
	var record models.CrawlRecord
	if err := readJSONFile(filepath.Join(s.dir, s.Filename(url)), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Save upserts the crawl record for a URL. The returned record's
// IsUpdated is false on first write and true whenever a record for the
// same hash already existed.
func (s *CrawlStore) Save(url, title, content, selectedTemplate string) (models.CrawlRecord, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return models.CrawlRecord{}, fmt.Errorf("create crawls dir: %w", err)
	}

	path := filepath.Join(s.dir, s.Filename(url))
	_, statErr := os.Stat(path)
	existed := !errors.Is(statErr, os.ErrNotExist)

	record := models.CrawlRecord{
		Title:            title,
		URL:              url,
		Content:          content,
		Datetime:         time.Now().UTC().Format(time.RFC3339),
		SelectedTemplate: selectedTemplate,
		IsUpdated:        existed,
	}

	if err := writeJSONFile(path, record); err != nil {
		return models.CrawlRecord{}, err
	}
	return record, nil
}
