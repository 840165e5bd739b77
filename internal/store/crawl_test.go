// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"testing"
	"time"
)

func TestCrawlStoreHash(t *testing.T) {
	s := NewCrawlStore(t.TempDir())

	got := s.Hash("https://example.com/job")
	if len(got) != 32 {
		t.Fatalf("hash length: got %d, want 32", len(got))
	}
	if got != s.Hash("https://example.com/job") {
		t.Error("hash must be deterministic")
	}
	if got == s.Hash("https://example.com/other") {
		t.Error("distinct URLs must hash differently")
	}
}

func TestCrawlStoreSaveAndLookup(t *testing.T) {
	s := NewCrawlStore(t.TempDir())
	const url = "https://example.com/job"

	record, err := s.Save(url, "Backend Engineer", "PGh0bWw+", "default.html")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if record.IsUpdated {
		t.Error("first save should report isUpdated=false")
	}
	if _, err := time.Parse(time.RFC3339, record.Datetime); err != nil {
		t.Errorf("datetime not RFC3339: %q", record.Datetime)
	}

	loaded, err := s.Lookup(url)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if loaded.Title != "Backend Engineer" || loaded.Content != "PGh0bWw+" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
	if loaded.SelectedTemplate != "default.html" {
		t.Errorf("selectedTemplate: got %q", loaded.SelectedTemplate)
	}
}

func TestCrawlStoreSaveUpsert(t *testing.T) {
	s := NewCrawlStore(t.TempDir())
	const url = "https://example.com/job"

	if _, err := s.Save(url, "First", "YQ==", "default.html"); err != nil {
		t.Fatal(err)
	}
	record, err := s.Save(url, "Second", "Yg==", "other.html")
	if err != nil {
		t.Fatal(err)
	}
	if !record.IsUpdated {
		t.Error("re-save of the same URL should report isUpdated=true")
	}

	loaded, err := s.Lookup(url)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Title != "Second" {
		t.Errorf("upsert should overwrite, got title %q", loaded.Title)
	}
}

func TestCrawlStoreLookupMissing(t *testing.T) {
	s := NewCrawlStore(t.TempDir())
	if _, err := s.Lookup("https://example.com/never-crawled"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
