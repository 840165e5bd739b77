// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the file-backed persistence layer: a template
// directory with JSON sidecars, a crawl-record directory keyed by URL
// hash, and a single settings record. Writes are whole-file overwrites
// with no locking — last writer wins, acceptable for a single-user tool.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrNotFound is returned when a template or record does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrDefaultTemplate is returned on attempts to rename or delete the
	// sentinel default template.
	ErrDefaultTemplate = errors.New("store: the default template cannot be modified")
	// ErrNameExists is returned when a rename would overwrite an
	// existing template.
	ErrNameExists = errors.New("store: a template with that name already exists")
)

// readJSONFile decodes the JSON file at path into v. A missing file
// returns ErrNotFound; malformed persisted state is an error, never
// silently treated as empty — corruption should surface, not hide.
func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("malformed JSON in %s: %w", path, err)
	}
	return nil
}

// writeJSONFile writes v to path as indented JSON.
func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// validName rejects filenames that could escape the store directory.
func validName(filename string) bool {
	if filename == "" || filename == "." || filename == ".." {
		return false
	}
	return !strings.ContainsAny(filename, `/\`)
}
