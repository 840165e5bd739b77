// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"resumetailor/internal/models"
)

// SettingsStore persists the single runtime settings record (API
// credential and model name) as one JSON file.
type SettingsStore struct {
	path string
}

// NewSettingsStore creates a SettingsStore writing to the given file path.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// Load reads the settings record. A missing file yields zero-value
// settings; a malformed file is an error.
func (s *SettingsStore) Load() (models.Settings, error) {
	var settings models.Settings
	err := readJSONFile(s.path, &settings)
	if errors.Is(err, ErrNotFound) {
		return models.Settings{}, nil
	}
	if err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

// Update merges the patch into the stored settings: only fields present
// in the patch change. Returns the resulting settings.
func (s *SettingsStore) Update(patch models.SettingsPatch) (models.Settings, error) {
	settings, err := s.Load()
	if err != nil {
		return models.Settings{}, err
	}

	if patch.OpenAIAPIToken != nil {
		settings.OpenAIAPIToken = *patch.OpenAIAPIToken
	}
	if patch.GPTModel != nil {
		settings.GPTModel = *patch.GPTModel
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return models.Settings{}, fmt.Errorf("create settings dir: %w", err)
	}
	if err := writeJSONFile(s.path, settings); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}
