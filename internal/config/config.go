// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration values loaded from the environment.
// The OpenAI credential and model are deliberately NOT here: they are runtime
// settings persisted in the settings JSON file and injected per request.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// DataDir is the root of all persisted state: templates, crawl
	// records, uploads, and the settings file.
	DataDir string

	// FetchTimeout bounds the server-side job-page fetch.
	FetchTimeout time.Duration

	// OpenAIBaseURL is the chat-completions API base. Overridable for tests.
	OpenAIBaseURL string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate.
func Load() (*Config, error) {
	cfg := &Config{
		Host:          envOrDefault("APP_HOST", "0.0.0.0"),
		Port:          envOrDefault("APP_PORT", "8080"),
		Env:           envOrDefault("APP_ENV", "development"),
		DataDir:       envOrDefault("DATA_DIR", "data"),
		OpenAIBaseURL: envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
	}

	timeoutSecs := envOrDefault("FETCH_TIMEOUT", "15")
	secs, err := strconv.Atoi(timeoutSecs)
	if err != nil || secs <= 0 {
		return nil, fmt.Errorf("FETCH_TIMEOUT must be a positive number of seconds, got %q", timeoutSecs)
	}
	cfg.FetchTimeout = time.Duration(secs) * time.Second

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// TemplatesDir is where resume template HTML files and their sidecar
// files (checked_templates.json, meta.json) live.
func (c *Config) TemplatesDir() string {
	return filepath.Join(c.DataDir, "templates")
}

// CrawlsDir is where crawl record JSON files live, one per URL hash.
func (c *Config) CrawlsDir() string {
	return filepath.Join(c.DataDir, "crawls")
}

// UploadsDir is where raw uploaded resume files (PDFs, images) live.
func (c *Config) UploadsDir() string {
	return filepath.Join(c.DataDir, "uploads")
}

// SettingsFile is the path of the single settings JSON record.
func (c *Config) SettingsFile() string {
	return filepath.Join(c.DataDir, "settings.json")
}

// EnsureDirs creates the data directory layout if it does not exist yet.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.TemplatesDir(), c.CrawlsDir(), c.UploadsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir %s: %w", dir, err)
		}
	}
	return nil
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
