// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// DefaultGPTModel is used when no model is configured in settings.
const DefaultGPTModel = "gpt-4o"

// Settings holds the user-editable runtime settings persisted as a single
// JSON file. There is exactly one settings record per installation.
type Settings struct {
	OpenAIAPIToken string `json:"openaiApiToken,omitempty"`
	GPTModel       string `json:"gptModel,omitempty"`
}

// ModelOrDefault returns the configured model name, falling back to
// DefaultGPTModel when unset.
func (s Settings) ModelOrDefault() string {
	if s.GPTModel != "" {
		return s.GPTModel
	}
	return DefaultGPTModel
}

// SettingsPatch is a partial settings update. Nil fields are left
// unchanged by the merge.
type SettingsPatch struct {
	OpenAIAPIToken *string `json:"openaiApiToken"`
	GPTModel       *string `json:"gptModel"`
}
