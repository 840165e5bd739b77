// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// DefaultTemplateFilename is the sentinel baseline template. It always
// exists, is listed first, and can never be renamed or deleted.
const DefaultTemplateFilename = "default.html"

// TemplateType distinguishes authored HTML templates from raw uploads.
type TemplateType string

const (
	TemplateTypeHTML TemplateType = "html"
	TemplateTypePDF  TemplateType = "pdf"
)

// Template describes one stored resume template. The filename is the
// primary key; the display name is the filename minus its extension.
type Template struct {
	Filename    string       `json:"filename"`
	DisplayName string       `json:"displayName"`
	Size        int64        `json:"size"`
	Created     time.Time    `json:"created"`
	Modified    time.Time    `json:"modified"`
	IsDefault   bool         `json:"isDefault,omitempty"`
	IsUploaded  bool         `json:"isUploaded,omitempty"`
	Type        TemplateType `json:"type"`
}

// TemplateMeta holds per-template metadata kept in the meta.json sidecar,
// keyed by filename.
type TemplateMeta struct {
	DisplayName string `json:"displayName"`
}
