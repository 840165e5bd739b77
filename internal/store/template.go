// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"resumetailor/internal/models"
	"resumetailor/internal/slug"
)

// Sidecar files living next to the template HTML files.
const (
	checkedFile = "checked_templates.json"
	metaFile    = "meta.json"
)

// TemplateStore manages the resume template directory: HTML files plus
// the checked-selection and display-name sidecars, merged with raw
// uploads from the uploads directory for listing.
type TemplateStore struct {
	dir        string
	uploadsDir string
}

// NewTemplateStore creates a TemplateStore over the given directories.
func NewTemplateStore(dir, uploadsDir string) *TemplateStore {
	return &TemplateStore{dir: dir, uploadsDir: uploadsDir}
}

// List returns all templates: HTML templates ordered default-first then
// newest-first, followed by uploaded PDF files.
func (s *TemplateStore) List() ([]models.Template, error) {
	templates, err := s.listHTML()
	if err != nil {
		return nil, err
	}

	uploads, err := s.listUploads()
	if err != nil {
		return nil, err
	}

	return append(templates, uploads...), nil
}

// listHTML returns the .html templates sorted with the sentinel default
// first and the rest by creation time descending.
func (s *TemplateStore) listHTML() ([]models.Template, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read templates dir: %w", err)
	}

	var templates []models.Template
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".html") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat template %s: %w", name, err)
		}
		base, _ := slug.SplitExt(name)
		templates = append(templates, models.Template{
			Filename:    name,
			DisplayName: base,
			Size:        info.Size(),
			Created:     info.ModTime(),
			Modified:    info.ModTime(),
			IsDefault:   name == models.DefaultTemplateFilename,
			Type:        models.TemplateTypeHTML,
		})
	}

	sort.SliceStable(templates, func(i, j int) bool {
		if templates[i].IsDefault != templates[j].IsDefault {
			return templates[i].IsDefault
		}
		return templates[i].Created.After(templates[j].Created)
	})
	return templates, nil
}

// listUploads returns raw uploaded PDFs so they appear in the logical
// template listing alongside authored HTML templates.
func (s *TemplateStore) listUploads() ([]models.Template, error) {
	entries, err := os.ReadDir(s.uploadsDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read uploads dir: %w", err)
	}

	var uploads []models.Template
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".pdf") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat upload %s: %w", name, err)
		}
		base, _ := slug.SplitExt(name)
		uploads = append(uploads, models.Template{
			Filename:    name,
			DisplayName: base,
			Size:        info.Size(),
			Created:     info.ModTime(),
			Modified:    info.ModTime(),
			IsUploaded:  true,
			Type:        models.TemplateTypePDF,
		})
	}
	return uploads, nil
}

// Read returns the HTML content of a template. Returns ErrNotFound when
// the template does not exist.
func (s *TemplateStore) Read(filename string) (string, error) {
	if !validName(filename) {
		return "", ErrNotFound
	}
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", filename, err)
	}
	return string(data), nil
}

// Write stores content under the given filename, overwriting an existing
// template of the same name.
func (s *TemplateStore) Write(filename, content string) (models.Template, error) {
	if !validName(filename) {
		return models.Template{}, fmt.Errorf("invalid template filename %q", filename)
	}
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return models.Template{}, fmt.Errorf("write template %s: %w", filename, err)
	}
	return s.stat(filename)
}

// WriteUnique stores content under a name derived from baseName that is
// guaranteed not to collide, by appending " copy N" with an incrementing
// counter. Not safe under concurrent callers racing on the same base
// name — a documented non-goal for this single-user tool.
func (s *TemplateStore) WriteUnique(baseName, content string) (models.Template, error) {
	base := strings.TrimSuffix(baseName, ".html")

	var filename string
	for counter := 1; ; counter++ {
		filename = fmt.Sprintf("%s copy %d.html", base, counter)
		if _, err := os.Stat(filepath.Join(s.dir, filename)); errors.Is(err, os.ErrNotExist) {
			break
		}
	}

	return s.Write(filename, content)
}

// UniqueUploadName returns "<base>.html", appending "_N" until the name
// is free in the template directory. Used by the upload flow.
func (s *TemplateStore) UniqueUploadName(base string) string {
	filename := base + ".html"
	for counter := 1; ; counter++ {
		if _, err := os.Stat(filepath.Join(s.dir, filename)); errors.Is(err, os.ErrNotExist) {
			return filename
		}
		filename = fmt.Sprintf("%s_%d.html", base, counter)
	}
}

// Rename changes a template's filename to newDisplayName + ".html" and
// updates the metadata and selection sidecars that reference the old
// name. The default template cannot be renamed.
func (s *TemplateStore) Rename(oldFilename, newDisplayName string) (string, error) {
	if oldFilename == models.DefaultTemplateFilename {
		return "", ErrDefaultTemplate
	}
	newFilename := newDisplayName + ".html"
	if !validName(oldFilename) || !validName(newFilename) {
		return "", ErrNotFound
	}

	oldPath := filepath.Join(s.dir, oldFilename)
	newPath := filepath.Join(s.dir, newFilename)

	if _, err := os.Stat(newPath); err == nil {
		return "", ErrNameExists
	}
	if _, err := os.Stat(oldPath); errors.Is(err, os.ErrNotExist) {
		return "", ErrNotFound
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return "", fmt.Errorf("rename template: %w", err)
	}

	if err := s.renameMeta(oldFilename, newFilename, newDisplayName); err != nil {
		return "", err
	}
	if err := s.renameSelection(oldFilename, newFilename); err != nil {
		return "", err
	}
	return newFilename, nil
}

// Delete removes a template and repairs the selection sidecar: when the
// deleted template was selected, selection falls back to the default.
// The default template cannot be deleted.
func (s *TemplateStore) Delete(filename string) error {
	if filename == models.DefaultTemplateFilename {
		return ErrDefaultTemplate
	}
	if !validName(filename) {
		return ErrNotFound
	}

	path := filepath.Join(s.dir, filename)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}

	checked, err := s.rawChecked()
	if err != nil {
		return err
	}
	var kept []string
	for _, name := range checked {
		if name != filename {
			kept = append(kept, name)
		}
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete template %s: %w", filename, err)
	}

	meta, err := s.readMeta()
	if err != nil {
		return err
	}
	if _, ok := meta[filename]; ok {
		delete(meta, filename)
		if err := writeJSONFile(filepath.Join(s.dir, metaFile), meta); err != nil {
			return err
		}
	}

	remaining, err := s.listHTML()
	if err != nil {
		return err
	}
	return s.writeChecked(normalizeSelection(kept, len(remaining)))
}

// Checked returns the current selection, normalized to the
// single-selection invariant against the available templates and
// persisted when normalization changed it.
func (s *TemplateStore) Checked() ([]string, error) {
	checked, err := s.rawChecked()
	if err != nil {
		return nil, err
	}

	templates, err := s.listHTML()
	if err != nil {
		return nil, err
	}

	normalized := normalizeSelection(checked, len(templates))
	if !equalStrings(checked, normalized) {
		if err := s.writeChecked(normalized); err != nil {
			return nil, err
		}
	}
	return normalized, nil
}

// SetChecked replaces the selection with the normalized form of the
// given list: whatever the caller supplies, at most one entry survives.
func (s *TemplateStore) SetChecked(checked []string) ([]string, error) {
	templates, err := s.listHTML()
	if err != nil {
		return nil, err
	}

	normalized := normalizeSelection(checked, len(templates))
	if err := s.writeChecked(normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

// MarkChecked makes filename the selected template.
func (s *TemplateStore) MarkChecked(filename string) error {
	_, err := s.SetChecked([]string{filename})
	return err
}

// normalizeSelection enforces the single-selection invariant: an empty
// selection, or a library holding only the default template, selects the
// default; more than one entry keeps only the first.
func normalizeSelection(checked []string, available int) []string {
	if len(checked) == 0 || available == 1 {
		return []string{models.DefaultTemplateFilename}
	}
	if len(checked) > 1 {
		return checked[:1]
	}
	return checked
}

// rawChecked reads the selection sidecar without normalizing. A missing
// sidecar is an empty selection; a malformed one is an error.
func (s *TemplateStore) rawChecked() ([]string, error) {
	var checked []string
	err := readJSONFile(filepath.Join(s.dir, checkedFile), &checked)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return checked, nil
}

func (s *TemplateStore) writeChecked(checked []string) error {
	return writeJSONFile(filepath.Join(s.dir, checkedFile), checked)
}

// readMeta loads the display-name sidecar. Missing file means no
// metadata yet.
func (s *TemplateStore) readMeta() (map[string]models.TemplateMeta, error) {
	meta := make(map[string]models.TemplateMeta)
	err := readJSONFile(filepath.Join(s.dir, metaFile), &meta)
	if errors.Is(err, ErrNotFound) {
		return meta, nil
	}
	if err != nil {
		return nil, err
	}
	return meta, nil
}

func (s *TemplateStore) renameMeta(oldFilename, newFilename, newDisplayName string) error {
	meta, err := s.readMeta()
	if err != nil {
		return err
	}
	if _, ok := meta[oldFilename]; !ok {
		return nil
	}
	meta[newFilename] = models.TemplateMeta{DisplayName: newDisplayName}
	delete(meta, oldFilename)
	return writeJSONFile(filepath.Join(s.dir, metaFile), meta)
}

func (s *TemplateStore) renameSelection(oldFilename, newFilename string) error {
	checked, err := s.rawChecked()
	if err != nil {
		return err
	}
	changed := false
	for i, name := range checked {
		if name == oldFilename {
			checked[i] = newFilename
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.writeChecked(checked)
}

// stat builds Template metadata for an existing file.
func (s *TemplateStore) stat(filename string) (models.Template, error) {
	info, err := os.Stat(filepath.Join(s.dir, filename))
	if err != nil {
		return models.Template{}, fmt.Errorf("stat template %s: %w", filename, err)
	}
	base, _ := slug.SplitExt(filename)
	return models.Template{
		Filename:    filename,
		DisplayName: base,
		Size:        info.Size(),
		Created:     info.ModTime(),
		Modified:    info.ModTime(),
		IsDefault:   filename == models.DefaultTemplateFilename,
		Type:        models.TemplateTypeHTML,
	}, nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
