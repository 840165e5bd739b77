// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"

	"resumetailor/internal/slug"
)

const maxUploadSize = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadResume ingests a resume file and lands it as an HTML template.
// PDFs are converted with pdftohtml; images rely on client-side
// conversion and must arrive with an htmlContent form field. The new
// template becomes the active selection.
func (a *API) UploadResume(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	sanitized := slug.Upload(header.Filename)
	base, ext := slug.SplitExt(sanitized)
	filename := a.templates.UniqueUploadName(base)

	switch {
	case ext == ".pdf":
		if err := a.convertPDF(r.Context(), file, sanitized, filename); err != nil {
			slog.Error("pdf conversion failed", "file", header.Filename, "error", err)
			writeError(w, http.StatusInternalServerError, "PDF conversion failed.")
			return
		}
	default:
		contentType := header.Header.Get("Content-Type")
		if !allowedImageTypes[contentType] {
			writeError(w, http.StatusBadRequest, "Unsupported file type.")
			return
		}
		if header.Size > maxUploadSize {
			writeError(w, http.StatusBadRequest, "File too large.")
			return
		}
		// Image uploads are converted to HTML in the browser; the
		// server only stores what the client extracted.
		htmlContent := r.FormValue("htmlContent")
		if _, err := a.templates.Write(filename, htmlContent); err != nil {
			writeMappedError(w, err)
			return
		}
	}

	if err := a.templates.MarkChecked(filename); err != nil {
		writeMappedError(w, err)
		return
	}

	slog.Info("resume uploaded", "filename", filename, "original", header.Filename, "size", header.Size)
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      "Template uploaded",
		"filename":     filename,
		"originalName": header.Filename,
	})
}

// convertPDF stages the upload in the uploads directory and shells out
// to pdftohtml, producing a single standalone HTML file in the template
// directory. The staged PDF is kept so it shows up in the listing.
func (a *API) convertPDF(ctx context.Context, file io.Reader, sanitized, filename string) error {
	if err := os.MkdirAll(a.cfg.UploadsDir(), 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}

	pdfPath := filepath.Join(a.cfg.UploadsDir(), sanitized)
	out, err := os.Create(pdfPath)
	if err != nil {
		return fmt.Errorf("stage pdf: %w", err)
	}
	if _, err := io.Copy(out, io.LimitReader(file, maxUploadSize)); err != nil {
		out.Close()
		return fmt.Errorf("stage pdf: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("stage pdf: %w", err)
	}

	htmlPath := filepath.Join(a.cfg.TemplatesDir(), filename)
	cmd := exec.CommandContext(ctx, "pdftohtml", "-q", "-noframes", "-s", pdfPath, htmlPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("pdftohtml: %w: %s", err, output)
	}
	return nil
}
