package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/JonMunkholm/salaryboard/internal/core"
	"github.com/JonMunkholm/salaryboard/internal/logging"
)

// multipartOverhead is the allowance for form boundaries and headers on top
// of the file size limit.
const multipartOverhead = 64 << 10

// maxUploadMemory is how much of a multipart body is kept in memory before
// spilling to temporary files.
const maxUploadMemory = 10 << 20

// uploadedFile reads the "file" part of a multipart upload.
// The caller must close the returned file.
func (s *Server) uploadedFile(w http.ResponseWriter, r *http.Request) (multipart.File, string, error) {
	maxSize := s.cfg.Upload.MaxFileSize
	if maxSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", fmt.Errorf("%w: limit is %d bytes", core.ErrFileTooLarge, maxSize)
		}
		return nil, "", fmt.Errorf("%w: %v", core.ErrNoFile, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", core.ErrNoFile, err)
	}
	return file, filepath.Base(header.Filename), nil
}

// readUpload buffers an uploaded file within the size limit. Uploads with
// nothing but whitespace fail with ErrEmptyFile so they never replace the
// current dataset.
func (s *Server) readUpload(file multipart.File, name string) (io.Reader, error) {
	data, err := core.ReadLimited(file, s.cfg.Upload.MaxFileSize)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s", core.ErrEmptyFile, name)
	}
	return bytes.NewReader(data), nil
}

// handleUpload ingests a salary CSV and replaces the current dataset.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, name, err := s.uploadedFile(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(WithRequestMetadata(r.Context(), r), s.cfg.Upload.Timeout)
	defer cancel()

	logging.WithFields(ctx, "source", name).Info("upload received")

	body, err := s.readUpload(file, name)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	ds, err := s.service.Ingest(ctx, name, body)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newDatasetResponse(ds))
}

// handlePreview reports what an upload would produce without loading it.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	file, name, err := s.uploadedFile(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Upload.Timeout)
	defer cancel()

	body, err := s.readUpload(file, name)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	preview, err := s.service.Preview(ctx, name, body)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, preview)
}

// handleDownloadTemplate serves a header-only CSV with the expected columns.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	data, err := core.TemplateCSV()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment("salary-template.csv"))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(data)
}
