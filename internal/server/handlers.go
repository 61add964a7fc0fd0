package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Multipart form field names accepted by the upload endpoint
const (
	formResume         = "resume"
	formJobDescription = "job_description"
	formJobFile        = "job_file"
)

// multipartOverhead allows for form boundaries and text fields on top of the file limit
const multipartOverhead = 64 << 10

// handleAnalyze scores a resume sent as JSON
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			s.errorResponse(w, r, unsupportedMedia("expected application/json, got %q", ct))
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	var req types.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.errorResponse(w, r, tooLarge("request body exceeds %d bytes", s.cfg.MaxUploadBytes))
			return
		}
		s.errorResponse(w, r, badRequest("invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := s.checkTextLength("resume_text", req.ResumeText); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := s.checkTextLength("job_description", req.JobDescription); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.analyze(w, r, req.Document())
}

// handleAnalyzeUpload scores a resume uploaded as a PDF, DOCX, TXT or HTML file
func (s *Server) handleAnalyzeUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			s.errorResponse(w, r, tooLarge("upload exceeds %d bytes", s.cfg.MaxUploadBytes))
		case errors.Is(err, http.ErrNotMultipart):
			s.errorResponse(w, r, unsupportedMedia("expected multipart/form-data"))
		default:
			s.errorResponse(w, r, badRequest("invalid multipart form: %v", err))
		}
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	resumeText, err := s.readUpload(r, formResume, true)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := s.checkTextLength("resume_text", resumeText); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	jobText := r.FormValue(formJobDescription)
	if jobText == "" {
		jobText, err = s.readUpload(r, formJobFile, false)
		if err != nil {
			s.errorResponse(w, r, err)
			return
		}
	}
	if err := s.checkTextLength(formJobDescription, jobText); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.analyze(w, r, types.Document{RawText: resumeText, JobDescription: jobText})
}

// readUpload extracts the text of the named form file. A missing optional file yields "".
func (s *Server) readUpload(r *http.Request, field string, required bool) (string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		if required {
			return "", badRequest("missing form file %q", field)
		}
		return "", nil
	}
	if err != nil {
		return "", badRequest("invalid form file %q: %v", field, err)
	}
	defer func() { _ = file.Close() }()

	if err := s.checkUpload(header); err != nil {
		return "", err
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", badRequest("failed to read %q: %v", field, err)
	}
	return ingestion.ExtractText(header.Filename, data)
}

func (s *Server) checkUpload(header *multipart.FileHeader) error {
	if header.Size > s.cfg.MaxUploadBytes {
		return &ingestion.TooLargeError{Size: header.Size, Limit: s.cfg.MaxUploadBytes}
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !s.cfg.IsAllowedExtension(ext) {
		return &ingestion.UnsupportedFormatError{Filename: header.Filename, Extension: ext}
	}
	return nil
}

func (s *Server) checkTextLength(field, text string) error {
	if n := utf8.RuneCountInString(text); n > s.cfg.MaxTextChars {
		return tooLarge("%s has %d characters, limit is %d", field, n, s.cfg.MaxTextChars)
	}
	return nil
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request, doc types.Document) {
	result, err := s.analyzer.AnalyzeDocument(doc)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleFallback answers requests no route matched: 405 with an Allow header when the
// path exists under other methods, 404 otherwise.
func (s *Server) handleFallback(allowed map[string][]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if methods, ok := allowed[r.URL.Path]; ok {
			w.Header().Set("Allow", strings.Join(methods, ", "))
			s.errorResponse(w, r, &ErrRequest{
				Status:  http.StatusMethodNotAllowed,
				Kind:    KindMethodNotAllowed,
				Message: fmt.Sprintf("method %s is not allowed on %s", r.Method, r.URL.Path),
			})
			return
		}
		s.errorResponse(w, r, &ErrRequest{
			Status:  http.StatusNotFound,
			Kind:    KindNotFound,
			Message: fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path),
		})
	}
}

// handleCatalog returns the loaded skill catalog
func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.analyzer.Catalog())
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	cat := s.analyzer.Catalog()
	s.jsonResponse(w, http.StatusOK, types.HealthResponse{
		Status:         "ok",
		CatalogVersion: cat.Version,
		SkillCount:     cat.SkillCount(),
	})
}
