package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"resumescan/internal/autofix"
	"resumescan/internal/builder"
	resumescanErrors "resumescan/internal/errors"
	"resumescan/internal/observability"
	"resumescan/internal/scoring"
	"resumescan/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// writeStoreError maps storage and validation errors to HTTP status codes.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	var appErr *resumescanErrors.AppError
	if stderrors.As(err, &appErr) {
		switch appErr.Code {
		case resumescanErrors.ErrCodeResumeNotFound:
			writeErrorResponse(w, "Resume not found", appErr.Message, http.StatusNotFound)
			return
		case resumescanErrors.ErrCodeInvalidRequest:
			writeErrorResponse(w, "Invalid request", appErr.Message, http.StatusBadRequest)
			return
		}
	}
	writeErrorResponse(w, "Storage operation failed", err.Error(), http.StatusInternalServerError)
}

// createResumeHandler creates a blank stored resume from a JSON title.
func (s *Server) createResumeHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateResumeRequest
	if err := parseJSONRequest(r, &req); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	resume, err := s.Store.Create(req.Title)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(resume); err != nil {
		s.Logger.LogError(err, "Failed to encode response")
	}
}

// importResumeHandler parses an uploaded document and seeds a stored
// resume from the result.
func (s *Server) importResumeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumescan.api")
		ctx, span := tracer.Start(ctx, "api.resumes.import")
		defer span.End()

		upload, err := s.readScanUpload(r)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request", err.Error(), http.StatusBadRequest)
			return
		}

		doc, err := s.Reader.Read(upload.filename, upload.data)
		if err != nil {
			span.RecordError(err)
			s.writeDocumentError(w, err)
			return
		}
		parsed := s.Parser.Parse(doc)

		resume, err := s.Store.CreateFromParsed(parsed)
		if err != nil {
			span.RecordError(err)
			s.writeStoreError(w, err)
			return
		}

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "resume_parsed", true, om,
			attribute.String("source", "builder_import"))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("resume.id", resume.ID),
		)
		w.WriteHeader(http.StatusCreated)
		writeJSONResponse(w, span, resume)
	}
}

// listResumesHandler returns summaries of all stored resumes.
func (s *Server) listResumesHandler(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.Store.List()
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, summaries)
}

// getResumeHandler returns a single stored resume.
func (s *Server) getResumeHandler(w http.ResponseWriter, r *http.Request) {
	resume, err := s.Store.Get(r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, resume)
}

// updateResumeHandler applies a partial update to a stored resume.
func (s *Server) updateResumeHandler(w http.ResponseWriter, r *http.Request) {
	var update types.ResumeUpdate
	if err := parseJSONRequest(r, &update); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	resume, err := s.Store.Update(r.PathValue("id"), &update)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, resume)
}

// deleteResumeHandler removes a stored resume.
func (s *Server) deleteResumeHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.PathValue("id")); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// saveResumeHandler replaces a stored resume with the full document in the
// request body. The path ID wins over any ID carried in the body.
func (s *Server) saveResumeHandler(w http.ResponseWriter, r *http.Request) {
	var resume types.ResumeBuilder
	if err := parseJSONRequest(r, &resume); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	resume.ID = r.PathValue("id")

	if err := s.Store.Save(&resume); err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, resume)
}

// addSectionEntryHandler appends an entry to a list section of a stored
// resume. The section name comes from the path; the body is the entry.
func (s *Server) addSectionEntryHandler(w http.ResponseWriter, r *http.Request) {
	var entry json.RawMessage
	if err := parseJSONRequest(r, &entry); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	resume, err := s.Store.AddSectionEntry(r.PathValue("id"), r.PathValue("section"), entry)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, resume)
}

// removeSectionEntryHandler removes an entry from a list section by index.
func (s *Server) removeSectionEntryHandler(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeErrorResponse(w, "Invalid index", "index must be an integer", http.StatusBadRequest)
		return
	}

	resume, err := s.Store.RemoveSectionEntry(r.PathValue("id"), r.PathValue("section"), index)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, resume)
}

// fixesForStoredResume runs the stored resume through the scan pipeline in
// expert mode and returns the recommended fixes.
func (s *Server) fixesForStoredResume(resume *types.ResumeBuilder) ([]types.AutoFix, error) {
	text := builder.ExportText(resume)
	doc, err := s.Reader.Read(resume.ID+".txt", []byte(text))
	if err != nil {
		return nil, fmt.Errorf("stored resume has no scannable content: %w", err)
	}
	parsed := s.Parser.Parse(doc)
	res := s.Analyzer.Analyze(doc, parsed)
	score := s.Engine.Score(parsed, res, scoring.Options{Mode: types.ScanModeExpert})
	return s.Recommender.Recommend(parsed, res, score.Findings), nil
}

// recommendFixesHandler generates fix recommendations for a stored resume.
func (s *Server) recommendFixesHandler(w http.ResponseWriter, r *http.Request) {
	resume, err := s.Store.Get(r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	fixes, err := s.fixesForStoredResume(resume)
	if err != nil {
		writeErrorResponse(w, "Failed to analyze resume", err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.writeJSON(w, fixes)
}

// applyFixHandler applies a single auto-applicable fix to a stored resume.
func (s *Server) applyFixHandler(w http.ResponseWriter, r *http.Request) {
	var req ApplyFixRequest
	if err := parseJSONRequest(r, &req); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	resume, err := s.Store.Get(r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	message, err := autofix.Apply(resume, req.Fix)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	if err := s.Store.Save(resume); err != nil {
		s.writeStoreError(w, err)
		return
	}

	s.writeJSON(w, map[string]any{
		"message": message,
		"resume":  resume,
	})
}

// applyAllFixesHandler generates fixes for a stored resume and applies
// every auto-applicable one.
func (s *Server) applyAllFixesHandler(w http.ResponseWriter, r *http.Request) {
	resume, err := s.Store.Get(r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	fixes, err := s.fixesForStoredResume(resume)
	if err != nil {
		writeErrorResponse(w, "Failed to analyze resume", err.Error(), http.StatusUnprocessableEntity)
		return
	}

	var applied []string
	skipped := 0
	for _, fix := range fixes {
		if !fix.AutoApplicable {
			skipped++
			continue
		}
		message, applyErr := autofix.Apply(resume, fix)
		if applyErr != nil {
			s.Logger.Debug("Skipping inapplicable fix",
				"resume_id", resume.ID, "fix_type", fix.Type, "error", applyErr)
			skipped++
			continue
		}
		applied = append(applied, message)
	}

	if len(applied) > 0 {
		if err := s.Store.Save(resume); err != nil {
			s.writeStoreError(w, err)
			return
		}
	}

	s.writeJSON(w, map[string]any{
		"applied": applied,
		"skipped": skipped,
		"resume":  resume,
	})
}

// exportResumeHandler renders a stored resume as plain text.
func (s *Server) exportResumeHandler(w http.ResponseWriter, r *http.Request) {
	resume, err := s.Store.Get(r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(builder.ExportText(resume))); err != nil {
		s.Logger.Debug("Failed to write export response", "error", err)
	}
}

// writeJSON encodes a payload for handlers without an active span.
func (s *Server) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.Logger.LogError(err, "Failed to encode response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
