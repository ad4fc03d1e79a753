package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	resumescanErrors "resumescan/internal/errors"
	"resumescan/internal/observability"
	"resumescan/internal/scoring"
	"resumescan/internal/types"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// scanUpload is a resume document extracted from a multipart request,
// together with the optional scan parameters.
type scanUpload struct {
	filename       string
	data           []byte
	mode           string
	industry       string
	jobDescription string
}

// readScanUpload extracts the uploaded resume file and scan parameters from
// a multipart/form-data request. The file goes in the "file" field; "mode",
// "industry" and "jobDescription" are optional form fields.
func (s *Server) readScanUpload(r *http.Request) (*scanUpload, error) {
	if err := r.ParseMultipartForm(s.MaxRequestSize); err != nil {
		return nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing file field: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.Logger.Debug("Failed to close uploaded file", "error", err)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return &scanUpload{
		filename:       header.Filename,
		data:           data,
		mode:           strings.TrimSpace(r.FormValue("mode")),
		industry:       strings.TrimSpace(r.FormValue("industry")),
		jobDescription: r.FormValue("jobDescription"),
	}, nil
}

// writeDocumentError maps document reader errors to HTTP status codes:
// oversized uploads get 413, unreadable or empty documents get 422.
func (s *Server) writeDocumentError(w http.ResponseWriter, err error) {
	var appErr *resumescanErrors.AppError
	if stderrors.As(err, &appErr) {
		switch appErr.Code {
		case resumescanErrors.ErrCodeDocumentTooLarge:
			writeErrorResponse(w, "Document too large", appErr.Message, http.StatusRequestEntityTooLarge)
			return
		case resumescanErrors.ErrCodeDocumentEmpty,
			resumescanErrors.ErrCodeDocumentUnreadable,
			resumescanErrors.ErrCodeUnsupportedFormat:
			writeErrorResponse(w, "Document not processable", appErr.Message, http.StatusUnprocessableEntity)
			return
		case resumescanErrors.ErrCodeInvalidRequest:
			writeErrorResponse(w, "Invalid request", appErr.Message, http.StatusBadRequest)
			return
		}
	}
	writeErrorResponse(w, "Failed to process document", err.Error(), http.StatusUnprocessableEntity)
}

// scanDocumentStats builds document stats for metrics from the pipeline output.
func scanDocumentStats(wordCount, sentenceCount, pageCount int) *observability.DocumentStats {
	return &observability.DocumentStats{
		Words:     int64(wordCount),
		Sentences: int64(sentenceCount),
		Pages:     int64(pageCount),
	}
}

// createParseHandler wraps the parse handler with observability
func (s *Server) createParseHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumescan.api")
		ctx, span := tracer.Start(ctx, "api.parse")
		defer span.End()

		upload, err := s.readScanUpload(r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("request.filename", upload.filename),
			attribute.Int("request.size_bytes", len(upload.data)),
			attribute.String("operation", "parse"),
		)

		metrics := om.GetMetrics()
		var result *types.Resume
		err = metrics.TrackScanOperation(ctx, "parse", func(ctx context.Context) *observability.ScanOperationResult {
			doc, readErr := s.Reader.Read(upload.filename, upload.data)
			if readErr != nil {
				return &observability.ScanOperationResult{Error: readErr}
			}
			result = s.Parser.Parse(doc)
			res := s.Analyzer.Analyze(doc, result)
			return &observability.ScanOperationResult{
				Stats: scanDocumentStats(res.Structure.WordCount, res.SentenceCount, doc.PageCount),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "document_processing"))
			metrics.RecordBusinessMetric(ctx, "resume_parsed", false, om,
				attribute.String("error", err.Error()))
			s.writeDocumentError(w, err)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_parsed", true, om,
			attribute.Int("experience_entries", len(result.Experience)),
			attribute.Int("skills_found", len(result.Skills)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.experience_entries", len(result.Experience)),
			attribute.Int("response.skills_found", len(result.Skills)),
		)

		writeJSONResponse(w, span, result)
	}
}

// createScoreHandler wraps the score handler with observability
func (s *Server) createScoreHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumescan.api")
		ctx, span := tracer.Start(ctx, "api.score")
		defer span.End()

		upload, err := s.readScanUpload(r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request", err.Error(), http.StatusBadRequest)
			return
		}

		mode := upload.mode
		if mode == "" {
			mode = s.AppConfig.Scan.DefaultMode
		}
		if !types.ScanMode(mode).Valid() {
			err := fmt.Errorf("invalid scan mode %q", mode)
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid scan mode", "mode must be basic, ats or expert", http.StatusBadRequest)
			return
		}

		industry := upload.industry
		if industry == "" {
			industry = s.AppConfig.Scan.DefaultIndustry
		}

		span.SetAttributes(
			attribute.String("request.filename", upload.filename),
			attribute.Int("request.size_bytes", len(upload.data)),
			attribute.String("request.mode", mode),
			attribute.String("request.industry", industry),
			attribute.Bool("request.has_job_description", upload.jobDescription != ""),
			attribute.String("operation", "score"),
		)

		metrics := om.GetMetrics()
		var result *types.ResumeScore
		err = metrics.TrackScanOperation(ctx, "score", func(ctx context.Context) *observability.ScanOperationResult {
			doc, readErr := s.Reader.Read(upload.filename, upload.data)
			if readErr != nil {
				return &observability.ScanOperationResult{Error: readErr}
			}
			resume := s.Parser.Parse(doc)
			res := s.Analyzer.Analyze(doc, resume)
			result = s.Engine.Score(resume, res, scoring.Options{
				Mode:           types.ScanMode(mode),
				JobDescription: upload.jobDescription,
				Industry:       industry,
			})
			return &observability.ScanOperationResult{
				Stats: scanDocumentStats(res.Structure.WordCount, res.SentenceCount, doc.PageCount),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "document_processing"))
			metrics.RecordBusinessMetric(ctx, "resume_scored", false, om,
				attribute.String("error", err.Error()))
			s.writeDocumentError(w, err)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_scored", true, om,
			attribute.String("mode", mode),
			attribute.Float64("overall_score", result.Overall))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("response.overall_score", result.Overall),
			attribute.Int("response.findings", len(result.Findings)),
		)

		writeJSONResponse(w, span, result)
	}
}

// AnalyzeResponse bundles the parsed resume with its score for the
// combined analyze endpoint.
type AnalyzeResponse struct {
	Resume *types.Resume      `json:"resume"`
	Score  *types.ResumeScore `json:"score"`
}

// createAnalyzeHandler parses and scores an upload in one pass
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumescan.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		upload, err := s.readScanUpload(r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request", err.Error(), http.StatusBadRequest)
			return
		}

		mode := upload.mode
		if mode == "" {
			mode = s.AppConfig.Scan.DefaultMode
		}
		if !types.ScanMode(mode).Valid() {
			err := fmt.Errorf("invalid scan mode %q", mode)
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid scan mode", "mode must be basic, ats or expert", http.StatusBadRequest)
			return
		}

		industry := upload.industry
		if industry == "" {
			industry = s.AppConfig.Scan.DefaultIndustry
		}

		span.SetAttributes(
			attribute.String("request.filename", upload.filename),
			attribute.Int("request.size_bytes", len(upload.data)),
			attribute.String("request.mode", mode),
			attribute.String("operation", "analyze"),
		)

		metrics := om.GetMetrics()
		var response AnalyzeResponse
		err = metrics.TrackScanOperation(ctx, "analyze", func(ctx context.Context) *observability.ScanOperationResult {
			doc, readErr := s.Reader.Read(upload.filename, upload.data)
			if readErr != nil {
				return &observability.ScanOperationResult{Error: readErr}
			}
			resume := s.Parser.Parse(doc)
			res := s.Analyzer.Analyze(doc, resume)
			response.Resume = resume
			response.Score = s.Engine.Score(resume, res, scoring.Options{
				Mode:           types.ScanMode(mode),
				JobDescription: upload.jobDescription,
				Industry:       industry,
			})
			return &observability.ScanOperationResult{
				Stats: scanDocumentStats(res.Structure.WordCount, res.SentenceCount, doc.PageCount),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "document_processing"))
			metrics.RecordBusinessMetric(ctx, "resume_scored", false, om,
				attribute.String("error", err.Error()))
			s.writeDocumentError(w, err)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_scored", true, om,
			attribute.String("mode", mode),
			attribute.Float64("overall_score", response.Score.Overall))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("response.overall_score", response.Score.Overall),
		)

		writeJSONResponse(w, span, response)
	}
}

// createFixesHandler wraps the fixes handler with observability
func (s *Server) createFixesHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumescan.api")
		ctx, span := tracer.Start(ctx, "api.fixes")
		defer span.End()

		upload, err := s.readScanUpload(r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request", err.Error(), http.StatusBadRequest)
			return
		}

		industry := upload.industry
		if industry == "" {
			industry = s.AppConfig.Scan.DefaultIndustry
		}

		span.SetAttributes(
			attribute.String("request.filename", upload.filename),
			attribute.Int("request.size_bytes", len(upload.data)),
			attribute.String("request.industry", industry),
			attribute.String("operation", "fixes"),
		)

		metrics := om.GetMetrics()
		var result []types.AutoFix
		err = metrics.TrackScanOperation(ctx, "fixes", func(ctx context.Context) *observability.ScanOperationResult {
			doc, readErr := s.Reader.Read(upload.filename, upload.data)
			if readErr != nil {
				return &observability.ScanOperationResult{Error: readErr}
			}
			resume := s.Parser.Parse(doc)
			res := s.Analyzer.Analyze(doc, resume)
			// Expert mode surfaces the full set of findings for the recommender.
			score := s.Engine.Score(resume, res, scoring.Options{
				Mode:     types.ScanModeExpert,
				Industry: industry,
			})
			result = s.Recommender.Recommend(resume, res, score.Findings)
			return &observability.ScanOperationResult{
				Stats: scanDocumentStats(res.Structure.WordCount, res.SentenceCount, doc.PageCount),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "document_processing"))
			metrics.RecordBusinessMetric(ctx, "fixes_generated", false, om,
				attribute.String("error", err.Error()))
			s.writeDocumentError(w, err)
			return
		}

		metrics.RecordBusinessMetric(ctx, "fixes_generated", true, om,
			attribute.Int("fixes_count", len(result)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.fixes_count", len(result)),
		)

		writeJSONResponse(w, span, result)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// writeJSONResponse encodes the payload as JSON, recording encode failures
// on the span.
func writeJSONResponse(w http.ResponseWriter, span oteltrace.Span, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		span.RecordError(err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
