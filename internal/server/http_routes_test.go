package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resumescan/internal/errors"
)

func authTestServer(keys ...string) *Server {
	apiKeys := make(map[string]bool)
	for _, k := range keys {
		apiKeys[k] = true
	}
	return &Server{
		APIKeys: apiKeys,
		Logger:  errors.NewLogger(slog.LevelError),
	}
}

func TestAuthMiddleware(t *testing.T) {
	okHandler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	tests := []struct {
		name       string
		keys       []string
		header     string
		value      string
		wantStatus int
	}{
		{
			name:       "no keys configured allows all",
			keys:       nil,
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid api key header",
			keys:       []string{"secret-key-123"},
			header:     "X-API-Key",
			value:      "secret-key-123",
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid bearer token",
			keys:       []string{"secret-key-123"},
			header:     "Authorization",
			value:      "Bearer secret-key-123",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing key rejected",
			keys:       []string{"secret-key-123"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong key rejected",
			keys:       []string{"secret-key-123"},
			header:     "X-API-Key",
			value:      "wrong",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := authTestServer(tt.keys...)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()

			s.authMiddleware(okHandler)(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	s := &Server{
		MaxRequestSize: 16,
		Logger:         errors.NewLogger(slog.LevelError),
	}

	handler := s.requestSizeLimitMiddleware()(func(w http.ResponseWriter, r *http.Request) {
		if err := parseJSONRequest(r, &struct{}{}); err != nil {
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	body := `{"padding":"this body is larger than sixteen bytes"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"short", "****"},
		{"12345678", "****"},
		{"123456789abcdef", "12345678****"},
	}
	for _, tt := range tests {
		if got := maskAPIKey(tt.in); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
