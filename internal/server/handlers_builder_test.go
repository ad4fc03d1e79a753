package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resumescan/internal/builder"
	"resumescan/internal/config"
	"resumescan/internal/errors"
	"resumescan/internal/types"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := errors.NewLogger(slog.LevelError)
	store, err := builder.NewStore(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	return &Server{
		AppConfig:      &config.Config{},
		MaxRequestSize: 1 << 20,
		Store:          store,
		Logger:         logger,
	}
}

func jsonRequest(method, target string, body any) *http.Request {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestGetResumeNotFound(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()

	s.getResumeHandler(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Error != "Resume not found" {
		t.Errorf("error = %q, want %q", resp.Error, "Resume not found")
	}
}

func TestUpdateResumeRoundTrip(t *testing.T) {
	s := testServer(t)

	created, err := s.Store.Create("Draft")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	title := "Updated Title"
	req := jsonRequest(http.MethodPatch, "/api/v1/resumes/"+created.ID, types.ResumeUpdate{Title: &title})
	req.SetPathValue("id", created.ID)
	rec := httptest.NewRecorder()

	s.updateResumeHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var updated types.ResumeBuilder
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.Title != title {
		t.Errorf("title = %q, want %q", updated.Title, title)
	}
}

func TestUpdateResumeRejectsBadContentType(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/resumes/abc", strings.NewReader("{}"))
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()

	s.updateResumeHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDeleteResume(t *testing.T) {
	s := testServer(t)

	created, err := s.Store.Create("Doomed")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/resumes/"+created.ID, nil)
	req.SetPathValue("id", created.ID)
	rec := httptest.NewRecorder()

	s.deleteResumeHandler(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if _, err := s.Store.Get(created.ID); err == nil {
		t.Error("resume still retrievable after delete")
	}
}

func TestListResumes(t *testing.T) {
	s := testServer(t)

	for _, title := range []string{"First", "Second"} {
		if _, err := s.Store.Create(title); err != nil {
			t.Fatalf("Create(%q) error: %v", title, err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil)
	rec := httptest.NewRecorder()

	s.listResumesHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var summaries []types.BuilderSummary
	if err := json.NewDecoder(rec.Body).Decode(&summaries); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(summaries) != 2 {
		t.Errorf("len(summaries) = %d, want 2", len(summaries))
	}
}

func TestAddSectionEntry(t *testing.T) {
	s := testServer(t)

	created, err := s.Store.Create("With Skills")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	entry := json.RawMessage(`{"category":"Languages","skills":["Go","Python"]}`)
	req := jsonRequest(http.MethodPost, "/api/v1/resumes/"+created.ID+"/sections/skills", entry)
	req.SetPathValue("id", created.ID)
	req.SetPathValue("section", "skills")
	rec := httptest.NewRecorder()

	s.addSectionEntryHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var updated types.ResumeBuilder
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(updated.Skills) != 1 {
		t.Errorf("len(skills) = %d, want 1", len(updated.Skills))
	}
}

func TestApplyFixToStoredResume(t *testing.T) {
	s := testServer(t)

	created, err := s.Store.Create("No Summary")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	fix := types.AutoFix{
		Type:           types.FixTypeSummary,
		Action:         types.FixActionAdd,
		Section:        "summary",
		SuggestedValue: "Seasoned engineer with broad platform experience.",
		AutoApplicable: true,
	}
	req := jsonRequest(http.MethodPost, "/api/v1/resumes/"+created.ID+"/fixes/apply", ApplyFixRequest{Fix: fix})
	req.SetPathValue("id", created.ID)
	rec := httptest.NewRecorder()

	s.applyFixHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	stored, err := s.Store.Get(created.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if stored.Summary == nil || stored.Summary.Text == "" {
		t.Error("summary not persisted after fix application")
	}
}

func TestApplyFixRejectsManualFix(t *testing.T) {
	s := testServer(t)

	created, err := s.Store.Create("Manual")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	fix := types.AutoFix{
		Type:           types.FixTypeSummary,
		Action:         types.FixActionAdd,
		AutoApplicable: false,
	}
	req := jsonRequest(http.MethodPost, "/api/v1/resumes/"+created.ID+"/fixes/apply", ApplyFixRequest{Fix: fix})
	req.SetPathValue("id", created.ID)
	rec := httptest.NewRecorder()

	s.applyFixHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestExportResume(t *testing.T) {
	s := testServer(t)

	created, err := s.Store.Create("Export Me")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	name := "Ada Lovelace"
	if _, err := s.Store.Update(created.ID, &types.ResumeUpdate{
		Contact: &types.BuilderContact{FullName: name, Email: "ada@example.com"},
	}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+created.ID+"/export/text", nil)
	req.SetPathValue("id", created.ID)
	rec := httptest.NewRecorder()

	s.exportResumeHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %q, want text/plain", ct)
	}
	if !strings.Contains(rec.Body.String(), strings.ToUpper(name)) {
		t.Errorf("export body missing contact name: %q", rec.Body.String())
	}
}
