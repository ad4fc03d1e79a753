package builder

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resumescan/internal/errors"
	"resumescan/internal/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), errors.NewLogger(slog.LevelError))
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	return store
}

func TestCreateAndGet(t *testing.T) {
	store := testStore(t)

	created, err := store.Create("Test Resume")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if created.ID == "" || created.Title != "Test Resume" {
		t.Errorf("created = %+v", created)
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("timestamps not initialized: %v / %v", created.CreatedAt, created.UpdatedAt)
	}

	got, err := store.Get(created.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.ID != created.ID || got.Title != created.Title {
		t.Errorf("Get() = %+v, want %+v", got, created)
	}
}

func TestCreateDefaultTitle(t *testing.T) {
	store := testStore(t)
	created, err := store.Create("")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if created.Title != "My Resume" {
		t.Errorf("Title = %q, want default", created.Title)
	}
}

func TestGetSurvivesCacheLoss(t *testing.T) {
	dir := t.TempDir()
	logger := errors.NewLogger(slog.LevelError)

	first, err := NewStore(dir, logger)
	if err != nil {
		t.Fatal(err)
	}
	created, err := first.Create("Persisted")
	if err != nil {
		t.Fatal(err)
	}

	// A fresh store over the same directory must find it on disk.
	second, err := NewStore(dir, logger)
	if err != nil {
		t.Fatal(err)
	}
	got, err := second.Get(created.ID)
	if err != nil {
		t.Fatalf("Get() after restart: %v", err)
	}
	if got.Title != "Persisted" {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestGetNotFound(t *testing.T) {
	store := testStore(t)
	_, err := store.Get("no-such-id")
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeResumeNotFound {
		t.Errorf("err = %v, want RESUME_NOT_FOUND", err)
	}
}

func TestGetRejectsTraversal(t *testing.T) {
	store := testStore(t)
	if _, err := store.Get("../etc/passwd"); err == nil {
		t.Fatal("expected error for traversal id")
	}
}

func TestUpdatePartial(t *testing.T) {
	store := testStore(t)
	created, _ := store.Create("Original")

	title := "Renamed"
	summary := &types.ProfessionalSummary{Text: "Hands-on engineering leader."}
	updated, err := store.Update(created.ID, &types.ResumeUpdate{
		Title:   &title,
		Summary: summary,
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Title != "Renamed" || updated.Summary == nil || updated.Summary.Text != summary.Text {
		t.Errorf("updated = %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("UpdatedAt not advanced")
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Error("CreatedAt must not change on update")
	}

	// Untouched fields stay put on a second partial update.
	contact := &types.BuilderContact{FullName: "Jane Doe", Email: "jane@example.com"}
	again, err := store.Update(created.ID, &types.ResumeUpdate{Contact: contact})
	if err != nil {
		t.Fatal(err)
	}
	if again.Title != "Renamed" || again.Summary == nil {
		t.Errorf("partial update clobbered fields: %+v", again)
	}
}

func TestUpdateNotFound(t *testing.T) {
	store := testStore(t)
	title := "x"
	if _, err := store.Update("missing", &types.ResumeUpdate{Title: &title}); err == nil {
		t.Fatal("expected error")
	}
}

func TestDelete(t *testing.T) {
	store := testStore(t)
	created, _ := store.Create("Doomed")

	if err := store.Delete(created.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := store.Get(created.ID); err == nil {
		t.Error("resume still retrievable after delete")
	}
	if err := store.Delete(created.ID); err == nil {
		t.Error("second delete should report not found")
	}
}

func TestListMergesCacheAndDisk(t *testing.T) {
	dir := t.TempDir()
	logger := errors.NewLogger(slog.LevelError)

	seed, err := NewStore(dir, logger)
	if err != nil {
		t.Fatal(err)
	}
	onDisk, _ := seed.Create("On Disk")

	store, err := NewStore(dir, logger)
	if err != nil {
		t.Fatal(err)
	}
	cached, _ := store.Create("In Cache")

	// Drop a broken file alongside; List must skip it.
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	summaries, err := store.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	ids := make(map[string]bool)
	for _, s := range summaries {
		ids[s.ID] = true
	}
	if !ids[onDisk.ID] || !ids[cached.ID] {
		t.Errorf("List() = %v, want both %s and %s", ids, onDisk.ID, cached.ID)
	}
	if len(summaries) != 2 {
		t.Errorf("List() = %d entries, want 2", len(summaries))
	}
}

func TestSectionEntries(t *testing.T) {
	store := testStore(t)
	created, _ := store.Create("Sections")

	entry, _ := json.Marshal(types.ExperienceEntry{
		Position: "Engineer", Company: "Acme", StartDate: "2020-01",
		Bullets: []string{"Shipped the thing"},
	})
	updated, err := store.AddSectionEntry(created.ID, SectionExperience, entry)
	if err != nil {
		t.Fatalf("AddSectionEntry() error: %v", err)
	}
	if len(updated.Experience) != 1 || updated.Experience[0].Company != "Acme" {
		t.Errorf("Experience = %+v", updated.Experience)
	}

	skills, _ := json.Marshal(types.SkillCategory{Category: "Languages", Skills: []string{"Go"}})
	if _, err := store.AddSectionEntry(created.ID, SectionSkills, skills); err != nil {
		t.Fatal(err)
	}

	removed, err := store.RemoveSectionEntry(created.ID, SectionExperience, 0)
	if err != nil {
		t.Fatalf("RemoveSectionEntry() error: %v", err)
	}
	if len(removed.Experience) != 0 || len(removed.Skills) != 1 {
		t.Errorf("after remove: %+v", removed)
	}
}

func TestSectionEntryValidation(t *testing.T) {
	store := testStore(t)
	created, _ := store.Create("Sections")

	tests := []struct {
		name    string
		section string
		entry   string
	}{
		{name: "unknown section", section: "hobbies", entry: `{}`},
		{name: "unknown field rejected", section: SectionExperience, entry: `{"salary": 100}`},
		{name: "malformed json", section: SectionEducation, entry: `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.AddSectionEntry(created.ID, tt.section, json.RawMessage(tt.entry)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := store.RemoveSectionEntry(created.ID, SectionExperience, 0); err == nil {
		t.Error("expected out-of-range error")
	}
}

func TestCreateFromParsed(t *testing.T) {
	store := testStore(t)
	parsed := &types.Resume{
		Name:    "Jane Doe",
		Summary: "Platform engineer.",
		Contact: types.ContactInfo{Email: "jane@example.com", Phone: "(415) 555-0100"},
		Experience: []types.ExperienceItem{
			{JobTitle: "Engineer", Company: "Acme", StartDate: "2020-01", EndDate: "Present", IsCurrent: true,
				Bullets: []string{"Did the work"}},
		},
		Education: []types.EducationItem{{Degree: "BSc", Institution: "State U", GraduationYear: "2016"}},
		Skills:    []types.SkillItem{{Name: "Go"}, {Name: "Python"}},
		Certifications: []types.CertificationItem{
			{Name: "Cert", Issuer: "Board"},
		},
		Languages: []string{"English", "Spanish"},
	}

	imported, err := store.CreateFromParsed(parsed)
	if err != nil {
		t.Fatalf("CreateFromParsed() error: %v", err)
	}
	if imported.Title != "Imported Resume" {
		t.Errorf("Title = %q", imported.Title)
	}
	if imported.Contact == nil || imported.Contact.FullName != "Jane Doe" {
		t.Errorf("Contact = %+v", imported.Contact)
	}
	if len(imported.Experience) != 1 || imported.Experience[0].Position != "Engineer" {
		t.Errorf("Experience = %+v", imported.Experience)
	}
	if len(imported.Skills) != 1 || len(imported.Skills[0].Skills) != 2 {
		t.Errorf("Skills = %+v", imported.Skills)
	}
	if len(imported.Languages) != 2 {
		t.Errorf("Languages = %+v", imported.Languages)
	}
}

func TestExportText(t *testing.T) {
	resume := &types.ResumeBuilder{
		Contact: &types.BuilderContact{
			FullName: "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "(415) 555-0100",
			LinkedIn: "linkedin.com/in/janedoe",
		},
		Summary: &types.ProfessionalSummary{Text: "Platform engineer."},
		Experience: []types.ExperienceEntry{
			{Position: "Engineer", Company: "Acme", StartDate: "2020-01",
				Bullets: []string{"Shipped the thing"}},
		},
		Education: []types.EducationEntry{
			{Degree: "BSc Computer Science", Institution: "State U", GraduationYear: "2016"},
		},
		Skills: []types.SkillCategory{
			{Category: "Languages", Skills: []string{"Go", "Python"}},
		},
		Certifications: []types.CertificationEntry{
			{Name: "Cert", Issuer: "Board"},
		},
	}

	text := ExportText(resume)

	for _, want := range []string{
		"JANE DOE",
		"jane@example.com | (415) 555-0100",
		"LinkedIn: linkedin.com/in/janedoe",
		"PROFESSIONAL SUMMARY",
		"Engineer at Acme",
		"2020-01 - Present",
		"• Shipped the thing",
		"BSc Computer Science, State U",
		"Languages: Go, Python",
		"• Cert - Board",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("export missing %q\n%s", want, text)
		}
	}
}
