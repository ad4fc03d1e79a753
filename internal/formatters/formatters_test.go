package formatters

import (
	"encoding/json"
	"strings"
	"testing"

	"resumescan/internal/types"
)

func sampleResume() *types.Resume {
	return &types.Resume{
		Name:    "John Smith",
		Summary: "Backend engineer with ten years of experience.",
		Contact: types.ContactInfo{
			Email: "john@example.com",
			Phone: "(415) 555-0132",
		},
		Experience: []types.ExperienceItem{
			{
				JobTitle:  "Senior Engineer",
				Company:   "Acme Corp",
				StartDate: "2020",
				IsCurrent: true,
				Bullets:   []string{"Led billing migration"},
			},
		},
		Skills: []types.SkillItem{
			{Name: "Go"},
			{Name: "Kubernetes"},
		},
	}
}

func sampleScore() *types.ResumeScore {
	exp := 71.5
	return &types.ResumeScore{
		Overall:       82.4,
		Mode:          types.ScanModeATS,
		ATSCompliance: 85,
		Readability:   78.3,
		Layout:        90,
		Experience:    &exp,
		Flags:         []string{"Resume is missing a professional summary"},
		Comments:      []string{"Strong skills section"},
	}
}

func TestRegistryFormatJSON(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleResume(), "json")
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	var decoded types.Resume
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Name != "John Smith" {
		t.Errorf("name = %q, want %q", decoded.Name, "John Smith")
	}
}

func TestRegistryFormatUnsupported(t *testing.T) {
	if _, err := GlobalRegistry.Format(sampleResume(), "xml"); err == nil {
		t.Error("Format() expected error for unsupported format")
	}
}

func TestResumeTextFormat(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleResume(), "text")
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	for _, want := range []string{
		"=== PARSED RESUME ===",
		"John Smith",
		"Senior Engineer at Acme Corp",
		"Led billing migration",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}

func TestResumeMarkdownFormat(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleResume(), "markdown")
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	for _, want := range []string{
		"# John Smith",
		"## Experience",
		"### Senior Engineer at Acme Corp",
		"Present",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestScoreTextFormat(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleScore(), "text")
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	for _, want := range []string{
		"=== RESUME SCORE ===",
		"82.4",
		"Resume is missing a professional summary",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("score text output missing %q", want)
		}
	}
}

func TestFixesFormat(t *testing.T) {
	fixes := []types.AutoFix{
		{
			Type:           types.FixTypeSummary,
			Action:         types.FixActionAdd,
			Section:        "summary",
			Description:    "Add a professional summary",
			AutoApplicable: true,
			Priority:       1,
		},
	}

	for _, format := range []string{"text", "markdown", "json"} {
		out, err := GlobalRegistry.Format(fixes, format)
		if err != nil {
			t.Fatalf("Format(%s) error: %v", format, err)
		}
		if !strings.Contains(out, "Add a professional summary") {
			t.Errorf("%s output missing fix description", format)
		}
	}
}

func TestGetDataType(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{"resume pointer", &types.Resume{}, "Resume"},
		{"resume value", types.Resume{}, "Resume"},
		{"score pointer", &types.ResumeScore{}, "ResumeScore"},
		{"fixes slice", []types.AutoFix{}, "AutoFixes"},
		{"fallback", 42, "any"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getDataType(tt.data); got != tt.want {
				t.Errorf("getDataType() = %q, want %q", got, tt.want)
			}
		})
	}
}
