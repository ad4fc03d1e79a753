package parser

import (
	"log/slog"
	"strings"
	"testing"

	"resumescan/internal/errors"
	"resumescan/internal/types"
)

const sampleResume = `John Smith
john.smith@example.com | (415) 555-0132
San Francisco, CA | linkedin.com/in/johnsmith

PROFESSIONAL SUMMARY
Experienced software engineer with a decade of backend work.

WORK EXPERIENCE
Jan 2020 - Present
Senior Software Engineer at Acme Corp
• Led migration of billing platform, reducing costs by 30%
• Managed team of 6 engineers

2016 - 2019
Software Engineer - Widgets Inc
• Built data pipelines processing 2M events daily

EDUCATION
Bachelor of Science in Computer Science
Stanford University, 2016
GPA: 3.8

SKILLS
Python, Go, Kubernetes, PostgreSQL, Leadership

CERTIFICATIONS
AWS Certified Solutions Architect - Amazon Web Services, 2021
`

func testService() *Service {
	return NewService(errors.NewLogger(slog.LevelError))
}

func TestParseFullResume(t *testing.T) {
	doc := &types.RawDocument{FullText: sampleResume}
	resume := testService().Parse(doc)

	if resume.Name != "John Smith" {
		t.Errorf("Name = %q, want %q", resume.Name, "John Smith")
	}
	if resume.Contact.Email != "john.smith@example.com" {
		t.Errorf("Email = %q", resume.Contact.Email)
	}
	if resume.Contact.Location != "San Francisco, CA" {
		t.Errorf("Location = %q", resume.Contact.Location)
	}
	if !strings.Contains(resume.Summary, "backend work") {
		t.Errorf("Summary = %q, missing expected content", resume.Summary)
	}
	if len(resume.Experience) != 2 {
		t.Fatalf("Experience entries = %d, want 2", len(resume.Experience))
	}
	first := resume.Experience[0]
	if first.StartDate != "2020-01" || first.EndDate != "Present" || !first.IsCurrent {
		t.Errorf("first entry dates = %q..%q current=%v", first.StartDate, first.EndDate, first.IsCurrent)
	}
	if first.JobTitle != "Senior Software Engineer" || first.Company != "Acme Corp" {
		t.Errorf("first entry = %q at %q", first.JobTitle, first.Company)
	}
	if len(first.Bullets) != 2 {
		t.Errorf("first entry bullets = %d, want 2", len(first.Bullets))
	}
	if len(resume.Education) == 0 {
		t.Fatal("expected at least one education entry")
	}
	edu := resume.Education[0]
	if edu.GraduationYear != "2016" {
		t.Errorf("GraduationYear = %q, want 2016", edu.GraduationYear)
	}
	if edu.GPA != "3.8" {
		t.Errorf("GPA = %q, want 3.8", edu.GPA)
	}
	if len(resume.Skills) != 5 {
		t.Errorf("Skills = %d, want 5", len(resume.Skills))
	}
	if len(resume.Certifications) != 1 {
		t.Fatalf("Certifications = %d, want 1", len(resume.Certifications))
	}
	cert := resume.Certifications[0]
	if cert.Name != "AWS Certified Solutions Architect" || cert.Issuer == "" {
		t.Errorf("cert = %+v", cert)
	}
}

func TestExtractContactPhoneDigits(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantPhone bool
	}{
		{
			name:      "full US number",
			text:      "Call me at (415) 555-0132",
			wantPhone: true,
		},
		{
			name:      "international number",
			text:      "+44 20 7946 0958",
			wantPhone: true,
		},
		{
			name:      "date range is not a phone",
			text:      "2019 - 2021",
			wantPhone: false,
		},
		{
			name:      "zip code is not a phone",
			text:      "Springfield, IL 62704",
			wantPhone: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contact := extractContact(tt.text)
			if got := contact.Phone != ""; got != tt.wantPhone {
				t.Errorf("Phone = %q, wantPhone=%v", contact.Phone, tt.wantPhone)
			}
		})
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "plain name first line",
			lines: []string{"Jane Doe", "jane@example.com"},
			want:  "Jane Doe",
		},
		{
			name:  "title prefix stripped",
			lines: []string{"Dr. Maria Elena Garcia"},
			want:  "Maria Elena Garcia",
		},
		{
			name:  "suffix stripped",
			lines: []string{"Robert Chen PhD"},
			want:  "Robert Chen",
		},
		{
			name:  "contact line skipped",
			lines: []string{"jane@example.com", "Jane Doe"},
			want:  "Jane Doe",
		},
		{
			name:  "lowercase rejected",
			lines: []string{"curriculum vitae", "some text"},
			want:  "",
		},
		{
			name:  "too many words rejected",
			lines: []string{"This Is Not A Name At All"},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractName(tt.lines); got != tt.want {
				t.Errorf("extractName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		want        string
		wantCurrent bool
	}{
		{name: "month year", in: "Jan 2020", want: "2020-01"},
		{name: "full month year", in: "September 2018", want: "2018-09"},
		{name: "bare year", in: "2016", want: "2016"},
		{name: "present", in: "Present", want: "Present", wantCurrent: true},
		{name: "current", in: "current", want: "Present", wantCurrent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, current := normalizeDate(tt.in)
			if got != tt.want || current != tt.wantCurrent {
				t.Errorf("normalizeDate(%q) = %q,%v want %q,%v", tt.in, got, current, tt.want, tt.wantCurrent)
			}
		})
	}
}

func TestDetectHeading(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantKind SectionKind
		wantOK   bool
	}{
		{name: "uppercase heading", line: "WORK EXPERIENCE", wantKind: SectionExperience, wantOK: true},
		{name: "heading with colon", line: "Skills:", wantKind: SectionSkills, wantOK: true},
		{name: "synonym", line: "Employment History", wantKind: SectionExperience, wantOK: true},
		{name: "sentence is not a heading", line: "I have experience.", wantOK: false},
		{name: "long line rejected", line: "Experience working with distributed systems at scale", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := detectHeading(tt.line)
			if ok != tt.wantOK || (ok && kind != tt.wantKind) {
				t.Errorf("detectHeading(%q) = %q,%v want %q,%v", tt.line, kind, ok, tt.wantKind, tt.wantOK)
			}
		})
	}
}

func TestExtractSkillsDedupe(t *testing.T) {
	skills := extractSkills([]string{"Python, python, Go; SQL | sql", "Leadership"})
	if len(skills) != 4 {
		t.Fatalf("skills = %d, want 4 after dedupe", len(skills))
	}
	byName := make(map[string]types.SkillItem)
	for _, s := range skills {
		byName[s.NormalizedName] = s
	}
	if byName["python"].Category != "programming" {
		t.Errorf("Python category = %q, want programming", byName["python"].Category)
	}
	if byName["leadership"].Category != "soft" {
		t.Errorf("Leadership category = %q, want soft", byName["leadership"].Category)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	resume := testService().Parse(&types.RawDocument{FullText: ""})
	if resume.Name != "" || len(resume.Experience) != 0 || len(resume.Skills) != 0 {
		t.Errorf("empty document should yield empty resume, got %+v", resume)
	}
}
