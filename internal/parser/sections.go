package parser

import (
	"regexp"
	"strings"
)

// SectionKind identifies a canonical resume section.
type SectionKind string

const (
	SectionSummary        SectionKind = "summary"
	SectionExperience     SectionKind = "experience"
	SectionEducation      SectionKind = "education"
	SectionSkills         SectionKind = "skills"
	SectionProjects       SectionKind = "projects"
	SectionCertifications SectionKind = "certifications"
	SectionAchievements   SectionKind = "achievements"
	SectionLanguages      SectionKind = "languages"
	SectionReferences     SectionKind = "references"
	SectionHeader         SectionKind = "header"
)

// sectionSynonyms maps normalized heading text to the canonical section.
// Headings are matched after lowercasing and stripping punctuation, so
// "WORK EXPERIENCE:" and "Work Experience" resolve to the same entry.
var sectionSynonyms = map[string]SectionKind{
	"summary":              SectionSummary,
	"professional summary": SectionSummary,
	"profile":              SectionSummary,
	"professional profile": SectionSummary,
	"objective":            SectionSummary,
	"career objective":     SectionSummary,
	"about":                SectionSummary,
	"about me":             SectionSummary,

	"experience":              SectionExperience,
	"work experience":         SectionExperience,
	"professional experience": SectionExperience,
	"employment":              SectionExperience,
	"employment history":      SectionExperience,
	"work history":            SectionExperience,
	"career history":          SectionExperience,

	"education":              SectionEducation,
	"academic background":    SectionEducation,
	"academics":              SectionEducation,
	"qualifications":         SectionEducation,
	"education and training": SectionEducation,

	"skills":             SectionSkills,
	"technical skills":   SectionSkills,
	"core competencies":  SectionSkills,
	"competencies":       SectionSkills,
	"expertise":          SectionSkills,
	"technologies":       SectionSkills,
	"skills & abilities": SectionSkills,

	"projects":          SectionProjects,
	"personal projects": SectionProjects,
	"key projects":      SectionProjects,
	"selected projects": SectionProjects,

	"certifications":              SectionCertifications,
	"certificates":               SectionCertifications,
	"licenses":                   SectionCertifications,
	"certifications and licenses": SectionCertifications,
	"professional certifications": SectionCertifications,

	"achievements":     SectionAchievements,
	"accomplishments":  SectionAchievements,
	"awards":           SectionAchievements,
	"honors":           SectionAchievements,
	"awards and honors": SectionAchievements,

	"languages":            SectionLanguages,
	"language proficiency": SectionLanguages,

	"references": SectionReferences,
	"referees":   SectionReferences,
}

var headingStripPattern = regexp.MustCompile(`[:\-_|•]+`)

// Section is a contiguous run of lines under one detected heading. Lines
// before the first heading land in a synthetic "header" section, which is
// where the name and contact details usually live.
type Section struct {
	Kind  SectionKind
	Lines []string
}

// detectHeading reports the canonical section a line names, if any. A
// heading must be short, must not end in sentence punctuation, and must
// resolve through the synonym table.
func detectHeading(line string) (SectionKind, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > 40 {
		return "", false
	}
	if strings.HasSuffix(trimmed, ".") || strings.HasSuffix(trimmed, ",") {
		return "", false
	}
	normalized := strings.ToLower(headingStripPattern.ReplaceAllString(trimmed, " "))
	normalized = strings.Join(strings.Fields(normalized), " ")
	kind, ok := sectionSynonyms[normalized]
	return kind, ok
}

// splitSections walks the document lines and groups them by heading.
func splitSections(lines []string) []Section {
	sections := []Section{{Kind: SectionHeader}}
	current := 0

	for _, line := range lines {
		if kind, ok := detectHeading(line); ok {
			sections = append(sections, Section{Kind: kind})
			current = len(sections) - 1
			continue
		}
		trimmed := strings.TrimRight(line, " \t")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		sections[current].Lines = append(sections[current].Lines, trimmed)
	}
	return sections
}

// sectionByKind returns the merged lines of every section of the given
// kind, in document order.
func sectionByKind(sections []Section, kind SectionKind) []string {
	var lines []string
	for _, s := range sections {
		if s.Kind == kind {
			lines = append(lines, s.Lines...)
		}
	}
	return lines
}

// hasSection reports whether any section of the given kind carries content.
func hasSection(sections []Section, kind SectionKind) bool {
	for _, s := range sections {
		if s.Kind == kind && len(s.Lines) > 0 {
			return true
		}
	}
	return false
}
