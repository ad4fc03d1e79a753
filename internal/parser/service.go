package parser

import (
	"strings"

	"resumescan/internal/errors"
	"resumescan/internal/types"
)

// Service turns a raw document into a structured resume. Extraction is
// best-effort throughout: a section that cannot be recognized yields an
// empty field, never an error.
type Service struct {
	logger *errors.Logger
}

func NewService(logger *errors.Logger) *Service {
	return &Service{logger: logger}
}

// Parse builds a structured resume from the document text.
func (s *Service) Parse(doc *types.RawDocument) *types.Resume {
	lines := strings.Split(doc.FullText, "\n")
	sections := splitSections(lines)

	resume := &types.Resume{
		Name:           extractName(lines),
		Summary:        strings.Join(sectionByKind(sections, SectionSummary), " "),
		Contact:        extractContact(doc.FullText),
		Experience:     extractExperience(sectionByKind(sections, SectionExperience)),
		Education:      extractEducation(sectionByKind(sections, SectionEducation)),
		Skills:         extractSkills(sectionByKind(sections, SectionSkills)),
		Projects:       extractProjects(sectionByKind(sections, SectionProjects)),
		Certifications: extractCertifications(sectionByKind(sections, SectionCertifications)),
		Languages:      extractLanguages(sectionByKind(sections, SectionLanguages)),
		RawText:        doc.FullText,
	}

	s.logger.Debug("Parsed resume",
		"name_found", resume.Name != "",
		"experience_entries", len(resume.Experience),
		"education_entries", len(resume.Education),
		"skills", len(resume.Skills),
		"certifications", len(resume.Certifications))

	return resume
}

// extractLanguages splits the languages section on the same delimiters as
// skills, dropping proficiency annotations in parentheses.
func extractLanguages(lines []string) []string {
	var langs []string
	seen := make(map[string]bool)
	for _, raw := range skillSplitPattern.Split(strings.Join(lines, "\n"), -1) {
		lang := strings.TrimSpace(raw)
		if idx := strings.Index(lang, "("); idx > 0 {
			lang = strings.TrimSpace(lang[:idx])
		}
		if len(lang) < 2 || seen[strings.ToLower(lang)] {
			continue
		}
		seen[strings.ToLower(lang)] = true
		langs = append(langs, lang)
	}
	return langs
}
