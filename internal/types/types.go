package types

import "time"

// RawDocument is the product of the document reader: plain text plus the
// paragraph blocks it was assembled from.
type RawDocument struct {
	FullText  string   `json:"fullText"`
	Blocks    []string `json:"blocks"`
	PageCount int      `json:"pageCount"` // 0 = unknown (DOCX)
}

// ContactInfo holds extracted contact fields. Empty string means absent.
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
	Location string `json:"location,omitempty"`
}

// ExperienceItem represents one role in the experience section.
// Dates are free-form strings ("2020-01", "2020", "Present").
type ExperienceItem struct {
	JobTitle  string   `json:"jobTitle,omitempty"`
	Company   string   `json:"company,omitempty"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	IsCurrent bool     `json:"isCurrent,omitempty"`
	Bullets   []string `json:"bullets,omitempty"`
	RawText   string   `json:"rawText,omitempty"`
}

// EducationItem represents one education entry.
type EducationItem struct {
	Degree         string `json:"degree,omitempty"`
	FieldOfStudy   string `json:"fieldOfStudy,omitempty"`
	Institution    string `json:"institution,omitempty"`
	Location       string `json:"location,omitempty"`
	GraduationYear string `json:"graduationYear,omitempty"`
	GPA            string `json:"gpa,omitempty"`
	Honors         string `json:"honors,omitempty"`
	RawText        string `json:"rawText,omitempty"`
}

// SkillItem is a single extracted skill. Category comes from a closed static
// taxonomy; empty means uncategorized.
type SkillItem struct {
	Name           string `json:"name"`
	Category       string `json:"category,omitempty"`
	NormalizedName string `json:"normalizedName,omitempty"`
}

// ProjectItem represents one project entry.
type ProjectItem struct {
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	RawText      string   `json:"rawText,omitempty"`
}

// CertificationItem represents one certification entry.
type CertificationItem struct {
	Name    string `json:"name"`
	Issuer  string `json:"issuer,omitempty"`
	Date    string `json:"date,omitempty"`
	RawText string `json:"rawText,omitempty"`
}

// Resume is the structured result of parsing a document.
type Resume struct {
	Name           string              `json:"name,omitempty"`
	Summary        string              `json:"summary,omitempty"`
	Contact        ContactInfo         `json:"contact"`
	Experience     []ExperienceItem    `json:"experience,omitempty"`
	Education      []EducationItem     `json:"education,omitempty"`
	Skills         []SkillItem         `json:"skills,omitempty"`
	Projects       []ProjectItem       `json:"projects,omitempty"`
	Certifications []CertificationItem `json:"certifications,omitempty"`
	Languages      []string            `json:"languages,omitempty"`
	RawText        string              `json:"rawText,omitempty"`
}

// ScanMode selects the scoring tier.
type ScanMode string

const (
	ScanModeBasic  ScanMode = "basic"
	ScanModeATS    ScanMode = "ats"
	ScanModeExpert ScanMode = "expert"
)

// Valid reports whether the mode is one of the known tiers.
func (m ScanMode) Valid() bool {
	switch m {
	case ScanModeBasic, ScanModeATS, ScanModeExpert:
		return true
	}
	return false
}

// FindingKind identifies a scoring finding. Downstream consumers (the
// auto-fix recommender) dispatch on this value, never on message text.
type FindingKind string

const (
	FindingTooLong              FindingKind = "too-long"
	FindingTooShort             FindingKind = "too-short"
	FindingMissingSummary       FindingKind = "missing-summary"
	FindingMissingContact       FindingKind = "missing-contact"
	FindingMissingEmail         FindingKind = "missing-email"
	FindingMissingPhone         FindingKind = "missing-phone"
	FindingNoQuantification     FindingKind = "no-quantification"
	FindingLowQuantification    FindingKind = "low-quantification"
	FindingLongSentences        FindingKind = "long-sentences"
	FindingWeakBullets          FindingKind = "weak-bullets"
	FindingTablesDetected       FindingKind = "tables-detected"
	FindingImagesDetected       FindingKind = "images-detected"
	FindingColumnsDetected      FindingKind = "columns-detected"
	FindingMissingExperience    FindingKind = "missing-experience"
	FindingMissingEducation     FindingKind = "missing-education"
	FindingMissingSkills        FindingKind = "missing-skills"
	FindingFewSkills            FindingKind = "few-skills"
	FindingUncategorizedSkills  FindingKind = "uncategorized-skills"
	FindingBiasIndicators       FindingKind = "bias-indicators"
	FindingImageOnlyPDF         FindingKind = "image-only-pdf"
)

// Finding is a typed, data-bearing record of an issue detected during
// scoring. Section names the resume section involved; Value carries the
// measured quantity where one exists (word count, rate, sentence length).
type Finding struct {
	Kind    FindingKind `json:"kind"`
	Section string      `json:"section,omitempty"`
	Detail  string      `json:"detail,omitempty"`
	Value   float64     `json:"value,omitempty"`
}

// ReadabilityMetrics holds the Flesch-Kincaid family of measurements.
type ReadabilityMetrics struct {
	FleschReadingEase   float64 `json:"fleschReadingEase"`
	FleschKincaidGrade  float64 `json:"fleschKincaidGrade"`
	AvgWordsPerSentence float64 `json:"avgWordsPerSentence"`
	AvgSyllablesPerWord float64 `json:"avgSyllablesPerWord"`
	ReadabilityScore    float64 `json:"readabilityScore"`
}

// StructureFlags holds layout problems detected in the raw text.
type StructureFlags struct {
	HasTables         bool    `json:"hasTables"`
	HasImages         bool    `json:"hasImages"`
	HasColumns        bool    `json:"hasColumns"`
	HasHeadersFooters bool    `json:"hasHeadersFooters"`
	IsImageOnlyPDF    bool    `json:"isImageOnlyPdf"`
	WordCount         int     `json:"wordCount"`
	PageCount         int     `json:"pageCount"`
	EstimatedPages    float64 `json:"estimatedPages"`
}

// ExperienceMetrics summarizes the experience section for reporting.
type ExperienceMetrics struct {
	RoleCount          int     `json:"roleCount"`
	AvgBulletsPerRole  float64 `json:"avgBulletsPerRole"`
	QuantificationRate float64 `json:"quantificationRate"` // percent of bullets with a quantified result
	ActionVerbCount    int     `json:"actionVerbCount"`
}

// SkillsMetrics summarizes the skills section for reporting.
type SkillsMetrics struct {
	SkillCount        int     `json:"skillCount"`
	CategorizedRate   float64 `json:"categorizedRate"` // percent of skills with a taxonomy category
	CategoryCount     int     `json:"categoryCount"`
	IndustryMatchRate float64 `json:"industryMatchRate"`
}

// LengthMetrics summarizes document length for reporting.
type LengthMetrics struct {
	WordCount      int     `json:"wordCount"`
	EstimatedPages float64 `json:"estimatedPages"`
}

// DetailedMetrics groups the per-dimension measurements behind a score.
type DetailedMetrics struct {
	Readability *ReadabilityMetrics `json:"readability,omitempty"`
	Structure   *StructureFlags     `json:"structure,omitempty"`
	Experience  *ExperienceMetrics  `json:"experience,omitempty"`
	Skills      *SkillsMetrics      `json:"skills,omitempty"`
	Length      *LengthMetrics      `json:"length,omitempty"`
}

// ResumeScore is the scoring engine output. Component scores and Overall are
// clamped to [0,100]. Experience, Skills and JobMatch are nil in BASIC mode.
type ResumeScore struct {
	Overall       float64  `json:"overall"`
	ATSCompliance float64  `json:"atsCompliance"`
	Readability   float64  `json:"readability"`
	Layout        float64  `json:"layout"`
	Experience    *float64 `json:"experience,omitempty"`
	Skills        *float64 `json:"skills,omitempty"`
	JobMatch      *float64 `json:"jobMatch,omitempty"`

	Comments []string  `json:"comments,omitempty"` // capped at 6
	Flags    []string  `json:"flags,omitempty"`
	Findings []Finding `json:"findings,omitempty"`

	Mode     ScanMode `json:"mode"`
	Industry string   `json:"industry,omitempty"`

	DetailedMetrics *DetailedMetrics `json:"detailedMetrics,omitempty"`
}

// FixType categorizes an auto-fix recommendation.
type FixType string

const (
	FixTypeLength         FixType = "length"
	FixTypeSummary        FixType = "summary"
	FixTypeReadability    FixType = "readability"
	FixTypeFormatting     FixType = "formatting"
	FixTypeQuantification FixType = "quantification"
	FixTypeContact        FixType = "contact"
	FixTypeDates          FixType = "dates"
	FixTypeBullets        FixType = "bullets"
	FixTypeKeywords       FixType = "keywords"
)

// FixAction describes what the fix does.
type FixAction string

const (
	FixActionAdd      FixAction = "add"
	FixActionRemove   FixAction = "remove"
	FixActionModify   FixAction = "modify"
	FixActionReformat FixAction = "reformat"
	FixActionSuggest  FixAction = "suggest"
)

// AutoFix is a single actionable recommendation.
type AutoFix struct {
	Type           FixType        `json:"type"`
	Action         FixAction      `json:"action"`
	Section        string         `json:"section"`
	Description    string         `json:"description"`
	OriginalValue  any            `json:"originalValue,omitempty"`
	SuggestedValue any            `json:"suggestedValue,omitempty"`
	AutoApplicable bool           `json:"autoApplicable"`
	Priority       int            `json:"priority"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// BuilderContact is the contact block of a built resume.
type BuilderContact struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
	Location string `json:"location,omitempty"`
}

// ProfessionalSummary is the summary block of a built resume.
type ProfessionalSummary struct {
	Text string `json:"text"`
}

// ExperienceEntry is one experience row in a built resume.
type ExperienceEntry struct {
	Position  string   `json:"position,omitempty"`
	Company   string   `json:"company,omitempty"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	IsCurrent bool     `json:"isCurrent,omitempty"`
	Bullets   []string `json:"bullets,omitempty"`
}

// EducationEntry is one education row in a built resume.
type EducationEntry struct {
	Degree         string `json:"degree,omitempty"`
	FieldOfStudy   string `json:"fieldOfStudy,omitempty"`
	Institution    string `json:"institution,omitempty"`
	Location       string `json:"location,omitempty"`
	GraduationYear string `json:"graduationYear,omitempty"`
	GPA            string `json:"gpa,omitempty"`
}

// SkillCategory groups skills under a named category in a built resume.
type SkillCategory struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

// CertificationEntry is one certification row in a built resume.
type CertificationEntry struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// ProjectEntry is one project row in a built resume.
type ProjectEntry struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// LanguageEntry is one language row in a built resume.
type LanguageEntry struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency,omitempty"`
}

// ResumeBuilder is the persisted, editable resume document.
type ResumeBuilder struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Contact        *BuilderContact      `json:"contact,omitempty"`
	Summary        *ProfessionalSummary `json:"summary,omitempty"`
	Experience     []ExperienceEntry    `json:"experience,omitempty"`
	Education      []EducationEntry     `json:"education,omitempty"`
	Skills         []SkillCategory      `json:"skills,omitempty"`
	Certifications []CertificationEntry `json:"certifications,omitempty"`
	Projects       []ProjectEntry       `json:"projects,omitempty"`
	Achievements   []string             `json:"achievements,omitempty"`
	Languages      []LanguageEntry      `json:"languages,omitempty"`
	CustomSections map[string]any       `json:"customSections,omitempty"`
}

// ResumeUpdate is the partial-update counterpart of ResumeBuilder. Nil
// fields are left untouched.
type ResumeUpdate struct {
	Title          *string               `json:"title,omitempty"`
	Contact        *BuilderContact       `json:"contact,omitempty"`
	Summary        *ProfessionalSummary  `json:"summary,omitempty"`
	Experience     *[]ExperienceEntry    `json:"experience,omitempty"`
	Education      *[]EducationEntry     `json:"education,omitempty"`
	Skills         *[]SkillCategory      `json:"skills,omitempty"`
	Certifications *[]CertificationEntry `json:"certifications,omitempty"`
	Projects       *[]ProjectEntry       `json:"projects,omitempty"`
	Achievements   *[]string             `json:"achievements,omitempty"`
	Languages      *[]LanguageEntry      `json:"languages,omitempty"`
	CustomSections *map[string]any       `json:"customSections,omitempty"`
}

// BuilderSummary is the list view of a stored resume.
type BuilderSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
