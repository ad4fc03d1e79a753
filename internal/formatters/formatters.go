package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumescan/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "Resume", &ResumeTextFormatter{})
	registry.RegisterFormatter("markdown", "Resume", &ResumeMarkdownFormatter{})
	registry.RegisterFormatter("text", "ResumeScore", &ScoreTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeScore", &ScoreMarkdownFormatter{})
	registry.RegisterFormatter("text", "AutoFixes", &FixesTextFormatter{})
	registry.RegisterFormatter("markdown", "AutoFixes", &FixesMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.Resume, *types.Resume:
		return "Resume"
	case types.ResumeScore, *types.ResumeScore:
		return "ResumeScore"
	case []types.AutoFix:
		return "AutoFixes"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

func asResume(data any) (*types.Resume, bool) {
	switch v := data.(type) {
	case types.Resume:
		return &v, true
	case *types.Resume:
		return v, true
	}
	return nil, false
}

func asScore(data any) (*types.ResumeScore, bool) {
	switch v := data.(type) {
	case types.ResumeScore:
		return &v, true
	case *types.ResumeScore:
		return v, true
	}
	return nil, false
}

// ResumeTextFormatter handles text formatting for parsed resumes
type ResumeTextFormatter struct{}

func (rtf *ResumeTextFormatter) Format(data any) (string, error) {
	resume, ok := asResume(data)
	if !ok {
		return "", fmt.Errorf("expected Resume, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== PARSED RESUME ===\n\n")
	if resume.Name != "" {
		output.WriteString(fmt.Sprintf("Name: %s\n", resume.Name))
	}
	writeContactText(&output, resume.Contact)
	output.WriteString("\n")

	if resume.Summary != "" {
		output.WriteString("=== SUMMARY ===\n")
		output.WriteString(resume.Summary)
		output.WriteString("\n\n")
	}

	if len(resume.Experience) > 0 {
		output.WriteString("=== EXPERIENCE ===\n\n")
		for _, exp := range resume.Experience {
			title := exp.JobTitle
			if exp.Company != "" {
				title = fmt.Sprintf("%s at %s", title, exp.Company)
			}
			output.WriteString(title)
			output.WriteString("\n")
			if exp.StartDate != "" || exp.EndDate != "" {
				output.WriteString(fmt.Sprintf("%s - %s\n", exp.StartDate, endDateLabel(exp.EndDate, exp.IsCurrent)))
			}
			for _, bullet := range exp.Bullets {
				output.WriteString(fmt.Sprintf("  - %s\n", bullet))
			}
			output.WriteString("\n")
		}
	}

	if len(resume.Education) > 0 {
		output.WriteString("=== EDUCATION ===\n\n")
		for _, edu := range resume.Education {
			line := edu.Degree
			if edu.Institution != "" {
				if line != "" {
					line += ", "
				}
				line += edu.Institution
			}
			if edu.GraduationYear != "" {
				line += fmt.Sprintf(" (%s)", edu.GraduationYear)
			}
			output.WriteString(line)
			output.WriteString("\n")
		}
		output.WriteString("\n")
	}

	if len(resume.Skills) > 0 {
		output.WriteString("=== SKILLS ===\n")
		names := make([]string, len(resume.Skills))
		for i, skill := range resume.Skills {
			names[i] = skill.Name
		}
		output.WriteString(strings.Join(names, ", "))
		output.WriteString("\n\n")
	}

	if len(resume.Certifications) > 0 {
		output.WriteString("=== CERTIFICATIONS ===\n")
		for _, cert := range resume.Certifications {
			line := cert.Name
			if cert.Issuer != "" {
				line += " - " + cert.Issuer
			}
			output.WriteString(fmt.Sprintf("- %s\n", line))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (rtf *ResumeTextFormatter) SupportedType() string {
	return "Resume"
}

// ResumeMarkdownFormatter handles markdown formatting for parsed resumes
type ResumeMarkdownFormatter struct{}

func (rmf *ResumeMarkdownFormatter) Format(data any) (string, error) {
	resume, ok := asResume(data)
	if !ok {
		return "", fmt.Errorf("expected Resume, got %T", data)
	}

	var output strings.Builder

	if resume.Name != "" {
		output.WriteString(fmt.Sprintf("# %s\n\n", resume.Name))
	} else {
		output.WriteString("# Parsed Resume\n\n")
	}
	writeContactMarkdown(&output, resume.Contact)

	if resume.Summary != "" {
		output.WriteString("## Summary\n\n")
		output.WriteString(resume.Summary)
		output.WriteString("\n\n")
	}

	if len(resume.Experience) > 0 {
		output.WriteString("## Experience\n\n")
		for _, exp := range resume.Experience {
			title := exp.JobTitle
			if exp.Company != "" {
				title = fmt.Sprintf("%s at %s", title, exp.Company)
			}
			output.WriteString(fmt.Sprintf("### %s\n\n", title))
			if exp.StartDate != "" || exp.EndDate != "" {
				output.WriteString(fmt.Sprintf("*%s - %s*\n\n", exp.StartDate, endDateLabel(exp.EndDate, exp.IsCurrent)))
			}
			for _, bullet := range exp.Bullets {
				output.WriteString(fmt.Sprintf("- %s\n", bullet))
			}
			output.WriteString("\n")
		}
	}

	if len(resume.Education) > 0 {
		output.WriteString("## Education\n\n")
		for _, edu := range resume.Education {
			line := edu.Degree
			if edu.Institution != "" {
				if line != "" {
					line += ", "
				}
				line += edu.Institution
			}
			if edu.GraduationYear != "" {
				line += fmt.Sprintf(" (%s)", edu.GraduationYear)
			}
			output.WriteString(fmt.Sprintf("- %s\n", line))
		}
		output.WriteString("\n")
	}

	if len(resume.Skills) > 0 {
		output.WriteString("## Skills\n\n")
		names := make([]string, len(resume.Skills))
		for i, skill := range resume.Skills {
			names[i] = skill.Name
		}
		output.WriteString(strings.Join(names, ", "))
		output.WriteString("\n\n")
	}

	if len(resume.Certifications) > 0 {
		output.WriteString("## Certifications\n\n")
		for _, cert := range resume.Certifications {
			line := cert.Name
			if cert.Issuer != "" {
				line += " - " + cert.Issuer
			}
			output.WriteString(fmt.Sprintf("- %s\n", line))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (rmf *ResumeMarkdownFormatter) SupportedType() string {
	return "Resume"
}

// ScoreTextFormatter handles text formatting for scoring results
type ScoreTextFormatter struct{}

func (stf *ScoreTextFormatter) Format(data any) (string, error) {
	score, ok := asScore(data)
	if !ok {
		return "", fmt.Errorf("expected ResumeScore, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME SCORE ===\n\n")
	output.WriteString(fmt.Sprintf("Mode: %s\n", score.Mode))
	if score.Industry != "" {
		output.WriteString(fmt.Sprintf("Industry: %s\n", score.Industry))
	}
	output.WriteString(fmt.Sprintf("Overall: %.1f/100\n\n", score.Overall))

	output.WriteString("=== COMPONENT SCORES ===\n")
	output.WriteString(fmt.Sprintf("ATS Compliance: %.1f\n", score.ATSCompliance))
	output.WriteString(fmt.Sprintf("Readability:    %.1f\n", score.Readability))
	output.WriteString(fmt.Sprintf("Layout:         %.1f\n", score.Layout))
	if score.Experience != nil {
		output.WriteString(fmt.Sprintf("Experience:     %.1f\n", *score.Experience))
	}
	if score.Skills != nil {
		output.WriteString(fmt.Sprintf("Skills:         %.1f\n", *score.Skills))
	}
	if score.JobMatch != nil {
		output.WriteString(fmt.Sprintf("Job Match:      %.1f\n", *score.JobMatch))
	}
	output.WriteString("\n")

	if len(score.Flags) > 0 {
		output.WriteString("=== FLAGS ===\n")
		for _, flag := range score.Flags {
			output.WriteString(fmt.Sprintf("- %s\n", flag))
		}
		output.WriteString("\n")
	}

	if len(score.Comments) > 0 {
		output.WriteString("=== COMMENTS ===\n")
		for i, comment := range score.Comments {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, comment))
		}
	}

	return output.String(), nil
}

func (stf *ScoreTextFormatter) SupportedType() string {
	return "ResumeScore"
}

// ScoreMarkdownFormatter handles markdown formatting for scoring results
type ScoreMarkdownFormatter struct{}

func (smf *ScoreMarkdownFormatter) Format(data any) (string, error) {
	score, ok := asScore(data)
	if !ok {
		return "", fmt.Errorf("expected ResumeScore, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Score\n\n")
	output.WriteString(fmt.Sprintf("**Mode:** %s\n\n", score.Mode))
	if score.Industry != "" {
		output.WriteString(fmt.Sprintf("**Industry:** %s\n\n", score.Industry))
	}
	output.WriteString(fmt.Sprintf("**Overall:** %.1f/100\n\n", score.Overall))

	output.WriteString("## Component Scores\n\n")
	output.WriteString(fmt.Sprintf("- ATS Compliance: %.1f\n", score.ATSCompliance))
	output.WriteString(fmt.Sprintf("- Readability: %.1f\n", score.Readability))
	output.WriteString(fmt.Sprintf("- Layout: %.1f\n", score.Layout))
	if score.Experience != nil {
		output.WriteString(fmt.Sprintf("- Experience: %.1f\n", *score.Experience))
	}
	if score.Skills != nil {
		output.WriteString(fmt.Sprintf("- Skills: %.1f\n", *score.Skills))
	}
	if score.JobMatch != nil {
		output.WriteString(fmt.Sprintf("- Job Match: %.1f\n", *score.JobMatch))
	}
	output.WriteString("\n")

	if len(score.Flags) > 0 {
		output.WriteString("## Flags\n\n")
		for _, flag := range score.Flags {
			output.WriteString(fmt.Sprintf("- %s\n", flag))
		}
		output.WriteString("\n")
	}

	if len(score.Comments) > 0 {
		output.WriteString("## Comments\n\n")
		for i, comment := range score.Comments {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, comment))
		}
	}

	return output.String(), nil
}

func (smf *ScoreMarkdownFormatter) SupportedType() string {
	return "ResumeScore"
}

// FixesTextFormatter handles text formatting for auto-fix recommendations
type FixesTextFormatter struct{}

func (ftf *FixesTextFormatter) Format(data any) (string, error) {
	fixes, ok := data.([]types.AutoFix)
	if !ok {
		return "", fmt.Errorf("expected []AutoFix, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== AUTO-FIX RECOMMENDATIONS ===\n\n")
	if len(fixes) == 0 {
		output.WriteString("No fixes recommended.\n")
		return output.String(), nil
	}

	for i, fix := range fixes {
		output.WriteString(fmt.Sprintf("%d. [%s/%s] %s\n", i+1, fix.Type, fix.Action, fix.Description))
		output.WriteString(fmt.Sprintf("   Section: %s, Priority: %d", fix.Section, fix.Priority))
		if fix.AutoApplicable {
			output.WriteString(", auto-applicable")
		}
		output.WriteString("\n")
		if suggested, ok := fix.SuggestedValue.(string); ok && suggested != "" {
			output.WriteString(fmt.Sprintf("   Suggested: %s\n", suggested))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (ftf *FixesTextFormatter) SupportedType() string {
	return "AutoFixes"
}

// FixesMarkdownFormatter handles markdown formatting for auto-fix recommendations
type FixesMarkdownFormatter struct{}

func (fmf *FixesMarkdownFormatter) Format(data any) (string, error) {
	fixes, ok := data.([]types.AutoFix)
	if !ok {
		return "", fmt.Errorf("expected []AutoFix, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Auto-Fix Recommendations\n\n")
	if len(fixes) == 0 {
		output.WriteString("No fixes recommended.\n")
		return output.String(), nil
	}

	for i, fix := range fixes {
		output.WriteString(fmt.Sprintf("## %d. %s\n\n", i+1, fix.Description))
		output.WriteString(fmt.Sprintf("**Type:** %s | **Action:** %s | **Section:** %s | **Priority:** %d\n\n",
			fix.Type, fix.Action, fix.Section, fix.Priority))
		if fix.AutoApplicable {
			output.WriteString("**Auto-applicable:** yes\n\n")
		}
		if suggested, ok := fix.SuggestedValue.(string); ok && suggested != "" {
			output.WriteString(fmt.Sprintf("**Suggested:** %s\n\n", suggested))
		}
	}

	return output.String(), nil
}

func (fmf *FixesMarkdownFormatter) SupportedType() string {
	return "AutoFixes"
}

func writeContactText(output *strings.Builder, contact types.ContactInfo) {
	if contact.Email != "" {
		output.WriteString(fmt.Sprintf("Email: %s\n", contact.Email))
	}
	if contact.Phone != "" {
		output.WriteString(fmt.Sprintf("Phone: %s\n", contact.Phone))
	}
	if contact.LinkedIn != "" {
		output.WriteString(fmt.Sprintf("LinkedIn: %s\n", contact.LinkedIn))
	}
	if contact.Location != "" {
		output.WriteString(fmt.Sprintf("Location: %s\n", contact.Location))
	}
}

func writeContactMarkdown(output *strings.Builder, contact types.ContactInfo) {
	parts := []string{}
	if contact.Email != "" {
		parts = append(parts, contact.Email)
	}
	if contact.Phone != "" {
		parts = append(parts, contact.Phone)
	}
	if contact.LinkedIn != "" {
		parts = append(parts, contact.LinkedIn)
	}
	if contact.Location != "" {
		parts = append(parts, contact.Location)
	}
	if len(parts) > 0 {
		output.WriteString(strings.Join(parts, " | "))
		output.WriteString("\n\n")
	}
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()

func endDateLabel(endDate string, isCurrent bool) string {
	if isCurrent || endDate == "" {
		return "Present"
	}
	return endDate
}
