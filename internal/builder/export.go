package builder

import (
	"strings"

	"resumescan/internal/types"
)

// ExportText renders a resume document as plain text, one section per
// uppercase heading.
func ExportText(resume *types.ResumeBuilder) string {
	var lines []string

	if c := resume.Contact; c != nil {
		if c.FullName != "" {
			lines = append(lines, strings.ToUpper(c.FullName))
		}
		var contactLine []string
		for _, v := range []string{c.Email, c.Phone, c.Location} {
			if v != "" {
				contactLine = append(contactLine, v)
			}
		}
		if len(contactLine) > 0 {
			lines = append(lines, strings.Join(contactLine, " | "))
		}
		if c.LinkedIn != "" {
			lines = append(lines, "LinkedIn: "+c.LinkedIn)
		}
		if c.GitHub != "" {
			lines = append(lines, "GitHub: "+c.GitHub)
		}
		lines = append(lines, "")
	}

	if resume.Summary != nil && resume.Summary.Text != "" {
		lines = append(lines, "PROFESSIONAL SUMMARY", resume.Summary.Text, "")
	}

	if len(resume.Experience) > 0 {
		lines = append(lines, "EXPERIENCE")
		for _, exp := range resume.Experience {
			lines = append(lines, exp.Position+" at "+exp.Company)
			end := exp.EndDate
			if end == "" {
				end = "Present"
			}
			lines = append(lines, exp.StartDate+" - "+end)
			for _, bullet := range exp.Bullets {
				lines = append(lines, "• "+bullet)
			}
			lines = append(lines, "")
		}
	}

	if len(resume.Education) > 0 {
		lines = append(lines, "EDUCATION")
		for _, edu := range resume.Education {
			lines = append(lines, edu.Degree+", "+edu.Institution)
			if edu.GraduationYear != "" {
				lines = append(lines, edu.GraduationYear)
			}
			lines = append(lines, "")
		}
	}

	if len(resume.Skills) > 0 {
		lines = append(lines, "SKILLS")
		for _, cat := range resume.Skills {
			lines = append(lines, cat.Category+": "+strings.Join(cat.Skills, ", "))
		}
		lines = append(lines, "")
	}

	if len(resume.Certifications) > 0 {
		lines = append(lines, "CERTIFICATIONS")
		for _, cert := range resume.Certifications {
			lines = append(lines, "• "+cert.Name+" - "+cert.Issuer)
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
