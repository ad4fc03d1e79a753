package parser

import (
	"regexp"
	"strings"

	"resumescan/internal/types"
)

// Extractors in this file never return errors: a field that cannot be
// recognized is simply left at its zero value so a partially readable
// resume still produces a usable parse.

// extractContact pulls email, phone, links and location out of the raw text.
func extractContact(text string) types.ContactInfo {
	contact := types.ContactInfo{
		Email:    emailPattern.FindString(text),
		LinkedIn: linkedinPattern.FindString(text),
		GitHub:   githubPattern.FindString(text),
	}

	// A match below nine digits is more likely a date or a zip code than a
	// phone number.
	for _, candidate := range phonePattern.FindAllString(text, -1) {
		if digitCount(candidate) >= 9 {
			contact.Phone = strings.TrimSpace(candidate)
			break
		}
	}

	for _, site := range websitePattern.FindAllString(text, -1) {
		lower := strings.ToLower(site)
		if strings.Contains(lower, "linkedin.com") || strings.Contains(lower, "github.com") {
			continue
		}
		contact.Website = site
		break
	}

	contact.Location = extractLocation(text)
	return contact
}

// extractLocation looks for "City, ST" and "City, State" forms in the top
// of the document, falling back to a bare "Remote" marker.
func extractLocation(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	head := strings.Join(lines, "\n")

	for _, m := range locationPattern.FindAllStringSubmatch(head, -1) {
		city := strings.TrimSpace(m[1])
		region := strings.TrimSpace(m[2])
		if len(region) == 2 {
			if usStates[region] {
				return city + ", " + region
			}
			continue
		}
		return city + ", " + region
	}

	if remotePattern.MatchString(head) {
		return "Remote"
	}
	return ""
}

var contactIndicators = []string{"@", "http", "linkedin", "github", "www.", "phone", "tel:"}

// extractName scans the first lines for a plausible candidate name: two to
// four capitalized words, mostly alphabetic, not a contact line.
func extractName(lines []string) string {
	limit := len(lines)
	if limit > 10 {
		limit = 10
	}

	for _, line := range lines[:limit] {
		candidate := strings.TrimSpace(line)
		if candidate == "" {
			continue
		}
		lower := strings.ToLower(candidate)
		if containsAny(lower, contactIndicators) || digitCount(candidate) > 0 {
			continue
		}

		words := strings.Fields(candidate)
		words = stripNameDecorations(words)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		if !allCapitalized(words) || alphaRatio(candidate) < 0.8 {
			continue
		}
		return strings.Join(words, " ")
	}
	return ""
}

func stripNameDecorations(words []string) []string {
	clean := func(w string) string {
		return strings.ToLower(strings.Trim(w, ".,"))
	}
	for len(words) > 0 && titlePrefixes[clean(words[0])] {
		words = words[1:]
	}
	for len(words) > 0 && nameSuffixes[clean(words[len(words)-1])] {
		words = words[:len(words)-1]
	}
	return words
}

func allCapitalized(words []string) bool {
	for _, w := range words {
		r := rune(w[0])
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func alphaRatio(s string) float64 {
	if s == "" {
		return 0
	}
	alpha := 0
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == ' ' {
			alpha++
		}
	}
	return float64(alpha) / float64(len([]rune(s)))
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

var entryBoundaryPattern = regexp.MustCompile(`(?i)^(\d{4}|jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\b`)

// extractExperience segments the experience section into entries. A new
// entry starts at a line carrying a date range, or at a line that leads
// with a year or month name.
func extractExperience(lines []string) []types.ExperienceItem {
	var items []types.ExperienceItem
	var current *types.ExperienceItem

	flush := func() {
		if current != nil && (current.JobTitle != "" || current.Company != "" || len(current.Bullets) > 0) {
			items = append(items, *current)
		}
		current = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		start, end, cur, hasRange := parseDateRange(trimmed)
		boundary := hasRange || entryBoundaryPattern.MatchString(trimmed)

		if boundary && (current == nil || current.StartDate != "" || len(current.Bullets) > 0) {
			flush()
			current = &types.ExperienceItem{}
		}
		if current == nil {
			current = &types.ExperienceItem{}
		}
		if hasRange && current.StartDate == "" {
			current.StartDate = start
			current.EndDate = end
			current.IsCurrent = cur
		}

		if bulletLinePattern.MatchString(line) {
			bullet := strings.TrimSpace(bulletLinePattern.ReplaceAllString(line, ""))
			if bullet != "" {
				current.Bullets = append(current.Bullets, bullet)
			}
			continue
		}

		headline := trimmed
		if hasRange {
			headline = strings.TrimSpace(dateRangePattern.ReplaceAllString(trimmed, ""))
			headline = strings.Trim(headline, " -–—|,")
		}
		if headline == "" {
			continue
		}
		switch {
		case current.JobTitle == "":
			title, company := splitTitleCompany(headline)
			current.JobTitle = title
			if company != "" {
				current.Company = company
			}
		case current.Company == "":
			current.Company = headline
		default:
			current.Bullets = append(current.Bullets, headline)
		}
	}
	flush()
	return items
}

// splitTitleCompany handles the common "Title at Company" and
// "Title - Company" headline shapes.
func splitTitleCompany(headline string) (title, company string) {
	for _, sep := range []string{" at ", " @ ", " - ", " – ", " | "} {
		if idx := strings.Index(headline, sep); idx > 0 {
			return strings.TrimSpace(headline[:idx]), strings.TrimSpace(headline[idx+len(sep):])
		}
	}
	return headline, ""
}

// extractEducation builds one entry per institution-looking line, folding
// degree, year and GPA details from the same line or its successors.
func extractEducation(lines []string) []types.EducationItem {
	var items []types.EducationItem
	var current *types.EducationItem

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		hasDegree := degreePattern.MatchString(trimmed)
		if current == nil {
			current = &types.EducationItem{}
		} else if hasDegree && current.Degree != "" {
			items = append(items, *current)
			current = &types.EducationItem{}
		}
		if hasDegree && current.Degree == "" {
			current.Degree = strings.TrimSpace(yearPattern.ReplaceAllString(gpaPattern.ReplaceAllString(trimmed, ""), ""))
			current.Degree = strings.Trim(current.Degree, " -–—|,")
		} else if current.Institution == "" && !gpaPattern.MatchString(trimmed) {
			inst := strings.Trim(strings.TrimSpace(yearPattern.ReplaceAllString(trimmed, "")), " -–—|,")
			if inst != "" {
				current.Institution = inst
			}
		}

		if years := yearPattern.FindAllString(trimmed, -1); len(years) > 0 && current.GraduationYear == "" {
			current.GraduationYear = years[len(years)-1]
		}
		if m := gpaPattern.FindStringSubmatch(trimmed); m != nil && current.GPA == "" {
			current.GPA = m[1]
		}
	}
	if current != nil {
		items = append(items, *current)
	}
	return items
}

var skillSplitPattern = regexp.MustCompile(`[,;|\n•·]`)

// extractSkills splits the skills section on common delimiters, dropping
// one-character fragments and case-insensitive duplicates.
func extractSkills(lines []string) []types.SkillItem {
	seen := make(map[string]bool)
	var items []types.SkillItem

	for _, raw := range skillSplitPattern.Split(strings.Join(lines, "\n"), -1) {
		name := strings.TrimSpace(raw)
		// "Languages: Python" style lines carry the label before a colon.
		if idx := strings.LastIndex(name, ":"); idx >= 0 {
			name = strings.TrimSpace(name[idx+1:])
		}
		if len(name) < 2 {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, types.SkillItem{
			Name:           name,
			Category:       categorizeSkill(name),
			NormalizedName: key,
		})
	}
	return items
}

var certSplitPattern = regexp.MustCompile(`[\n•]`)

// extractCertifications keeps one entry per line or bullet, reading an
// issuer out of a trailing "Cert - Issuer" dash when present.
func extractCertifications(lines []string) []types.CertificationItem {
	var items []types.CertificationItem
	for _, raw := range certSplitPattern.Split(strings.Join(lines, "\n"), -1) {
		entry := strings.TrimSpace(raw)
		if len(entry) < 5 {
			continue
		}
		item := types.CertificationItem{Name: entry}
		for _, sep := range []string{" - ", " – ", " — "} {
			if idx := strings.Index(entry, sep); idx > 0 {
				item.Name = strings.TrimSpace(entry[:idx])
				item.Issuer = strings.TrimSpace(entry[idx+len(sep):])
				break
			}
		}
		if year := yearPattern.FindString(entry); year != "" {
			item.Date = year
		}
		items = append(items, item)
	}
	return items
}

// extractProjects treats each non-bullet line as a project headline and
// folds bullets beneath it into the description.
func extractProjects(lines []string) []types.ProjectItem {
	var items []types.ProjectItem
	var current *types.ProjectItem

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if bulletLinePattern.MatchString(line) && current != nil {
			detail := strings.TrimSpace(bulletLinePattern.ReplaceAllString(line, ""))
			if current.Description == "" {
				current.Description = detail
			} else {
				current.Description += " " + detail
			}
			continue
		}
		if current != nil {
			items = append(items, *current)
		}
		name := trimmed
		var desc string
		for _, sep := range []string{" - ", " – ", ": "} {
			if idx := strings.Index(trimmed, sep); idx > 0 {
				name = strings.TrimSpace(trimmed[:idx])
				desc = strings.TrimSpace(trimmed[idx+len(sep):])
				break
			}
		}
		current = &types.ProjectItem{Name: name, Description: desc}
	}
	if current != nil {
		items = append(items, *current)
	}
	return items
}
