package parser

import (
	"regexp"
	"strings"
)

// Extraction patterns. These mirror the matching rules the scoring rubric
// was calibrated against, so changes here shift scores downstream.
var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{2,4}\)?[-.\s]?\d{3,4}[-.\s]?\d{3,4}`)
	linkedinPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[\w-]+`)
	githubPattern   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[\w-]+`)
	websitePattern  = regexp.MustCompile(`(?i)https?://[\w.-]+\.[a-z]{2,}(?:/\S*)?`)

	dateRangePattern = regexp.MustCompile(`(?i)(\w+\s+\d{4}|\d{4})\s*[-–—to]+\s*(\w+\s+\d{4}|\d{4}|Present|Current)`)
	yearPattern      = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	gpaPattern       = regexp.MustCompile(`(?i)GPA[:\s]*(\d+\.\d+)`)
	degreePattern    = regexp.MustCompile(`(?i)\b(bachelor|master|doctor|ph\.?d|b\.?sc?|m\.?sc?|b\.?a|m\.?a|m\.?b\.?a|b\.?eng|m\.?eng|diploma|associate)\b`)

	locationPattern = regexp.MustCompile(`\b([A-Z][a-zA-Z.\s]+),\s*([A-Z]{2}|[A-Z][a-z]+)\b`)
	remotePattern   = regexp.MustCompile(`(?i)\bremote\b`)

	bulletLinePattern = regexp.MustCompile(`^\s*[•\-*▪]\s*`)
	digitPattern      = regexp.MustCompile(`\d`)
)

// monthNumbers maps month-name prefixes to zero-padded month numbers for
// "Jan 2020" -> "2020-01" style normalization.
var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// titlePrefixes and nameSuffixes are stripped from candidate name tokens.
var (
	titlePrefixes = map[string]bool{
		"mr": true, "mrs": true, "ms": true, "miss": true,
		"dr": true, "prof": true, "professor": true,
	}
	nameSuffixes = map[string]bool{
		"jr": true, "sr": true, "ii": true, "iii": true,
		"iv": true, "phd": true, "md": true, "esq": true,
	}
)

// usStates holds the two-letter postal abbreviations accepted in
// "City, ST" locations.
var usStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true, "DC": true,
}

// normalizeDate converts a raw date token into "YYYY-MM", "YYYY" or
// "Present". Unrecognized tokens pass through trimmed.
func normalizeDate(raw string) (value string, current bool) {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	if lower == "present" || lower == "current" {
		return "Present", true
	}

	fields := strings.Fields(raw)
	switch len(fields) {
	case 1:
		return fields[0], false
	case 2:
		prefix := strings.ToLower(fields[0])
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		if month, ok := monthNumbers[prefix]; ok {
			return fields[1] + "-" + month, false
		}
	}
	return raw, false
}

// parseDateRange extracts a (start, end, isCurrent) triple from a line, or
// ok=false when the line carries no date range.
func parseDateRange(line string) (start, end string, current, ok bool) {
	m := dateRangePattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false, false
	}
	start, _ = normalizeDate(m[1])
	end, current = normalizeDate(m[2])
	return start, end, current, true
}

// digitCount reports how many decimal digits appear in s.
func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
