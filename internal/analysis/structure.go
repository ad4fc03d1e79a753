package analysis

import (
	"math"
	"regexp"
	"strings"

	"resumescan/internal/types"
)

// wordsPerPage is the density used to estimate page count when the source
// format does not carry one.
const wordsPerPage = 450

var (
	tablePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\|\s*\w+\s*\|`),
		regexp.MustCompile(`\t{2,}`),
		regexp.MustCompile(`_{5,}`),
	}
	imagePattern        = regexp.MustCompile(`(?i)\[image\]|\[photo\]|\[picture\]|\.jpg|\.png|\.gif`)
	columnPattern       = regexp.MustCompile(`\S {5,}\S`)
	headerFooterPattern = regexp.MustCompile(`(?i)\bpage\s+\d+\s+of\s+\d+\b`)
)

// detectStructure flags layout features that trip up applicant tracking
// systems. Column detection relies on interior space runs, which the text
// cleaner deliberately preserves.
func detectStructure(doc *types.RawDocument) types.StructureFlags {
	text := doc.FullText
	wordCount := len(strings.Fields(text))

	// EstimatedPages always comes from word density. The extractor's page
	// count is carried separately: PDF page counts include whitespace-heavy
	// layouts that say nothing about content length.
	flags := types.StructureFlags{
		WordCount:      wordCount,
		PageCount:      doc.PageCount,
		EstimatedPages: math.Max(1, math.Round(float64(wordCount)/wordsPerPage)),
	}

	// Too little text to analyze: the extractor almost certainly hit a
	// scanned, image-only document.
	if wordCount < 20 {
		flags.IsImageOnlyPDF = true
		return flags
	}

	flags.HasImages = imagePattern.MatchString(text)
	flags.HasHeadersFooters = headerFooterPattern.MatchString(text)

	for _, p := range tablePatterns {
		if p.MatchString(text) {
			flags.HasTables = true
			break
		}
	}

	for line := range strings.Lines(text) {
		if columnPattern.MatchString(strings.TrimRight(line, "\n")) {
			flags.HasColumns = true
			break
		}
	}
	return flags
}
