package analysis

import (
	"regexp"
	"strings"

	"resumescan/internal/errors"
	"resumescan/internal/types"
)

// longSentenceThreshold is the word count past which a sentence is flagged
// for the readability fix.
const longSentenceThreshold = 25

// quantificationPatterns match achievements that carry a measurable result.
var quantificationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+%`),
	regexp.MustCompile(`(?i)\$\d+`),
	regexp.MustCompile(`(?i)R\s?\d+`),
	regexp.MustCompile(`(?i)£\d+`),
	regexp.MustCompile(`(?i)€\d+`),
	regexp.MustCompile(`(?i)\d+[KMB]\b`),
	regexp.MustCompile(`(?i)\d+\s*(million|billion|thousand)`),
	regexp.MustCompile(`(?i)\d+\+`),
	regexp.MustCompile(`(?i)\d{1,3}(,\d{3})+`),
	regexp.MustCompile(`(?i)\b\d+x\b`),
}

// actionVerbs are the strong openers counted toward the experience score.
var actionVerbs = map[string]bool{
	"led": true, "managed": true, "developed": true, "built": true,
	"created": true, "designed": true, "implemented": true, "launched": true,
	"delivered": true, "improved": true, "increased": true, "reduced": true,
	"achieved": true, "optimized": true, "streamlined": true, "drove": true,
	"established": true, "spearheaded": true, "architected": true,
	"automated": true, "migrated": true, "scaled": true, "mentored": true,
	"negotiated": true, "directed": true, "coordinated": true,
}

// weakPhrases are bullet openers the fix recommender rewrites.
var weakPhrases = []string{
	"responsible for", "worked on", "helped with", "did", "made",
}

// RoleRef points at an experience entry by position.
type RoleRef struct {
	Index    int
	JobTitle string
}

// BulletRef points at a bullet inside an experience entry.
type BulletRef struct {
	RoleIndex   int
	BulletIndex int
	Text        string
	WeakPhrase  string
}

// ExperienceStats summarizes the experience section in the terms both the
// scoring engine and the fix recommender consume.
type ExperienceStats struct {
	RoleCount          int
	TotalBullets       int
	QuantifiedBullets  int
	QuantificationRate float64 // percent of bullets with a quantified result
	AvgBulletsPerRole  float64
	ActionVerbCount    int
	Unquantified       []RoleRef
	WeakBullets        []BulletRef
}

// Result is the single analysis product shared by scoring and auto-fix.
// Both read the same measurements, so a score and its recommended fixes
// can never disagree about what the document contains.
type Result struct {
	Readability   types.ReadabilityMetrics
	Structure     types.StructureFlags
	Experience    ExperienceStats
	SentenceCount int
	LongSentences []string // sentences over the word threshold, document order
}

// Analyzer computes document measurements from a parsed resume.
type Analyzer struct {
	logger *errors.Logger
}

func NewAnalyzer(logger *errors.Logger) *Analyzer {
	return &Analyzer{logger: logger}
}

// Analyze measures the document once for all downstream consumers.
func (a *Analyzer) Analyze(doc *types.RawDocument, resume *types.Resume) *Result {
	sentences := splitSentences(doc.FullText)

	result := &Result{
		Readability:   computeReadability(doc.FullText),
		Structure:     detectStructure(doc),
		Experience:    analyzeExperience(resume.Experience),
		SentenceCount: len(sentences),
	}
	for _, s := range sentences {
		if len(strings.Fields(s)) > longSentenceThreshold {
			result.LongSentences = append(result.LongSentences, s)
		}
	}

	a.logger.Debug("Analyzed document",
		"word_count", result.Structure.WordCount,
		"readability_score", result.Readability.ReadabilityScore,
		"roles", result.Experience.RoleCount,
		"quantification_rate", result.Experience.QuantificationRate)

	return result
}

// IsQuantified reports whether the text carries a measurable result.
func IsQuantified(text string) bool {
	for _, p := range quantificationPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// weakOpener returns the weak phrase a bullet opens with, if any.
func weakOpener(bullet string) string {
	lower := strings.ToLower(strings.TrimSpace(bullet))
	for _, phrase := range weakPhrases {
		if lower == phrase || strings.HasPrefix(lower, phrase+" ") {
			return phrase
		}
	}
	return ""
}

func analyzeExperience(entries []types.ExperienceItem) ExperienceStats {
	stats := ExperienceStats{RoleCount: len(entries)}

	for i, entry := range entries {
		stats.TotalBullets += len(entry.Bullets)
		roleQuantified := false

		for j, bullet := range entry.Bullets {
			if IsQuantified(bullet) {
				stats.QuantifiedBullets++
				roleQuantified = true
			}
			fields := strings.Fields(strings.ToLower(bullet))
			if len(fields) > 0 && actionVerbs[strings.Trim(fields[0], ".,;:")] {
				stats.ActionVerbCount++
			}
			if phrase := weakOpener(bullet); phrase != "" {
				stats.WeakBullets = append(stats.WeakBullets, BulletRef{
					RoleIndex:   i,
					BulletIndex: j,
					Text:        bullet,
					WeakPhrase:  phrase,
				})
			}
		}

		if !roleQuantified && len(entry.Bullets) > 0 {
			stats.Unquantified = append(stats.Unquantified, RoleRef{Index: i, JobTitle: entry.JobTitle})
		}
	}

	if stats.RoleCount > 0 {
		stats.AvgBulletsPerRole = float64(stats.TotalBullets) / float64(stats.RoleCount)
	}
	if stats.TotalBullets > 0 {
		stats.QuantificationRate = float64(stats.QuantifiedBullets) / float64(stats.TotalBullets) * 100
	}
	return stats
}
