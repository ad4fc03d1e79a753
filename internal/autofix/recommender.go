package autofix

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"resumescan/internal/analysis"
	"resumescan/internal/errors"
	"resumescan/internal/types"
)

const (
	maxReadabilityFixes    = 3
	maxQuantificationFixes = 3
	maxBulletFixes         = 5
)

// fixPriorities orders recommendations, 1 highest.
var fixPriorities = map[types.FixType]int{
	types.FixTypeContact:        1,
	types.FixTypeSummary:        2,
	types.FixTypeLength:         2,
	types.FixTypeQuantification: 3,
	types.FixTypeBullets:        3,
	types.FixTypeReadability:    4,
}

// anyNumberPattern is the loose check used for the quantification fix: a
// role with any number at all in its bullets is left alone.
var anyNumberPattern = regexp.MustCompile(`\d+[%$]?|\$\d+|[0-9,]+\d`)

var strongVerbs = []string{"Led", "Developed", "Implemented", "Optimized", "Achieved", "Designed"}

// Recommender turns scoring findings into concrete fix recommendations.
// It dispatches on each finding's Kind and reads its measurements from the
// same analysis result the score was computed from.
type Recommender struct {
	logger *errors.Logger
}

func NewRecommender(logger *errors.Logger) *Recommender {
	return &Recommender{logger: logger}
}

// Recommend generates fixes for the findings on a score, sorted by
// priority. Findings with no associated fix are skipped.
func (r *Recommender) Recommend(resume *types.Resume, res *analysis.Result, findings []types.Finding) []types.AutoFix {
	var fixes []types.AutoFix
	contactDone := false

	for _, f := range findings {
		switch f.Kind {
		case types.FindingTooLong:
			if fix := lengthFix(res.Structure.WordCount); fix != nil {
				fixes = append(fixes, *fix)
			}
		case types.FindingMissingSummary:
			fixes = append(fixes, summaryFix(resume))
		case types.FindingLongSentences:
			fixes = append(fixes, readabilityFixes(res.LongSentences)...)
		case types.FindingMissingEmail, types.FindingMissingPhone, types.FindingMissingContact:
			if !contactDone {
				if fix := contactFix(resume.Contact); fix != nil {
					fixes = append(fixes, *fix)
				}
				contactDone = true
			}
		case types.FindingNoQuantification, types.FindingLowQuantification:
			fixes = append(fixes, quantificationFixes(resume.Experience)...)
		case types.FindingWeakBullets:
			fixes = append(fixes, bulletFixes(resume.Experience, res.Experience.WeakBullets)...)
		}
	}

	for i := range fixes {
		if p, ok := fixPriorities[fixes[i].Type]; ok {
			fixes[i].Priority = p
		} else {
			fixes[i].Priority = 5
		}
	}
	sort.SliceStable(fixes, func(i, j int) bool {
		return fixes[i].Priority < fixes[j].Priority
	})

	r.logger.Debug("Generated fix recommendations",
		"findings", len(findings),
		"fixes", len(fixes))

	return fixes
}

// lengthFix recommends condensing resumes past the two-page word budget.
func lengthFix(wordCount int) *types.AutoFix {
	if wordCount <= 1000 {
		return nil
	}
	return &types.AutoFix{
		Type:           types.FixTypeLength,
		Action:         types.FixActionModify,
		Section:        "overall",
		Description:    "Resume exceeds 2 pages. Condense experience descriptions.",
		OriginalValue:  fmt.Sprintf("%d words", wordCount),
		SuggestedValue: "~500-800 words (1-2 pages)",
		AutoApplicable: false,
		Metadata: map[string]any{
			"currentWords":    wordCount,
			"targetWords":     750,
			"reductionNeeded": wordCount - 750,
		},
	}
}

// summaryFix drafts a templated professional summary seeded from the most
// recent job title. The template carries bracketed placeholders the user
// should fill in.
func summaryFix(resume *types.Resume) types.AutoFix {
	jobTitle := "Professional"
	if len(resume.Experience) > 0 && resume.Experience[0].JobTitle != "" {
		jobTitle = resume.Experience[0].JobTitle
	}

	suggested := fmt.Sprintf(
		"Experienced %s with proven track record in [key achievement]. "+
			"Skilled in [top 3 skills] with expertise in [domain]. "+
			"Passionate about [value proposition] and driving [business outcome].",
		jobTitle)

	return types.AutoFix{
		Type:           types.FixTypeSummary,
		Action:         types.FixActionAdd,
		Section:        "summary",
		Description:    "Add a professional summary to introduce your qualifications",
		SuggestedValue: suggested,
		AutoApplicable: true,
		Metadata: map[string]any{
			"template":            true,
			"customizationNeeded": true,
			"position":            "top",
		},
	}
}

// readabilityFixes flags the longest offending sentences for manual
// splitting, capped at the top few.
func readabilityFixes(longSentences []string) []types.AutoFix {
	var fixes []types.AutoFix
	for i, sentence := range longSentences {
		if i >= maxReadabilityFixes {
			break
		}
		words := len(strings.Fields(sentence))
		fixes = append(fixes, types.AutoFix{
			Type:           types.FixTypeReadability,
			Action:         types.FixActionModify,
			Section:        "content",
			Description:    fmt.Sprintf("Shorten sentence %d (currently %d words)", i+1, words),
			OriginalValue:  truncate(sentence, 100),
			SuggestedValue: "Break into 2-3 shorter sentences",
			AutoApplicable: false,
			Metadata: map[string]any{
				"wordCount":   words,
				"targetWords": 20,
			},
		})
	}
	return fixes
}

// contactFix lists the missing contact fields with placeholder values.
func contactFix(contact types.ContactInfo) *types.AutoFix {
	var missing []string
	if contact.Email == "" {
		missing = append(missing, "email")
	}
	if contact.Phone == "" {
		missing = append(missing, "phone")
	}
	if contact.Location == "" {
		missing = append(missing, "location")
	}
	if len(missing) == 0 {
		return nil
	}

	return &types.AutoFix{
		Type:          types.FixTypeContact,
		Action:        types.FixActionAdd,
		Section:       "contact",
		Description:   "Add missing contact information: " + strings.Join(missing, ", "),
		OriginalValue: contact,
		SuggestedValue: map[string]string{
			"email":    "your.email@example.com",
			"phone":    "+1-XXX-XXX-XXXX",
			"location": "City, State",
		},
		AutoApplicable: false,
		Metadata: map[string]any{
			"missingFields": missing,
			"priority":      "high",
		},
	}
}

// quantificationFixes targets roles whose bullets carry no numbers at all,
// capped at the top few.
func quantificationFixes(experience []types.ExperienceItem) []types.AutoFix {
	var fixes []types.AutoFix
	for i, exp := range experience {
		if len(fixes) >= maxQuantificationFixes {
			break
		}
		joined := strings.Join(exp.Bullets, " ")
		if anyNumberPattern.MatchString(joined) {
			continue
		}
		position := exp.JobTitle
		if position == "" {
			position = "position"
		}
		company := exp.Company
		if company == "" {
			company = "company"
		}
		fixes = append(fixes, types.AutoFix{
			Type:           types.FixTypeQuantification,
			Action:         types.FixActionModify,
			Section:        fmt.Sprintf("experience[%d]", i),
			Description:    fmt.Sprintf("Add metrics to %s at %s", position, company),
			OriginalValue:  truncate(joined, 100),
			SuggestedValue: "Add specific numbers: % improved, $ saved, # managed, etc.",
			AutoApplicable: false,
			Metadata: map[string]any{
				"company":  exp.Company,
				"position": exp.JobTitle,
				"examples": []string{
					"Increased sales by 25%",
					"Managed team of 8 developers",
					"Reduced costs by $50K annually",
				},
			},
		})
	}
	return fixes
}

// bulletFixes rewrites weak bullet openers toward strong action verbs,
// capped at the top few.
func bulletFixes(experience []types.ExperienceItem, weak []analysis.BulletRef) []types.AutoFix {
	var fixes []types.AutoFix
	for i, ref := range weak {
		if i >= maxBulletFixes {
			break
		}
		var company string
		if ref.RoleIndex < len(experience) {
			company = experience[ref.RoleIndex].Company
		}
		fixes = append(fixes, types.AutoFix{
			Type:           types.FixTypeBullets,
			Action:         types.FixActionModify,
			Section:        fmt.Sprintf("experience[%d].bullets[%d]", ref.RoleIndex, ref.BulletIndex),
			Description:    "Replace weak verb with strong action verb",
			OriginalValue:  ref.Text,
			SuggestedValue: "Start with: " + strings.Join(strongVerbs[:3], ", ") + "...",
			AutoApplicable: false,
			Metadata: map[string]any{
				"weakVerbFound":  ref.WeakPhrase,
				"suggestedVerbs": strongVerbs,
				"company":        company,
			},
		})
	}
	return fixes
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
