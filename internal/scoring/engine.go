package scoring

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"resumescan/internal/analysis"
	"resumescan/internal/errors"
	"resumescan/internal/types"
)

// Options selects the scoring tier and optional context inputs.
type Options struct {
	Mode           types.ScanMode
	JobDescription string
	Industry       string
}

// Engine scores a parsed resume against a pre-computed analysis result.
// Scoring never re-measures the document: every quantity it reads comes
// from the analysis, so the fixes recommended downstream are derived from
// exactly the numbers the score was.
type Engine struct {
	logger *errors.Logger
}

func NewEngine(logger *errors.Logger) *Engine {
	return &Engine{logger: logger}
}

type componentWeights struct {
	ats, experience, skills, readability, layout float64
}

var (
	basicWeights = componentWeights{ats: 0.50, layout: 0.30, readability: 0.20}
	fullWeights  = componentWeights{ats: 0.25, experience: 0.25, skills: 0.20, readability: 0.15, layout: 0.15}
)

// Score produces the tiered resume score. BASIC mode leaves the
// experience, skills and job-match components nil.
func (e *Engine) Score(resume *types.Resume, res *analysis.Result, opts Options) *types.ResumeScore {
	mode := opts.Mode
	if !mode.Valid() {
		mode = types.ScanModeBasic
	}

	ats := atsComplianceScore(resume, res.Structure)
	readability := res.Readability.ReadabilityScore
	layout, lengthMetrics := layoutScore(res.Structure)

	score := &types.ResumeScore{
		ATSCompliance: round1(ats),
		Readability:   round1(readability),
		Layout:        round1(layout),
		Mode:          mode,
		Industry:      opts.Industry,
	}

	var expStats *types.ExperienceMetrics
	var skillStats *types.SkillsMetrics

	if mode == types.ScanModeBasic {
		score.Overall = round1(ats*basicWeights.ats + layout*basicWeights.layout + readability*basicWeights.readability)
	} else {
		experience := experienceScore(resume, res.Experience, opts.Industry)
		skills, skillsMetrics := skillsScore(resume, opts.Industry)
		skillStats = skillsMetrics

		overall := ats*fullWeights.ats +
			experience*fullWeights.experience +
			skills*fullWeights.skills +
			readability*fullWeights.readability +
			layout*fullWeights.layout

		if mode == types.ScanModeExpert {
			overall = clamp(overall+expertAdjustment(resume, res, opts.Industry), 0, 100)
		}

		score.Overall = round1(overall)
		score.Experience = ptr(round1(experience))
		score.Skills = ptr(round1(skills))
		expStats = &types.ExperienceMetrics{
			RoleCount:          res.Experience.RoleCount,
			AvgBulletsPerRole:  round1(res.Experience.AvgBulletsPerRole),
			QuantificationRate: round1(res.Experience.QuantificationRate),
			ActionVerbCount:    res.Experience.ActionVerbCount,
		}
	}

	if opts.JobDescription != "" {
		score.JobMatch = ptr(round1(jobMatchScore(resume, opts.JobDescription)))
	}

	score.Findings = extractFindings(resume, res, mode)
	score.Flags = flagMessages(score.Findings)
	score.Comments = generateComments(resume, res, score, opts.Industry)

	score.DetailedMetrics = &types.DetailedMetrics{
		Readability: &res.Readability,
		Structure:   &res.Structure,
		Experience:  expStats,
		Skills:      skillStats,
		Length:      lengthMetrics,
	}

	e.logger.Debug("Scored resume",
		"mode", string(mode),
		"overall", score.Overall,
		"ats_compliance", score.ATSCompliance,
		"findings", len(score.Findings))

	return score
}

// atsComplianceScore starts from 100 and subtracts fixed penalties per
// missing field or risky layout feature. An image-only document skips the
// walk entirely: nothing was parsed, so nothing else can be judged.
func atsComplianceScore(resume *types.Resume, flags types.StructureFlags) float64 {
	if flags.IsImageOnlyPDF {
		return 10
	}

	score := 100.0
	if resume.Contact.Email == "" {
		score -= 15
	}
	if resume.Contact.Phone == "" {
		score -= 10
	}
	if flags.HasTables {
		score -= 15
	}
	if flags.HasImages {
		score -= 10
	}
	if flags.HasColumns {
		score -= 8
	}
	if resume.Summary == "" {
		score -= 5
	}
	if len(resume.Experience) == 0 {
		score -= 20
	}
	if len(resume.Education) == 0 {
		score -= 10
	}
	if len(resume.Skills) == 0 {
		score -= 10
	}
	if flags.EstimatedPages > 3 {
		score -= 10
	}
	return clamp(score, 0, 100)
}

// layoutScore rates document length against the 400-1500 word sweet spot,
// with graduated penalties outside the hard 150-2000 bounds.
func layoutScore(flags types.StructureFlags) (float64, *types.LengthMetrics) {
	wc := flags.WordCount
	score := 100.0

	switch {
	case wc < 150:
		score -= float64(150-wc) * 0.4
	case wc > 2000:
		score -= float64(wc-2000) * 0.03
	case wc >= 400 && wc <= 1500:
		score = 100
	case wc >= 200 && wc < 400:
		score = 80
	case wc > 1500:
		score = 85
	}

	if flags.HasColumns {
		score -= 5
	}
	if flags.HasHeadersFooters {
		score -= 3
	}

	return clamp(score, 0, 100), &types.LengthMetrics{
		WordCount:      wc,
		EstimatedPages: round1(float64(wc) / 450),
	}
}

// experienceScore rates role count, bullet density and quantification,
// with an industry verb bonus when a known industry is given.
func experienceScore(resume *types.Resume, stats analysis.ExperienceStats, industry string) float64 {
	if stats.RoleCount == 0 {
		return 0
	}

	score := 0.0
	switch {
	case stats.RoleCount >= 3:
		score += 30
	case stats.RoleCount == 2:
		score += 20
	default:
		score += 10
	}

	switch avg := stats.AvgBulletsPerRole; {
	case avg >= 3 && avg <= 5:
		score += 30
	case avg > 5:
		score += 25
	case avg >= 2:
		score += 15
	case avg >= 1:
		score += 5
	}

	switch rate := stats.QuantificationRate; {
	case rate >= 40:
		score += 40
	case rate >= 25:
		score += 30
	case rate >= 15:
		score += 20
	case rate > 0:
		score += 10
	}

	if profile, ok := IndustryProfileFor(industry); ok {
		matches := 0
		for _, exp := range resume.Experience {
			for _, bullet := range exp.Bullets {
				lower := strings.ToLower(bullet)
				for _, verb := range profile.ActionVerbs {
					if strings.Contains(lower, verb) {
						matches++
						break // one hit per bullet
					}
				}
			}
		}
		switch {
		case matches >= 5:
			score += 10
		case matches >= 3:
			score += 5
		case matches > 0:
			score += 2
		}
	}

	return math.Min(100, score)
}

// skillsScore rates skill count, taxonomy coverage and category spread,
// with an industry keyword bonus when a known industry is given.
func skillsScore(resume *types.Resume, industry string) (float64, *types.SkillsMetrics) {
	total := len(resume.Skills)
	if total == 0 {
		return 0, &types.SkillsMetrics{}
	}

	categorized := 0
	categories := make(map[string]bool)
	for _, s := range resume.Skills {
		if s.Category != "" {
			categorized++
			categories[s.Category] = true
		}
	}

	score := 0.0
	switch {
	case total >= 15:
		score += 40
	case total >= 10:
		score += 30
	case total >= 5:
		score += 20
	default:
		score += 10
	}

	catRate := float64(categorized) / float64(total) * 100
	switch {
	case catRate >= 70:
		score += 30
	case catRate >= 50:
		score += 20
	case catRate >= 30:
		score += 10
	}

	switch {
	case len(categories) >= 5:
		score += 30
	case len(categories) >= 3:
		score += 20
	case len(categories) >= 2:
		score += 10
	}

	matchRate := 0.0
	if profile, ok := IndustryProfileFor(industry); ok && len(profile.TechnicalSkills) > 0 {
		var names []string
		for _, s := range resume.Skills {
			names = append(names, strings.ToLower(s.Name))
		}
		haystack := strings.Join(names, " ") + " " + strings.ToLower(resume.RawText)

		matched := 0
		for _, kw := range profile.TechnicalSkills {
			if strings.Contains(haystack, kw) {
				matched++
			}
		}
		matchRate = float64(matched) / float64(len(profile.TechnicalSkills)) * 100
		switch {
		case matchRate >= 40:
			score += 15
		case matchRate >= 25:
			score += 10
		case matchRate >= 15:
			score += 5
		}
	}

	return math.Min(100, score), &types.SkillsMetrics{
		SkillCount:        total,
		CategorizedRate:   round1(catRate),
		CategoryCount:     len(categories),
		IndustryMatchRate: round1(matchRate),
	}
}

var impactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+%\s*(increase|decrease|improvement|growth|reduction)`),
	regexp.MustCompile(`(?i)(increased|decreased|improved|grew|reduced).*\d+%`),
	regexp.MustCompile(`(?i)\$[\d,]+\s*(revenue|savings|budget)`),
	regexp.MustCompile(`(?i)\d+[KMB]\s*(users|customers|transactions)`),
}

var biasPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(date\s+of\s+birth|dob|born\s+on)\b`),
	regexp.MustCompile(`\b(age|gender|male|female|married|single)\b`),
	regexp.MustCompile(`\b(nationality|religion|race)\b`),
}

// expertAdjustment layers recruiter-style bonuses and penalties on top of
// the weighted score. The adjustment is additive; the caller clamps the
// final result.
func expertAdjustment(resume *types.Resume, res *analysis.Result, industry string) float64 {
	adjustment := 0.0

	hasImpact := false
	for _, exp := range resume.Experience {
		for _, bullet := range exp.Bullets {
			for _, p := range impactPatterns {
				if p.MatchString(bullet) {
					hasImpact = true
					break
				}
			}
		}
	}
	if hasImpact {
		adjustment += 5
	}

	if len(resume.Certifications) > 0 {
		adjustment += 3
		if profile, ok := IndustryProfileFor(industry); ok {
			var names []string
			for _, c := range resume.Certifications {
				names = append(names, strings.ToLower(c.Name))
			}
			certText := strings.Join(names, " ")
			for _, cert := range profile.Certifications {
				if strings.Contains(certText, cert) {
					adjustment += 4
					break
				}
			}
		}
	}

	if resume.Summary != "" {
		adjustment += 2
	}

	lower := strings.ToLower(resume.RawText)
	for _, p := range biasPatterns {
		if p.MatchString(lower) {
			adjustment -= 5
			break
		}
	}

	if res.Experience.QuantifiedBullets == 0 && len(resume.Experience) > 0 {
		adjustment -= 5
	}

	return adjustment
}

var wordTokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// jobMatchScore measures keyword overlap between the resume and a job
// description. Plain lexical matching; an empty description scores a
// neutral 50.
func jobMatchScore(resume *types.Resume, jobDescription string) float64 {
	jobWords := make(map[string]bool)
	for _, w := range wordTokenPattern.FindAllString(strings.ToLower(jobDescription), -1) {
		if len(w) > 2 {
			jobWords[w] = true
		}
	}
	if len(jobWords) == 0 {
		return 50
	}

	resumeWords := make(map[string]bool)
	for _, w := range wordTokenPattern.FindAllString(strings.ToLower(resume.RawText), -1) {
		resumeWords[w] = true
	}
	for _, s := range resume.Skills {
		resumeWords[strings.ToLower(s.Name)] = true
		if s.NormalizedName != "" {
			resumeWords[s.NormalizedName] = true
		}
	}

	common := 0
	for w := range jobWords {
		if resumeWords[w] {
			common++
		}
	}
	rate := float64(common) / float64(len(jobWords)) * 100
	return math.Min(100, rate*1.5)
}

// extractFindings materializes every detected issue as a typed record.
// The fix recommender dispatches on Kind, so each finding names its
// section and carries the measured value where one exists.
func extractFindings(resume *types.Resume, res *analysis.Result, mode types.ScanMode) []types.Finding {
	var findings []types.Finding
	add := func(f types.Finding) { findings = append(findings, f) }

	st := res.Structure

	if st.IsImageOnlyPDF {
		add(types.Finding{Kind: types.FindingImageOnlyPDF, Section: "document"})
	}
	if resume.Contact.Email == "" {
		add(types.Finding{Kind: types.FindingMissingEmail, Section: "contact"})
	}
	if resume.Contact.Phone == "" {
		add(types.Finding{Kind: types.FindingMissingPhone, Section: "contact"})
	}
	if resume.Contact.Location == "" {
		add(types.Finding{Kind: types.FindingMissingContact, Section: "contact", Detail: "location"})
	}
	if st.HasTables {
		add(types.Finding{Kind: types.FindingTablesDetected, Section: "document"})
	}
	if st.HasImages {
		add(types.Finding{Kind: types.FindingImagesDetected, Section: "document"})
	}
	if st.HasColumns {
		add(types.Finding{Kind: types.FindingColumnsDetected, Section: "document"})
	}
	if st.EstimatedPages > 2 {
		add(types.Finding{Kind: types.FindingTooLong, Section: "document", Value: float64(st.WordCount)})
	}
	if st.WordCount > 0 && st.WordCount < 150 {
		add(types.Finding{Kind: types.FindingTooShort, Section: "document", Value: float64(st.WordCount)})
	}
	if len(resume.Experience) == 0 {
		add(types.Finding{Kind: types.FindingMissingExperience, Section: "experience"})
	}
	if len(resume.Education) == 0 {
		add(types.Finding{Kind: types.FindingMissingEducation, Section: "education"})
	}
	if len(resume.Skills) == 0 {
		add(types.Finding{Kind: types.FindingMissingSkills, Section: "skills"})
	}
	if len(res.LongSentences) > 0 {
		add(types.Finding{Kind: types.FindingLongSentences, Section: "document", Value: float64(len(res.LongSentences))})
	}

	if mode == types.ScanModeATS || mode == types.ScanModeExpert {
		exp := res.Experience
		if exp.TotalBullets > 0 && exp.QuantifiedBullets == 0 {
			add(types.Finding{Kind: types.FindingNoQuantification, Section: "experience"})
		} else if exp.QuantificationRate > 0 && exp.QuantificationRate < 25 {
			add(types.Finding{Kind: types.FindingLowQuantification, Section: "experience", Value: round1(exp.QuantificationRate)})
		}
		if len(exp.WeakBullets) > 0 {
			add(types.Finding{Kind: types.FindingWeakBullets, Section: "experience", Value: float64(len(exp.WeakBullets))})
		}
		if resume.Summary == "" {
			add(types.Finding{Kind: types.FindingMissingSummary, Section: "summary"})
		}
		if n := len(resume.Skills); n < 5 {
			add(types.Finding{Kind: types.FindingFewSkills, Section: "skills", Value: float64(n)})
		}
	}

	if mode == types.ScanModeExpert {
		lower := strings.ToLower(resume.RawText)
		for _, p := range biasPatterns {
			if p.MatchString(lower) {
				add(types.Finding{Kind: types.FindingBiasIndicators, Section: "document"})
				break
			}
		}
	}

	return findings
}

// flagMessages renders findings into the human-readable warning strings
// carried on the score.
func flagMessages(findings []types.Finding) []string {
	var flags []string
	for _, f := range findings {
		switch f.Kind {
		case types.FindingImageOnlyPDF:
			flags = append(flags, "ATS cannot parse images - use text-based PDF")
		case types.FindingMissingEmail:
			flags = append(flags, "Missing contact email")
		case types.FindingMissingPhone:
			flags = append(flags, "Missing phone number")
		case types.FindingTablesDetected:
			flags = append(flags, "Tables may not parse correctly in ATS")
		case types.FindingImagesDetected:
			flags = append(flags, "Images/photos may increase bias risk")
		case types.FindingTooLong:
			flags = append(flags, "Resume is longer than recommended (2 pages max)")
		case types.FindingNoQuantification:
			flags = append(flags, "No achievements quantified - add metrics and numbers")
		case types.FindingMissingSummary:
			flags = append(flags, "Missing professional summary")
		case types.FindingFewSkills:
			flags = append(flags, "Limited skills listed - consider adding more")
		case types.FindingBiasIndicators:
			flags = append(flags, "Personal info increases bias risk")
		}
	}
	return flags
}

// maxComments is the cap on improvement suggestions per score.
const maxComments = 6

// generateComments emits actionable suggestions, most important first,
// capped at maxComments.
func generateComments(resume *types.Resume, res *analysis.Result, score *types.ResumeScore, industry string) []string {
	var comments []string

	if score.ATSCompliance < 70 {
		if resume.Contact.Email == "" {
			comments = append(comments, "Add a professional email address for recruiter contact")
		}
		if len(resume.Experience) == 0 {
			comments = append(comments, "Include work experience to strengthen your resume")
		}
		if len(resume.Skills) == 0 {
			comments = append(comments, "Add a skills section with relevant keywords")
		}
	}

	if score.Readability < 70 {
		comments = append(comments, "Improve readability by shortening long sentences")
		comments = append(comments, "Use simpler language where possible")
	}

	if score.Layout < 70 {
		switch wc := res.Structure.WordCount; {
		case wc < 300:
			comments = append(comments, "Resume is too short - add more detail to experience")
		case wc > 1500:
			comments = append(comments, "Consider condensing resume to 1-2 pages")
		}
	}

	if profile, ok := IndustryProfileFor(industry); ok {
		label := strings.ReplaceAll(industry, "-", "/")
		lower := strings.ToLower(resume.RawText)

		matched := 0
		for _, kw := range profile.TechnicalSkills {
			if strings.Contains(lower, kw) {
				matched++
			}
		}
		if matched < 3 {
			comments = append(comments, fmt.Sprintf("Add more %s-specific technical skills to match industry standards", label))
		}
		if len(resume.Certifications) == 0 {
			comments = append(comments, fmt.Sprintf("Consider adding %s-relevant certifications to boost credibility", label))
		}
	}

	if score.Mode != types.ScanModeBasic && score.Experience != nil && *score.Experience < 70 {
		if res.Experience.QuantifiedBullets == 0 {
			comments = append(comments, "Add metrics to show real impact (e.g., 'Increased efficiency by 20%')")
		}
		if res.Experience.AvgBulletsPerRole < 3 {
			comments = append(comments, "Add 3-5 bullet points per role describing key achievements")
		}
	}

	if score.Mode != types.ScanModeBasic && score.Skills != nil && *score.Skills < 70 {
		if len(resume.Skills) < 10 {
			comments = append(comments, "Add a skills section with more relevant keywords")
		}
		comments = append(comments, "Include both technical and soft skills")
	}

	if resume.Summary == "" {
		comments = append(comments, "Add a professional summary at the top of your resume")
	}
	if len(resume.Certifications) == 0 && score.Mode == types.ScanModeExpert {
		comments = append(comments, "Consider adding relevant certifications to stand out")
	}
	if hasInconsistentBullets(resume.Experience) {
		comments = append(comments, "Ensure consistent bullet formatting - start each with a strong action verb")
	}

	if len(comments) > maxComments {
		comments = comments[:maxComments]
	}
	return comments
}

// hasInconsistentBullets reports whether any role mixes capitalized and
// uncapitalized bullet openers in its first three bullets.
func hasInconsistentBullets(entries []types.ExperienceItem) bool {
	for _, exp := range entries {
		if len(exp.Bullets) == 0 {
			continue
		}
		sawAction, sawOther := false, false
		bullets := exp.Bullets
		if len(bullets) > 3 {
			bullets = bullets[:3]
		}
		for _, bullet := range bullets {
			fields := strings.Fields(bullet)
			if len(fields) == 0 {
				continue
			}
			first := []rune(fields[0])[0]
			if first >= 'A' && first <= 'Z' {
				sawAction = true
			} else {
				sawOther = true
			}
		}
		if sawAction && sawOther {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func ptr(v float64) *float64 {
	return &v
}
