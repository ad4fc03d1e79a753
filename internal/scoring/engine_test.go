package scoring

import (
	"log/slog"
	"math"
	"strings"
	"testing"

	"resumescan/internal/analysis"
	"resumescan/internal/errors"
	"resumescan/internal/types"
)

func fullResume() (*types.Resume, *types.RawDocument) {
	bullets := [][]string{
		{
			"Led migration of billing platform, reducing costs by 30%",
			"Developed internal tooling used by 200+ engineers",
			"Improved deployment frequency by 40%",
		},
		{
			"Built data pipelines processing 2M events daily",
			"Optimized query latency, a 3x improvement",
			"Automated release process saving $50K annually",
		},
		{
			"Designed microservices architecture for payments",
			"Managed team of 6 engineers across two offices",
			"Implemented monitoring that cut incidents by 25%",
		},
	}
	titles := []string{"Staff Engineer", "Senior Engineer", "Engineer"}

	resume := &types.Resume{
		Name:    "Jane Doe",
		Summary: "Seasoned platform engineer focused on reliability and cost.",
		Contact: types.ContactInfo{
			Email:    "jane@example.com",
			Phone:    "(415) 555-0100",
			Location: "Austin, TX",
		},
		Education: []types.EducationItem{{Degree: "BSc Computer Science", Institution: "UT Austin"}},
		Certifications: []types.CertificationItem{
			{Name: "AWS Certified Solutions Architect", Issuer: "Amazon"},
		},
	}
	for i, title := range titles {
		resume.Experience = append(resume.Experience, types.ExperienceItem{
			JobTitle: title, Company: "Acme", Bullets: bullets[i],
		})
	}
	for _, s := range []string{
		"Python", "Go", "Java", "React", "SQL", "PostgreSQL", "MongoDB",
		"AWS", "Docker", "Kubernetes", "Terraform", "Leadership",
		"Communication", "Agile", "Machine Learning",
	} {
		resume.Skills = append(resume.Skills, types.SkillItem{
			Name:           s,
			Category:       categoryFor(s),
			NormalizedName: strings.ToLower(s),
		})
	}

	var b strings.Builder
	b.WriteString(resume.Name + "\n" + resume.Contact.Email + "\n\n")
	b.WriteString("SUMMARY\n" + resume.Summary + "\n\nEXPERIENCE\n")
	for _, e := range resume.Experience {
		b.WriteString(e.JobTitle + " at " + e.Company + "\n")
		for _, bl := range e.Bullets {
			b.WriteString("• " + bl + "\n")
		}
	}
	b.WriteString("\nSKILLS\n")
	for _, s := range resume.Skills {
		b.WriteString(s.Name + ", ")
	}
	// Pad into the optimal length band.
	b.WriteString("\n" + strings.Repeat("Delivered reliable systems for users across many teams. ", 45))
	resume.RawText = b.String()

	return resume, &types.RawDocument{FullText: resume.RawText}
}

func categoryFor(skill string) string {
	switch skill {
	case "Python", "Go", "Java":
		return "programming"
	case "React":
		return "web"
	case "SQL", "PostgreSQL", "MongoDB":
		return "databases"
	case "AWS", "Docker", "Kubernetes", "Terraform":
		return "cloud"
	case "Machine Learning":
		return "data"
	case "Leadership", "Communication", "Agile":
		return "soft"
	}
	return ""
}

func scoreWith(t *testing.T, resume *types.Resume, doc *types.RawDocument, opts Options) *types.ResumeScore {
	t.Helper()
	logger := errors.NewLogger(slog.LevelError)
	result := analysis.NewAnalyzer(logger).Analyze(doc, resume)
	return NewEngine(logger).Score(resume, result, opts)
}

func TestATSCompliancePenalties(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.Resume, *types.StructureFlags)
		want   float64
	}{
		{
			name:   "clean resume keeps full score",
			mutate: func(*types.Resume, *types.StructureFlags) {},
			want:   100,
		},
		{
			name:   "missing email",
			mutate: func(r *types.Resume, _ *types.StructureFlags) { r.Contact.Email = "" },
			want:   85,
		},
		{
			name:   "missing phone",
			mutate: func(r *types.Resume, _ *types.StructureFlags) { r.Contact.Phone = "" },
			want:   90,
		},
		{
			name:   "tables detected",
			mutate: func(_ *types.Resume, f *types.StructureFlags) { f.HasTables = true },
			want:   85,
		},
		{
			name:   "columns detected",
			mutate: func(_ *types.Resume, f *types.StructureFlags) { f.HasColumns = true },
			want:   92,
		},
		{
			name:   "no experience",
			mutate: func(r *types.Resume, _ *types.StructureFlags) { r.Experience = nil },
			want:   80,
		},
		{
			name:   "over three pages",
			mutate: func(_ *types.Resume, f *types.StructureFlags) { f.EstimatedPages = 4 },
			want:   90,
		},
		{
			name: "everything missing bottoms out at zero",
			mutate: func(r *types.Resume, f *types.StructureFlags) {
				*r = types.Resume{}
				f.HasTables = true
				f.HasImages = true
				f.HasColumns = true
				f.EstimatedPages = 5
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resume, _ := fullResume()
			flags := types.StructureFlags{WordCount: 800, EstimatedPages: 2}
			tt.mutate(resume, &flags)
			if got := atsComplianceScore(resume, flags); got != tt.want {
				t.Errorf("atsComplianceScore() = %.1f, want %.1f", got, tt.want)
			}
		})
	}
}

func TestATSComplianceImageOnly(t *testing.T) {
	resume, _ := fullResume()
	flags := types.StructureFlags{IsImageOnlyPDF: true}
	if got := atsComplianceScore(resume, flags); got != 10 {
		t.Errorf("image-only document score = %.1f, want 10", got)
	}
}

func TestLayoutScoreBands(t *testing.T) {
	tests := []struct {
		name string
		wc   int
		want float64
	}{
		{name: "very short", wc: 100, want: 80}, // 100 - (150-100)*0.4
		{name: "between bands", wc: 175, want: 100},
		{name: "thin", wc: 300, want: 80},
		{name: "optimal", wc: 800, want: 100},
		{name: "long", wc: 1700, want: 85},
		{name: "very long", wc: 2500, want: 85}, // 100 - 500*0.03
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := layoutScore(types.StructureFlags{WordCount: tt.wc})
			if got != tt.want {
				t.Errorf("layoutScore(wc=%d) = %.1f, want %.1f", tt.wc, got, tt.want)
			}
		})
	}
}

func TestBasicModeOmitsDeepComponents(t *testing.T) {
	resume, doc := fullResume()
	score := scoreWith(t, resume, doc, Options{Mode: types.ScanModeBasic})

	if score.Experience != nil || score.Skills != nil || score.JobMatch != nil {
		t.Errorf("basic mode should leave experience/skills/job match nil, got %+v", score)
	}
	want := score.ATSCompliance*0.50 + score.Layout*0.30 + score.Readability*0.20
	if math.Abs(score.Overall-want) > 0.1 {
		t.Errorf("Overall = %.1f, want weighted %.1f", score.Overall, want)
	}
}

func TestATSModePopulatesComponents(t *testing.T) {
	resume, doc := fullResume()
	score := scoreWith(t, resume, doc, Options{Mode: types.ScanModeATS, Industry: "it-software"})

	if score.Experience == nil || score.Skills == nil {
		t.Fatal("ats mode should populate experience and skills")
	}
	if *score.Experience != 100 {
		t.Errorf("Experience = %.1f, want 100 for three quantified roles", *score.Experience)
	}
	if *score.Skills < 90 {
		t.Errorf("Skills = %.1f, want >= 90 for rich categorized skills", *score.Skills)
	}
}

func TestExpertModeAddsThenClamps(t *testing.T) {
	resume, doc := fullResume()
	ats := scoreWith(t, resume, doc, Options{Mode: types.ScanModeATS, Industry: "it-software"})
	expert := scoreWith(t, resume, doc, Options{Mode: types.ScanModeExpert, Industry: "it-software"})

	// Impact metrics +5, certifications +3+4, summary +2: a strong resume
	// scores at least as high in expert mode, never above 100.
	if expert.Overall < ats.Overall {
		t.Errorf("expert %.1f < ats %.1f for a strong resume", expert.Overall, ats.Overall)
	}
	if expert.Overall > 100 {
		t.Errorf("Overall = %.1f, exceeds cap", expert.Overall)
	}
}

func TestExpertBiasPenalty(t *testing.T) {
	resume, doc := fullResume()
	resume.RawText += "\nDate of birth: 1990. Married, two children."
	doc.FullText = resume.RawText

	clean, cleanDoc := fullResume()
	with := scoreWith(t, resume, doc, Options{Mode: types.ScanModeExpert})
	without := scoreWith(t, clean, cleanDoc, Options{Mode: types.ScanModeExpert})

	if with.Overall >= without.Overall {
		t.Errorf("bias indicators should lower the score: %.1f vs %.1f", with.Overall, without.Overall)
	}
	found := false
	for _, f := range with.Findings {
		if f.Kind == types.FindingBiasIndicators {
			found = true
		}
	}
	if !found {
		t.Error("expected a bias-indicators finding")
	}
}

func TestExpertCertificationBonus(t *testing.T) {
	certified, certifiedDoc := fullResume()
	bare, bareDoc := fullResume()
	bare.Certifications = nil

	with := scoreWith(t, certified, certifiedDoc, Options{Mode: types.ScanModeExpert, Industry: "it-software"})
	without := scoreWith(t, bare, bareDoc, Options{Mode: types.ScanModeExpert, Industry: "it-software"})

	if with.Overall < without.Overall {
		t.Errorf("certifications should never lower an expert score: %.1f vs %.1f", with.Overall, without.Overall)
	}
}

func TestIndustryBonusMonotonic(t *testing.T) {
	matched, matchedDoc := fullResume()
	generic, genericDoc := fullResume()

	with := scoreWith(t, matched, matchedDoc, Options{Mode: types.ScanModeExpert, Industry: "it-software"})
	without := scoreWith(t, generic, genericDoc, Options{Mode: types.ScanModeExpert})

	if with.Overall < without.Overall {
		t.Errorf("matching industry keywords should never lower the score: %.1f vs %.1f", with.Overall, without.Overall)
	}
}

func TestContentFlagModeGates(t *testing.T) {
	resume, doc := fullResume()
	resume.Summary = ""
	resume.Skills = nil

	hasKind := func(score *types.ResumeScore, kind types.FindingKind) bool {
		for _, f := range score.Findings {
			if f.Kind == kind {
				return true
			}
		}
		return false
	}

	basic := scoreWith(t, resume, doc, Options{Mode: types.ScanModeBasic})
	if hasKind(basic, types.FindingMissingSummary) {
		t.Error("basic mode should not flag a missing summary")
	}
	if hasKind(basic, types.FindingFewSkills) {
		t.Error("basic mode should not flag limited skills")
	}

	ats := scoreWith(t, resume, doc, Options{Mode: types.ScanModeATS})
	if !hasKind(ats, types.FindingMissingSummary) {
		t.Error("ats mode should flag a missing summary")
	}
	// Zero skills still count as limited.
	if !hasKind(ats, types.FindingFewSkills) {
		t.Error("ats mode should flag limited skills for an empty skill list")
	}
}

func TestJobMatchScore(t *testing.T) {
	resume, doc := fullResume()

	t.Run("empty description yields neutral default", func(t *testing.T) {
		if got := jobMatchScore(resume, "a an of"); got != 50 {
			t.Errorf("jobMatchScore = %.1f, want 50", got)
		}
	})

	t.Run("matching description scores high", func(t *testing.T) {
		score := scoreWith(t, resume, doc, Options{
			Mode:           types.ScanModeATS,
			JobDescription: "Seeking engineer with Python, Go, Kubernetes, AWS and PostgreSQL experience",
		})
		if score.JobMatch == nil {
			t.Fatal("JobMatch not populated")
		}
		if *score.JobMatch < 80 {
			t.Errorf("JobMatch = %.1f, want high overlap", *score.JobMatch)
		}
	})

	t.Run("unrelated description scores low", func(t *testing.T) {
		got := jobMatchScore(resume, "pediatric phlebotomy internship requiring veterinary licensure")
		if got > 40 {
			t.Errorf("jobMatchScore = %.1f, want low", got)
		}
	})
}

func TestCommentsCapped(t *testing.T) {
	resume := &types.Resume{RawText: "barely any text here at all"}
	doc := &types.RawDocument{FullText: resume.RawText}
	score := scoreWith(t, resume, doc, Options{Mode: types.ScanModeExpert, Industry: "finance"})
	if len(score.Comments) > 6 {
		t.Errorf("comments = %d, want at most 6", len(score.Comments))
	}
	if len(score.Comments) == 0 {
		t.Error("weak resume should draw comments")
	}
}

func TestFindingsForWeakResume(t *testing.T) {
	resume := &types.Resume{
		Experience: []types.ExperienceItem{
			{JobTitle: "Clerk", Bullets: []string{"Responsible for filing", "helped with scheduling"}},
		},
		RawText: strings.Repeat("plain words without numbers or anything measurable here ", 30),
	}
	doc := &types.RawDocument{FullText: resume.RawText}
	score := scoreWith(t, resume, doc, Options{Mode: types.ScanModeATS})

	want := map[types.FindingKind]bool{
		types.FindingMissingEmail:     false,
		types.FindingMissingPhone:     false,
		types.FindingMissingSummary:   false,
		types.FindingNoQuantification: false,
		types.FindingWeakBullets:      false,
		types.FindingMissingSkills:    false,
	}
	for _, f := range score.Findings {
		if _, tracked := want[f.Kind]; tracked {
			want[f.Kind] = true
		}
	}
	for kind, seen := range want {
		if !seen {
			t.Errorf("missing expected finding %q", kind)
		}
	}
}

func TestIndustryProfiles(t *testing.T) {
	for _, industry := range SupportedIndustries() {
		p, ok := IndustryProfileFor(industry)
		if !ok {
			t.Errorf("missing profile for %q", industry)
			continue
		}
		if len(p.TechnicalSkills) == 0 || len(p.Certifications) == 0 || len(p.ActionVerbs) == 0 {
			t.Errorf("profile %q has empty keyword sets", industry)
		}
	}
	if _, ok := IndustryProfileFor("astrology"); ok {
		t.Error("unknown industry should not resolve")
	}
}
