package autofix

import (
	"log/slog"
	"strings"
	"testing"

	"resumescan/internal/analysis"
	"resumescan/internal/errors"
	"resumescan/internal/types"
)

func testRecommender() *Recommender {
	return NewRecommender(errors.NewLogger(slog.LevelError))
}

func TestRecommendSummaryFix(t *testing.T) {
	resume := &types.Resume{
		Experience: []types.ExperienceItem{{JobTitle: "Data Engineer", Company: "Acme"}},
	}
	findings := []types.Finding{{Kind: types.FindingMissingSummary, Section: "summary"}}

	fixes := testRecommender().Recommend(resume, &analysis.Result{}, findings)
	if len(fixes) != 1 {
		t.Fatalf("fixes = %d, want 1", len(fixes))
	}
	fix := fixes[0]
	if fix.Type != types.FixTypeSummary || fix.Action != types.FixActionAdd {
		t.Errorf("fix = %s/%s, want summary/add", fix.Type, fix.Action)
	}
	if !fix.AutoApplicable {
		t.Error("summary fix should be auto-applicable")
	}
	suggested, _ := fix.SuggestedValue.(string)
	if !strings.Contains(suggested, "Experienced Data Engineer") {
		t.Errorf("suggested summary %q should lead with the latest job title", suggested)
	}
	if fix.Priority != 2 {
		t.Errorf("Priority = %d, want 2", fix.Priority)
	}
}

func TestRecommendContactFixOnce(t *testing.T) {
	resume := &types.Resume{}
	findings := []types.Finding{
		{Kind: types.FindingMissingEmail, Section: "contact"},
		{Kind: types.FindingMissingPhone, Section: "contact"},
		{Kind: types.FindingMissingContact, Section: "contact", Detail: "location"},
	}

	fixes := testRecommender().Recommend(resume, &analysis.Result{}, findings)
	if len(fixes) != 1 {
		t.Fatalf("fixes = %d, want a single consolidated contact fix", len(fixes))
	}
	fix := fixes[0]
	if fix.Type != types.FixTypeContact || fix.Priority != 1 {
		t.Errorf("fix = %s priority %d, want contact priority 1", fix.Type, fix.Priority)
	}
	missing, _ := fix.Metadata["missingFields"].([]string)
	if len(missing) != 3 {
		t.Errorf("missingFields = %v, want email, phone, location", missing)
	}
}

func TestRecommendLengthFixThreshold(t *testing.T) {
	resume := &types.Resume{}
	findings := []types.Finding{{Kind: types.FindingTooLong, Section: "document"}}

	short := testRecommender().Recommend(resume, &analysis.Result{
		Structure: types.StructureFlags{WordCount: 900},
	}, findings)
	if len(short) != 0 {
		t.Errorf("no length fix expected at 900 words, got %d", len(short))
	}

	long := testRecommender().Recommend(resume, &analysis.Result{
		Structure: types.StructureFlags{WordCount: 1400},
	}, findings)
	if len(long) != 1 {
		t.Fatalf("fixes = %d, want 1 at 1400 words", len(long))
	}
	if got := long[0].Metadata["reductionNeeded"]; got != 650 {
		t.Errorf("reductionNeeded = %v, want 650", got)
	}
}

func TestRecommendQuantificationFixes(t *testing.T) {
	resume := &types.Resume{
		Experience: []types.ExperienceItem{
			{JobTitle: "Engineer", Company: "Acme", Bullets: []string{"Improved throughput by 40%"}},
			{JobTitle: "Analyst", Company: "Beta", Bullets: []string{"Wrote reports", "Maintained dashboards"}},
			{JobTitle: "Intern", Company: "Gamma", Bullets: []string{"Shadowed the team"}},
			{JobTitle: "Volunteer", Company: "Delta", Bullets: []string{"Organized events"}},
			{JobTitle: "Tutor", Company: "Epsilon", Bullets: []string{"Taught classes"}},
		},
	}
	findings := []types.Finding{{Kind: types.FindingLowQuantification, Section: "experience"}}

	fixes := testRecommender().Recommend(resume, &analysis.Result{}, findings)
	if len(fixes) != 3 {
		t.Fatalf("fixes = %d, want cap of 3", len(fixes))
	}
	if fixes[0].Section != "experience[1]" {
		t.Errorf("first fix targets %s, want experience[1] (quantified role skipped)", fixes[0].Section)
	}
	if !strings.Contains(fixes[0].Description, "Analyst at Beta") {
		t.Errorf("Description = %q", fixes[0].Description)
	}
}

func TestRecommendBulletFixes(t *testing.T) {
	resume := &types.Resume{
		Experience: []types.ExperienceItem{
			{Company: "Acme", Bullets: []string{"Responsible for deployments", "Led launches"}},
		},
	}
	res := &analysis.Result{
		Experience: analysis.ExperienceStats{
			WeakBullets: []analysis.BulletRef{
				{RoleIndex: 0, BulletIndex: 0, Text: "Responsible for deployments", WeakPhrase: "responsible for"},
			},
		},
	}
	findings := []types.Finding{{Kind: types.FindingWeakBullets, Section: "experience", Value: 1}}

	fixes := testRecommender().Recommend(resume, res, findings)
	if len(fixes) != 1 {
		t.Fatalf("fixes = %d, want 1", len(fixes))
	}
	fix := fixes[0]
	if fix.Section != "experience[0].bullets[0]" {
		t.Errorf("Section = %q", fix.Section)
	}
	if fix.Metadata["weakVerbFound"] != "responsible for" {
		t.Errorf("weakVerbFound = %v", fix.Metadata["weakVerbFound"])
	}
}

func TestRecommendPriorityOrder(t *testing.T) {
	resume := &types.Resume{
		Experience: []types.ExperienceItem{{JobTitle: "Clerk", Company: "Acme", Bullets: []string{"Filed documents"}}},
	}
	res := &analysis.Result{
		LongSentences: []string{strings.Repeat("word ", 30)},
	}
	findings := []types.Finding{
		{Kind: types.FindingLongSentences, Section: "document", Value: 1},
		{Kind: types.FindingNoQuantification, Section: "experience"},
		{Kind: types.FindingMissingSummary, Section: "summary"},
		{Kind: types.FindingMissingEmail, Section: "contact"},
	}

	fixes := testRecommender().Recommend(resume, res, findings)
	if len(fixes) < 4 {
		t.Fatalf("fixes = %d, want at least 4", len(fixes))
	}
	for i := 1; i < len(fixes); i++ {
		if fixes[i].Priority < fixes[i-1].Priority {
			t.Fatalf("fixes out of priority order at %d: %v", i, fixes)
		}
	}
	if fixes[0].Type != types.FixTypeContact {
		t.Errorf("highest priority fix = %s, want contact", fixes[0].Type)
	}
}

func TestApplySummaryFix(t *testing.T) {
	builder := &types.ResumeBuilder{ID: "r1", Title: "My Resume"}
	fix := summaryFix(&types.Resume{})

	msg, err := Apply(builder, fix)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if msg == "" || builder.Summary == nil || builder.Summary.Text == "" {
		t.Errorf("summary not applied: msg=%q summary=%+v", msg, builder.Summary)
	}

	// A second application must refuse to overwrite.
	if _, err := Apply(builder, fix); err == nil {
		t.Error("expected error when summary already present")
	}
}

func TestApplyRejectsManualFixes(t *testing.T) {
	builder := &types.ResumeBuilder{ID: "r1"}
	fix := types.AutoFix{Type: types.FixTypeLength, Action: types.FixActionModify, AutoApplicable: false}
	if _, err := Apply(builder, fix); err == nil {
		t.Error("expected error for non-auto-applicable fix")
	}
}
