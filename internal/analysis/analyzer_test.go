package analysis

import (
	"log/slog"
	"math"
	"strings"
	"testing"

	"resumescan/internal/errors"
	"resumescan/internal/types"
)

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"hello", 2},
		{"beautiful", 3},
		{"code", 1},     // trailing silent e
		{"the", 1},      // silent e but floor at 1
		{"rhythm", 1},   // y as vowel
		{"io", 1},       // one vowel group
		{"engineer", 3},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := countSyllables(tt.word); got != tt.want {
				t.Errorf("countSyllables(%q) = %d, want %d", tt.word, got, tt.want)
			}
		})
	}
}

func TestComputeReadabilityEmpty(t *testing.T) {
	m := computeReadability("")
	if m != (types.ReadabilityMetrics{}) {
		t.Errorf("empty text should yield zero metrics, got %+v", m)
	}
}

func TestComputeReadabilityKnownText(t *testing.T) {
	// Ten one-syllable words in two sentences: wps=5, spw=1.
	text := "The cat sat on the mat. The dog ran off."
	m := computeReadability(text)

	wantFRE := 206.835 - 1.015*5 - 84.6*1
	if math.Abs(m.FleschReadingEase-clamp(wantFRE, 0, 100)) > 0.01 {
		t.Errorf("FleschReadingEase = %.2f, want %.2f", m.FleschReadingEase, clamp(wantFRE, 0, 100))
	}
	// Grade formula goes negative here and floors at zero.
	if m.FleschKincaidGrade != 0 {
		t.Errorf("FleschKincaidGrade = %.2f, want 0", m.FleschKincaidGrade)
	}
	if m.ReadabilityScore <= 0 || m.ReadabilityScore > 100 {
		t.Errorf("ReadabilityScore = %.2f, out of range", m.ReadabilityScore)
	}
}

func TestReadabilityPenalizesDenseText(t *testing.T) {
	simple := computeReadability("We built the app. It works well. Users like it a lot.")
	dense := computeReadability(strings.Repeat("Sophisticated organizational transformation methodologies necessitate comprehensive interdepartmental synchronization across heterogeneous infrastructural environments and multidimensional stakeholder constituencies ", 3) + ".")
	if dense.ReadabilityScore >= simple.ReadabilityScore {
		t.Errorf("dense text scored %.2f, simple %.2f; want dense lower", dense.ReadabilityScore, simple.ReadabilityScore)
	}
}

func TestIsQuantified(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"percent", "Increased sales by 25%", true},
		{"dollars", "Managed $500 budget", true},
		{"magnitude suffix", "Served 2M users", true},
		{"spelled magnitude", "Handled 3 million requests", true},
		{"plus", "Supported 50+ clients", true},
		{"thousands separator", "Processed 10,000 records", true},
		{"multiplier", "Made pipeline 3x faster", true},
		{"no numbers", "Led the platform team", false},
		{"bare small number", "Worked with 6 engineers", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsQuantified(tt.text); got != tt.want {
				t.Errorf("IsQuantified(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectStructure(t *testing.T) {
	tests := []struct {
		name        string
		doc         types.RawDocument
		wantTables  bool
		wantImages  bool
		wantColumns bool
		wantImgOnly bool
	}{
		{
			name: "plain text",
			doc:  types.RawDocument{FullText: "A perfectly ordinary resume body with more than enough words in it to avoid the sparse document threshold for sure and then some"},
		},
		{
			name:       "pipe table",
			doc:        types.RawDocument{FullText: "| Skill | Years |\nordinary text follows here with plenty of additional words to pad the count past twenty total words"},
			wantTables: true,
		},
		{
			name:       "double tabs",
			doc:        types.RawDocument{FullText: "Name\t\tDate\nmore ordinary body text follows here with plenty of additional words to pad the count well past twenty total"},
			wantTables: true,
		},
		{
			name:       "image marker",
			doc:        types.RawDocument{FullText: "[image] headshot.jpg\nmore ordinary body text follows here with plenty of additional words to pad the count well past twenty total"},
			wantImages: true,
		},
		{
			name:        "wide gaps mean columns",
			doc:         types.RawDocument{FullText: "Skills        Experience\nmore ordinary body text follows here with plenty of additional words to pad the count well past twenty total"},
			wantColumns: true,
		},
		{
			name:        "sparse text is image only",
			doc:         types.RawDocument{FullText: "a b c", PageCount: 2},
			wantImgOnly: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := detectStructure(&tt.doc)
			if flags.HasTables != tt.wantTables {
				t.Errorf("HasTables = %v, want %v", flags.HasTables, tt.wantTables)
			}
			if flags.HasImages != tt.wantImages {
				t.Errorf("HasImages = %v, want %v", flags.HasImages, tt.wantImages)
			}
			if flags.HasColumns != tt.wantColumns {
				t.Errorf("HasColumns = %v, want %v", flags.HasColumns, tt.wantColumns)
			}
			if flags.IsImageOnlyPDF != tt.wantImgOnly {
				t.Errorf("IsImageOnlyPDF = %v, want %v", flags.IsImageOnlyPDF, tt.wantImgOnly)
			}
		})
	}
}

func TestEstimatedPages(t *testing.T) {
	text := strings.Repeat("word ", 900)
	flags := detectStructure(&types.RawDocument{FullText: text})
	if flags.EstimatedPages != 2 {
		t.Errorf("EstimatedPages = %.1f, want 2 for 900 words", flags.EstimatedPages)
	}

	short := detectStructure(&types.RawDocument{FullText: "tiny resume body text here words words words words words words words words words words words words words"})
	if short.EstimatedPages != 1 {
		t.Errorf("EstimatedPages = %.1f, want floor of 1", short.EstimatedPages)
	}

	// A sparse multi-page PDF keeps the word-based estimate; the reported
	// page count only lands in PageCount.
	paged := detectStructure(&types.RawDocument{FullText: text, PageCount: 4})
	if paged.EstimatedPages != 2 {
		t.Errorf("EstimatedPages = %.1f, want 2 for 900 words regardless of page count", paged.EstimatedPages)
	}
	if paged.PageCount != 4 {
		t.Errorf("PageCount = %d, want 4", paged.PageCount)
	}
}

func TestAnalyzeExperience(t *testing.T) {
	entries := []types.ExperienceItem{
		{
			JobTitle: "Engineer",
			Bullets: []string{
				"Led migration reducing costs by 30%",
				"Responsible for wiki upkeep",
				"Built internal tooling",
			},
		},
		{
			JobTitle: "Analyst",
			Bullets:  []string{"Worked on reports"},
		},
	}

	stats := analyzeExperience(entries)
	if stats.RoleCount != 2 || stats.TotalBullets != 4 {
		t.Fatalf("counts = %d roles / %d bullets", stats.RoleCount, stats.TotalBullets)
	}
	if stats.QuantifiedBullets != 1 {
		t.Errorf("QuantifiedBullets = %d, want 1", stats.QuantifiedBullets)
	}
	if stats.QuantificationRate != 25 {
		t.Errorf("QuantificationRate = %.1f, want 25", stats.QuantificationRate)
	}
	if stats.ActionVerbCount != 2 {
		t.Errorf("ActionVerbCount = %d, want 2 (Led, Built)", stats.ActionVerbCount)
	}
	if len(stats.WeakBullets) != 2 {
		t.Fatalf("WeakBullets = %d, want 2", len(stats.WeakBullets))
	}
	if stats.WeakBullets[0].WeakPhrase != "responsible for" {
		t.Errorf("first weak phrase = %q", stats.WeakBullets[0].WeakPhrase)
	}
	if len(stats.Unquantified) != 1 || stats.Unquantified[0].JobTitle != "Analyst" {
		t.Errorf("Unquantified = %+v, want the Analyst role", stats.Unquantified)
	}
}

func TestAnalyzeLongSentences(t *testing.T) {
	long := strings.Repeat("word ", 30) + "."
	doc := &types.RawDocument{FullText: "Short sentence here. " + long}
	a := NewAnalyzer(errors.NewLogger(slog.LevelError))
	result := a.Analyze(doc, &types.Resume{})
	if len(result.LongSentences) != 1 {
		t.Fatalf("LongSentences = %d, want 1", len(result.LongSentences))
	}
	if result.SentenceCount != 2 {
		t.Errorf("SentenceCount = %d, want 2", result.SentenceCount)
	}
}
