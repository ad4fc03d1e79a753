package analysis

import (
	"regexp"
	"strings"

	"resumescan/internal/types"
)

var sentenceSplitPattern = regexp.MustCompile(`[.!?]+`)

// splitSentences breaks text into sentences on terminal punctuation,
// dropping empty fragments.
func splitSentences(text string) []string {
	var sentences []string
	for _, s := range sentenceSplitPattern.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences = append(sentences, strings.TrimSpace(s))
		}
	}
	return sentences
}

// countSyllables estimates syllables as the number of vowel-group starts,
// discounting a trailing silent 'e'. Every word counts at least one.
func countSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}
	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

// computeReadability derives the Flesch reading-ease and Flesch-Kincaid
// grade from the text, then normalizes them into a 0-100 readability
// score. Empty text yields all zeros.
func computeReadability(text string) types.ReadabilityMetrics {
	sentences := splitSentences(text)
	words := strings.Fields(text)
	if len(sentences) == 0 || len(words) == 0 {
		return types.ReadabilityMetrics{}
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	wps := float64(len(words)) / float64(len(sentences))
	spw := float64(syllables) / float64(len(words))

	fre := 206.835 - 1.015*wps - 84.6*spw
	fre = clamp(fre, 0, 100)

	grade := 0.39*wps + 11.8*spw - 15.59
	if grade < 0 {
		grade = 0
	}

	score := 100.0
	if fre < 50 {
		score -= (50 - fre) * 0.5
	} else if fre > 80 {
		score -= (fre - 80) * 0.3
	}
	if grade > 12 {
		score -= (grade - 12) * 5
	} else if grade < 6 {
		score -= (6 - grade) * 3
	}

	return types.ReadabilityMetrics{
		FleschReadingEase:   fre,
		FleschKincaidGrade:  grade,
		AvgWordsPerSentence: wps,
		AvgSyllablesPerWord: spw,
		ReadabilityScore:    clamp(score, 0, 100),
	}
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
