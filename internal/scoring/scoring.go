// Package scoring grades a B2 writing task from its text and the issues
// reported by the grammar checker.
package scoring

import (
	"math"
	"strings"

	"github.com/pavelanni/schreiben/internal/model"
)

// Variant selects how an issue-free text is scored.
type Variant string

const (
	// VariantClassic keeps the separate rules for texts without any issues:
	// proportional content score, fixed coherence of 12 and a three-tier grade table.
	VariantClassic Variant = "classic"
	// VariantUnified scores every text with the same rules regardless of the issue count.
	VariantUnified Variant = "unified"
)

var validVariants = map[Variant]bool{
	VariantClassic: true,
	VariantUnified: true,
}

// IsValidVariant checks if a scoring variant name is valid.
func IsValidVariant(v string) bool {
	return validVariants[Variant(v)]
}

// Word-count band of a text that fully meets the length requirement.
const (
	minGoodLength = 150
	maxGoodLength = 250
)

var (
	greetings = []string{"sehr geehrte", "liebe"}
	closings  = []string{"mit freundlichen grüßen", "freundliche grüße"}
)

// Score grades text with the classic variant.
func Score(text string, issues []model.GrammarIssue) model.ScoreReport {
	return VariantClassic.Score(text, issues)
}

// Score grades text against the B2 rubric. It is a pure function of its
// arguments.
func (v Variant) Score(text string, issues []model.GrammarIssue) model.ScoreReport {
	stats := model.Stats(text)
	w, n := stats.Words, len(issues)
	cleanPath := n == 0 && v != VariantUnified

	var content, grammar, coherence int
	if cleanPath {
		content = cleanContentScore(w)
		grammar = model.MaxGrammar
		coherence = model.MaxCoherence
	} else {
		content = contentScore(w)
		grammar = grammarScore(n)
		coherence = coherenceScore(w, n)
	}
	format := formatScore(text)

	report := model.ScoreReport{
		Content:    clampScore(content, model.MaxContent),
		Grammar:    clampScore(grammar, model.MaxGrammar),
		Coherence:  clampScore(coherence, model.MaxCoherence),
		Format:     clampScore(format, model.MaxFormat),
		IssueCount: n,
		WordCount:  w,
		CharCount:  stats.Chars,
		Variant:    string(v),
	}
	if !validVariants[v] {
		report.Variant = string(VariantClassic)
	}
	report.Total = report.Content + report.Grammar + report.Coherence + report.Format
	if cleanPath {
		report.Grade = cleanGrade(report.Total)
	} else {
		report.Grade = grade(report.Total)
	}
	return report
}

func hasGoodLength(w int) bool {
	return w >= minGoodLength && w <= maxGoodLength
}

func contentScore(w int) int {
	switch {
	case hasGoodLength(w):
		return 12
	case w >= 130 && w < minGoodLength:
		return 10
	case w >= 100 && w < 130:
		return 8
	case w < 100:
		return 4
	default: // longer than the band
		return 11
	}
}

// cleanContentScore scales short texts proportionally instead of using bands.
func cleanContentScore(w int) int {
	switch {
	case hasGoodLength(w):
		return 12
	case w < minGoodLength:
		return int(math.Round(float64(w) / minGoodLength * 12))
	default:
		return 11
	}
}

func grammarScore(n int) int {
	switch {
	case n <= 2:
		return 12
	case n <= 5:
		return 10
	case n <= 8:
		return 8
	case n <= 12:
		return 6
	case n <= 16:
		return 4
	default:
		return 2
	}
}

// coherenceScore raises first and lowers second, so a well-sized text with
// more than 12 issues ends at 8.
func coherenceScore(w, n int) int {
	score := 10
	if hasGoodLength(w) && n <= 8 {
		score = 12
	}
	if !hasGoodLength(w) || n > 12 {
		score = 8
	}
	return score
}

func formatScore(text string) int {
	lower := strings.ToLower(text)
	score := model.MaxFormat
	if !containsAny(lower, greetings) {
		score -= 2
	}
	if !containsAny(lower, closings) {
		score -= 2
	}
	return score
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func grade(total int) model.Grade {
	switch {
	case total >= 40:
		return model.GradeA
	case total >= 35:
		return model.GradeB
	case total >= 27:
		return model.GradeC
	case total >= 20:
		return model.GradeD
	default:
		return model.GradeFail
	}
}

func cleanGrade(total int) model.Grade {
	switch {
	case total >= 40:
		return model.GradeA
	case total >= 35:
		return model.GradeB
	default:
		return model.GradeC
	}
}

func clampScore(v, hi int) int {
	return max(0, min(v, hi))
}
