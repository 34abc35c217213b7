package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// ErrCheckFailed is wrapped by every grammar checker failure: transport
// errors, non-success responses and undecodable bodies.
var ErrCheckFailed = errors.New("grammar check failed")

// Grade is a German grade label derived from the total score.
type Grade string

const (
	GradeA    Grade = "Sehr gut (A)"
	GradeB    Grade = "Gut (B)"
	GradeC    Grade = "Befriedigend (C)"
	GradeD    Grade = "Ausreichend (D)"
	GradeFail Grade = "Nicht bestanden"
)

// Sub-score maxima of the B2 writing rubric.
const (
	MaxContent   = 12
	MaxGrammar   = 12
	MaxCoherence = 12
	MaxFormat    = 9
	MaxTotal     = MaxContent + MaxGrammar + MaxCoherence + MaxFormat
)

// TextStats holds the live counters shown next to the editor.
type TextStats struct {
	Words int `json:"words"`
	Chars int `json:"chars"`
}

// Stats counts whitespace-delimited words of the trimmed text and code
// points of the untrimmed text.
func Stats(text string) TextStats {
	return TextStats{
		Words: WordCount(text),
		Chars: utf8.RuneCountInString(text),
	}
}

// WordCount returns the number of whitespace-delimited tokens; blank text has none.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// GrammarIssue is one problem reported by the external checker.
type GrammarIssue struct {
	Category    string   `json:"category"`
	Message     string   `json:"message"`
	Context     string   `json:"context"`
	Offset      int      `json:"offset"`
	Length      int      `json:"length"`
	Suggestions []string `json:"suggestions"`
}

// Span splits Context into the text before the flagged substring, the
// flagged substring and the rest. Offset and Length count UTF-16 code units
// and are clamped to the context.
func (g GrammarIssue) Span() (before, flagged, after string) {
	units := utf16.Encode([]rune(g.Context))
	start := clamp(g.Offset, 0, len(units))
	end := clamp(g.Offset+g.Length, start, len(units))
	return string(utf16.Decode(units[:start])),
		string(utf16.Decode(units[start:end])),
		string(utf16.Decode(units[end:]))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// ScoreReport is the result of scoring one essay. It is a plain value and
// is never modified after scoring.
type ScoreReport struct {
	Content    int    `json:"content"`
	Grammar    int    `json:"grammar"`
	Coherence  int    `json:"coherence"`
	Format     int    `json:"format"`
	Total      int    `json:"total"`
	Grade      Grade  `json:"grade"`
	IssueCount int    `json:"issue_count"`
	WordCount  int    `json:"word_count"`
	CharCount  int    `json:"char_count"`
	Variant    string `json:"variant"`
}

// ExamConfig holds runtime exam parameters set via CLI flags, env or config file.
type ExamConfig struct {
	Duration       time.Duration `validate:"gte=1s"`
	TickInterval   time.Duration `validate:"gte=10ms"`
	MinWords       int           `validate:"gte=0"`
	Checker        string        `validate:"oneof=languagetool llm"`
	CheckerURL     string        `validate:"omitempty,url"`
	Language       string        `validate:"required,bcp47_language_tag"`
	ScoringVariant string        // classic or unified; invalid values fall back to classic
	CacheTTL       time.Duration `validate:"gte=0"`
	LLMURL         string        `validate:"omitempty,url"`
	LLMKey         string
	LLMModel       string `validate:"required_if=Checker llm"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the config against its field constraints.
func (c ExamConfig) Validate() error {
	return validate.Struct(c)
}
