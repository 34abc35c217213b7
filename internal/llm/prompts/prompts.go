package prompts

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"text/template"
	"unicode/utf8"
)

//go:embed templates/*.txt
var templateFS embed.FS

var essayTagRegex = regexp.MustCompile(`(?i)</?\s*essay\b[^>]*>`)

// maxEssayRunes bounds the essay size sent to the model.
const maxEssayRunes = 10000

// ErrEssayTooLong is returned for essays longer than the model is sent.
var ErrEssayTooLong = errors.New("essay is too long for the model")

var (
	loadOnce  sync.Once
	loadErr   error
	checkTmpl *template.Template
)

// Categories are the issue categories the model may use. They mirror the
// LanguageTool German category names so reports look the same for both checkers.
var Categories = []string{
	"Mögliche Tippfehler",
	"Grammatik",
	"Zeichensetzung",
	"Groß-/Kleinschreibung",
	"Stil",
}

// CheckData holds template data for the grammar check prompt.
type CheckData struct {
	LanguageName string
	Categories   []string
	Essay        string
}

func load() error {
	loadOnce.Do(func() {
		content, err := templateFS.ReadFile("templates/check.txt")
		if err != nil {
			loadErr = fmt.Errorf("read check prompt: %w", err)
			return
		}
		checkTmpl, loadErr = template.New("check").Parse(string(content))
	})
	return loadErr
}

// BuildCheckPrompt renders the grammar check prompt for the essay.
func BuildCheckPrompt(language, essay string) (string, error) {
	if err := load(); err != nil {
		return "", err
	}

	essay, err := sanitizeEssay(essay)
	if err != nil {
		return "", err
	}
	data := CheckData{
		LanguageName: LanguageName(language),
		Categories:   Categories,
		Essay:        essay,
	}

	var buf bytes.Buffer
	if err := checkTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// LanguageName maps a language tag to the English name used in the prompt.
func LanguageName(tag string) string {
	switch strings.ToLower(strings.SplitN(tag, "-", 2)[0]) {
	case "de":
		return "German"
	case "en":
		return "English"
	case "fr":
		return "French"
	default:
		return tag
	}
}

// sanitizeEssay strips delimiter tags. Essays over maxEssayRunes are
// rejected rather than cut, so the model sees the text that gets scored.
func sanitizeEssay(essay string) (string, error) {
	essay = essayTagRegex.ReplaceAllString(essay, "")
	essay = strings.TrimSpace(essay)

	if n := utf8.RuneCountInString(essay); n > maxEssayRunes {
		return "", fmt.Errorf("%w: %d characters, limit %d", ErrEssayTooLong, n, maxEssayRunes)
	}
	return essay, nil
}
