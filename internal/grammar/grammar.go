// Package grammar talks to external grammar checkers and normalizes their
// findings into model.GrammarIssue values.
package grammar

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/samber/lo"
	"gopkg.in/resty.v1"

	"github.com/pavelanni/schreiben/internal/model"
)

// DefaultURL is the public LanguageTool check endpoint.
const DefaultURL = "https://api.languagetool.org/v2/check"

// DefaultLanguage is the language tag sent with every check.
const DefaultLanguage = "de-DE"

// maxSuggestions is how many replacements are kept per issue.
const maxSuggestions = 3

// ErrNoMatches is returned for a reply that lacks a matches array.
var ErrNoMatches = errors.New("response has no matches")

// Checker finds grammar and style problems in a text.
type Checker interface {
	Check(ctx context.Context, text string) ([]model.GrammarIssue, error)
}

// Response is the LanguageTool check response, reduced to the fields we use.
// The LLM checker asks the model for the same shape.
type Response struct {
	Matches []Match `json:"matches"`
}

// Match is a single LanguageTool finding.
type Match struct {
	Message string `json:"message"`
	Context struct {
		Text   string `json:"text"`
		Offset int    `json:"offset"`
		Length int    `json:"length"`
	} `json:"context"`
	Replacements []Replacement `json:"replacements"`
	Rule         struct {
		Category struct {
			Name string `json:"name"`
		} `json:"category"`
	} `json:"rule"`
}

// ParseResponse decodes a check reply. A missing or null matches array is
// ErrNoMatches; an empty array is a clean text.
func ParseResponse(data []byte) (Response, error) {
	var raw struct {
		Matches *[]Match `json:"matches"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Response{}, fmt.Errorf("decode response: %w", err)
	}
	if raw.Matches == nil {
		return Response{}, ErrNoMatches
	}
	return Response{Matches: *raw.Matches}, nil
}

// Replacement is one suggested correction.
type Replacement struct {
	Value string `json:"value"`
}

// Issues converts matches to GrammarIssue values, keeping at most three
// suggestions per issue. The result is never nil.
func (r Response) Issues() []model.GrammarIssue {
	issues := make([]model.GrammarIssue, 0, len(r.Matches))
	for _, m := range r.Matches {
		repl := m.Replacements[:min(len(m.Replacements), maxSuggestions)]
		issues = append(issues, model.GrammarIssue{
			Category: m.Rule.Category.Name,
			Message:  m.Message,
			Context:  m.Context.Text,
			Offset:   m.Context.Offset,
			Length:   m.Context.Length,
			Suggestions: lo.Map(repl, func(r Replacement, _ int) string {
				return r.Value
			}),
		})
	}
	return issues
}

// LanguageTool checks texts against a LanguageTool server.
type LanguageTool struct {
	client   *resty.Client
	url      string
	language string
}

// NewLanguageTool creates a LanguageTool checker. Empty url and language
// select the public endpoint and German.
func NewLanguageTool(url, language string) *LanguageTool {
	if url == "" {
		url = DefaultURL
	}
	if language == "" {
		language = DefaultLanguage
	}
	tr := http.Transport{TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12}}
	cl := http.Client{Transport: &tr}
	return &LanguageTool{
		client:   resty.NewWithClient(&cl),
		url:      url,
		language: language,
	}
}

// Check posts the text as a form and returns the normalized issues. Every
// failure wraps model.ErrCheckFailed; nothing is retried.
func (lt *LanguageTool) Check(ctx context.Context, text string) ([]model.GrammarIssue, error) {
	req := lt.client.R()
	req.SetContext(ctx)
	req.SetHeader("Accept", "application/json")
	req.SetFormData(map[string]string{
		"text":        text,
		"language":    lt.language,
		"enabledOnly": "false",
	})

	resp, err := req.Post(lt.url)
	if err != nil {
		return nil, fmt.Errorf("%w: post %s: %v", model.ErrCheckFailed, lt.url, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, fmt.Errorf("%w: status code %d", model.ErrCheckFailed, resp.StatusCode())
	}

	out, err := ParseResponse(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrCheckFailed, err)
	}

	slog.Debug("languagetool check done", "matches", len(out.Matches), "chars", len(text))
	return out.Issues(), nil
}
