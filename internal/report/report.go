// Package report renders score reports as plain text for the terminal.
package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/pavelanni/schreiben/internal/i18n"
	"github.com/pavelanni/schreiben/internal/model"
	"github.com/pavelanni/schreiben/internal/session"
)

// targetWords is the word count the word line is checked against.
const targetWords = 150

// Write renders report and issues in the layout of the exam's correction panel.
func Write(ctx context.Context, w io.Writer, r model.ScoreReport, issues []model.GrammarIssue) error {
	var b strings.Builder
	t := func(id string) string { return i18n.T(ctx, id) }
	outOf := func(score, maxScore int) string {
		return i18n.Td(ctx, "ScoreOutOf", map[string]any{"Score": score, "Max": maxScore})
	}

	if len(issues) == 0 {
		fmt.Fprintln(&b, t("NoErrors"))
		fmt.Fprintln(&b)
	}

	fmt.Fprintf(&b, "%s %s\n", t("TotalScore"), outOf(r.Total, model.MaxTotal))
	fmt.Fprintf(&b, "%s %s\n", t("Rating"), r.Grade)
	fmt.Fprintln(&b, strings.Repeat("-", 40))
	fmt.Fprintf(&b, "%s %s\n", t("LabelContent"), outOf(r.Content, model.MaxContent))
	fmt.Fprintf(&b, "%s %s\n", t("LabelGrammar"), outOf(r.Grammar, model.MaxGrammar))
	fmt.Fprintf(&b, "%s %s\n", t("LabelCoherence"), outOf(r.Coherence, model.MaxCoherence))
	fmt.Fprintf(&b, "%s %s\n", t("LabelFormat"), outOf(r.Format, model.MaxFormat))
	fmt.Fprintln(&b, strings.Repeat("-", 40))

	if len(issues) == 0 {
		fmt.Fprintf(&b, "%s %d\n", t("Words"), r.WordCount)
		fmt.Fprintf(&b, "%s %d\n", t("Chars"), r.CharCount)
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "%s %d\n", t("ErrorsFound"), r.IssueCount)
	mark := "✓"
	if r.WordCount < targetWords {
		mark = t("MinWordsHint")
	}
	fmt.Fprintf(&b, "%s %d %s\n", t("Words"), r.WordCount, mark)

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, t("ErrorsHeading"))
	for i, is := range issues {
		before, flagged, after := is.Span()
		fmt.Fprintf(&b, "\n%d. [%s] %s\n", i+1, is.Category, is.Message)
		fmt.Fprintf(&b, "   %s[[%s]]%s\n", before, flagged, after)
		if len(is.Suggestions) > 0 {
			fmt.Fprintf(&b, "   %s %s\n", t("Suggestion"), strings.Join(is.Suggestions, ", "))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Presenter writes session output to a terminal.
type Presenter struct {
	ctx context.Context
	mu  sync.Mutex
	w   io.Writer
}

// NewPresenter creates a presenter writing to w. ctx carries the localizer.
func NewPresenter(ctx context.Context, w io.Writer) *Presenter {
	return &Presenter{ctx: ctx, w: w}
}

func (p *Presenter) ShowTime(display string, urgent bool) {
	if !urgent {
		return
	}
	p.println(i18n.T(p.ctx, "TimeLeft") + ": " + display)
}

func (p *Presenter) Notify(msg string, _ session.Kind) {
	p.println(msg)
}

func (p *Presenter) Render(r model.ScoreReport, issues []model.GrammarIssue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := Write(p.ctx, p.w, r, issues); err != nil {
		slog.Error("write report", "error", err)
	}
}

func (p *Presenter) Lock() {}

func (p *Presenter) println(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := fmt.Fprintln(p.w, s); err != nil {
		slog.Error("write output", "error", err)
	}
}
