// Package session runs one timed writing exam: it owns the countdown, the
// draft text and the check-then-score flow, and reports through a Presenter.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pavelanni/schreiben/internal/grammar"
	"github.com/pavelanni/schreiben/internal/i18n"
	"github.com/pavelanni/schreiben/internal/metrics"
	"github.com/pavelanni/schreiben/internal/model"
	"github.com/pavelanni/schreiben/internal/scoring"
)

var (
	ErrEmptyText     = errors.New("text is empty")
	ErrTooShort      = errors.New("text is too short to check")
	ErrCheckInFlight = errors.New("a check is already running")
	ErrInputLocked   = errors.New("time is up, the text is locked")
	ErrNoDraftStore  = errors.New("no draft store configured")
)

// DefaultMinWords is the smallest text the checker is asked about.
const DefaultMinWords = 50

// Config holds the exam parameters of a session.
type Config struct {
	Duration time.Duration
	MinWords int
	Variant  scoring.Variant
}

// State is a snapshot of the session for display.
type State struct {
	Remaining string          `json:"remaining"`
	Urgent    bool            `json:"urgent"`
	Locked    bool            `json:"locked"`
	Checking  bool            `json:"checking"`
	Stats     model.TextStats `json:"stats"`
}

// Session is one exam attempt. All methods are safe for concurrent use.
type Session struct {
	checker   grammar.Checker
	presenter Presenter
	drafts    DraftStore
	variant   scoring.Variant
	minWords  int

	mu       sync.Mutex
	clock    Clock
	text     string
	checking bool
	locked   bool
}

// New creates a session. drafts may be nil when drafts are not kept.
func New(cfg Config, checker grammar.Checker, p Presenter, drafts DraftStore) *Session {
	if p == nil {
		p = NopPresenter{}
	}
	if !scoring.IsValidVariant(string(cfg.Variant)) {
		cfg.Variant = scoring.VariantClassic
	}
	return &Session{
		checker:   checker,
		presenter: p,
		drafts:    drafts,
		variant:   cfg.Variant,
		minWords:  cfg.MinWords,
		clock:     NewClock(cfg.Duration),
	}
}

// SetText replaces the draft and returns its live counters.
func (s *Session) SetText(text string) (model.TextStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return model.Stats(s.text), ErrInputLocked
	}
	s.text = text
	return model.Stats(text), nil
}

// Text returns the current draft.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Stats returns the live counters of the current draft.
func (s *Session) Stats() model.TextStats {
	return model.Stats(s.Text())
}

// State returns a snapshot for display.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Remaining: s.clock.Display(),
		Urgent:    s.clock.Remaining() <= twoMinutes,
		Locked:    s.locked,
		Checking:  s.checking,
		Stats:     model.Stats(s.text),
	}
}

// Tick advances the countdown by one second and drives the presenter.
// It returns false once the exam is over.
func (s *Session) Tick(ctx context.Context) bool {
	s.mu.Lock()
	t := s.clock.Advance()
	if t.Event == EventExpired {
		s.locked = true
	}
	s.mu.Unlock()

	if t.Display == "" {
		return false
	}
	s.presenter.ShowTime(t.Display, t.Urgent)

	switch t.Event {
	case EventFiveMinutes:
		s.presenter.Notify(i18n.T(ctx, "NotifyFiveMinutes"), KindError)
	case EventTwoMinutes:
		slog.Debug("two minutes left")
	case EventExpired:
		s.presenter.Lock()
		s.presenter.Notify(i18n.T(ctx, "NotifyTimeUp"), KindError)
		slog.Info("exam time is up", "words", s.Stats().Words)
		return false
	}
	return true
}

// Run ticks every interval until the time is up or ctx is done.
func (s *Session) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !s.Tick(ctx) {
				return nil
			}
		}
	}
}

// Check sends the draft to the grammar checker and scores it. Empty and
// too short drafts are rejected without contacting the checker, and only
// one check runs at a time. On checker failure no report is rendered and
// the returned error wraps model.ErrCheckFailed.
func (s *Session) Check(ctx context.Context) (model.ScoreReport, []model.GrammarIssue, error) {
	text, err := s.beginCheck()
	if err != nil {
		s.reject(ctx, err)
		return model.ScoreReport{}, nil, err
	}
	defer s.endCheck()

	log := slog.With("check_id", uuid.NewString())
	log.Info("grammar check started", "words", model.WordCount(text))

	issues, err := s.checker.Check(ctx, text)
	if err != nil {
		log.Error("grammar check failed", "error", err)
		metrics.ObserveCheck(metrics.OutcomeFailed)
		s.presenter.Notify(i18n.T(ctx, "NotifyCheckFailed"), KindError)
		if !errors.Is(err, model.ErrCheckFailed) {
			err = fmt.Errorf("%w: %w", model.ErrCheckFailed, err)
		}
		return model.ScoreReport{}, nil, err
	}

	report := s.variant.Score(text, issues)
	metrics.ObserveReport(report)
	s.presenter.Render(report, issues)
	s.presenter.Notify(i18n.T(ctx, "NotifyCheckDone"), KindSuccess)
	log.Info("essay scored",
		"total", report.Total,
		"grade", report.Grade,
		"issues", report.IssueCount,
		"words", report.WordCount,
	)
	return report, issues, nil
}

func (s *Session) beginCheck() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked {
		return "", ErrInputLocked
	}
	if s.checking {
		return "", ErrCheckInFlight
	}
	text := strings.TrimSpace(s.text)
	if text == "" {
		return "", ErrEmptyText
	}
	if model.WordCount(text) < s.minWords {
		return "", ErrTooShort
	}
	s.checking = true
	return text, nil
}

func (s *Session) endCheck() {
	s.mu.Lock()
	s.checking = false
	s.mu.Unlock()
}

func (s *Session) reject(ctx context.Context, err error) {
	switch {
	case errors.Is(err, ErrCheckInFlight):
		metrics.ObserveCheck(metrics.OutcomeBusy)
		s.presenter.Notify(i18n.T(ctx, "NotifyCheckRunning"), KindError)
	case errors.Is(err, ErrEmptyText):
		metrics.ObserveCheck(metrics.OutcomeRejected)
		s.presenter.Notify(i18n.T(ctx, "NotifyEmptyText"), KindError)
	case errors.Is(err, ErrTooShort):
		metrics.ObserveCheck(metrics.OutcomeRejected)
		s.presenter.Notify(i18n.T(ctx, "NotifyTooShort"), KindError)
	case errors.Is(err, ErrInputLocked):
		metrics.ObserveCheck(metrics.OutcomeRejected)
		s.presenter.Notify(i18n.T(ctx, "NotifyInputLocked"), KindError)
	}
}

// SaveDraft stores the current draft for the next session. A blank draft
// is not saved and reports saved=false.
func (s *Session) SaveDraft(ctx context.Context) (saved bool, err error) {
	if s.drafts == nil {
		return false, ErrNoDraftStore
	}
	text := s.Text()
	if strings.TrimSpace(text) == "" {
		return false, nil
	}
	if err := s.drafts.SaveDraft(text); err != nil {
		return false, fmt.Errorf("save draft: %w", err)
	}
	s.presenter.Notify(i18n.T(ctx, "NotifyDraftSaved"), KindSuccess)
	return true, nil
}

// ClearDraft forgets the saved draft. The text being edited is kept.
func (s *Session) ClearDraft(ctx context.Context) error {
	if s.drafts == nil {
		return ErrNoDraftStore
	}
	if err := s.drafts.ClearDraft(); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	s.presenter.Notify(i18n.T(ctx, "NotifyDraftCleared"), KindSuccess)
	return nil
}

// RestoreDraft loads the saved draft, if any, into the session.
func (s *Session) RestoreDraft() (model.TextStats, error) {
	if s.drafts == nil {
		return model.TextStats{}, ErrNoDraftStore
	}
	text, err := s.drafts.LoadDraft()
	if err != nil {
		return model.TextStats{}, fmt.Errorf("load draft: %w", err)
	}
	if text == "" {
		return model.TextStats{}, nil
	}
	stats, err := s.SetText(text)
	if err != nil {
		return stats, err
	}
	slog.Info("restored draft", "words", stats.Words, "chars", stats.Chars)
	return stats, nil
}
