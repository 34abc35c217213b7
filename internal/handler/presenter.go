package handler

import (
	"sync"

	"github.com/samber/lo"

	"github.com/pavelanni/schreiben/internal/model"
	"github.com/pavelanni/schreiben/internal/session"
)

// maxNotifications bounds the queue between two polls of the page.
const maxNotifications = 16

// Notification is one toast shown by the page.
type Notification struct {
	Message string       `json:"message"`
	Kind    session.Kind `json:"kind"`
}

// IssueView is a grammar issue with its context split around the flagged span.
type IssueView struct {
	Category    string   `json:"category"`
	Message     string   `json:"message"`
	Before      string   `json:"before"`
	Flagged     string   `json:"flagged"`
	After       string   `json:"after"`
	Suggestions []string `json:"suggestions"`
}

func issueViews(issues []model.GrammarIssue) []IssueView {
	return lo.Map(issues, func(is model.GrammarIssue, _ int) IssueView {
		before, flagged, after := is.Span()
		return IssueView{
			Category:    is.Category,
			Message:     is.Message,
			Before:      before,
			Flagged:     flagged,
			After:       after,
			Suggestions: lo.Ternary(is.Suggestions == nil, []string{}, is.Suggestions),
		}
	})
}

// WebPresenter collects session output until the page polls for it.
type WebPresenter struct {
	mu            sync.Mutex
	display       string
	urgent        bool
	locked        bool
	notifications []Notification
	report        *model.ScoreReport
	issues        []IssueView
}

// NewWebPresenter creates a presenter showing display until the first tick.
func NewWebPresenter(display string) *WebPresenter {
	return &WebPresenter{display: display}
}

func (p *WebPresenter) ShowTime(display string, urgent bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.display = display
	p.urgent = urgent
}

func (p *WebPresenter) Notify(msg string, kind session.Kind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications = append(p.notifications, Notification{Message: msg, Kind: kind})
	if n := len(p.notifications); n > maxNotifications {
		p.notifications = p.notifications[n-maxNotifications:]
	}
}

func (p *WebPresenter) Render(report model.ScoreReport, issues []model.GrammarIssue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.report = &report
	p.issues = issueViews(issues)
}

func (p *WebPresenter) Lock() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.locked = true
}

// ClockView is the countdown as the presenter last showed it.
type ClockView struct {
	Display string
	Urgent  bool
	Locked  bool
}

// Clock returns the countdown state without draining notifications.
func (p *WebPresenter) Clock() ClockView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ClockView{Display: p.display, Urgent: p.urgent, Locked: p.locked}
}

// Snapshot is the presenter state handed to the page.
type Snapshot struct {
	Display       string             `json:"display"`
	Urgent        bool               `json:"urgent"`
	Locked        bool               `json:"locked"`
	Notifications []Notification     `json:"notifications"`
	Report        *model.ScoreReport `json:"report,omitempty"`
	Issues        []IssueView        `json:"issues,omitempty"`
}

// Drain returns the current state and empties the notification queue.
func (p *WebPresenter) Drain() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := Snapshot{
		Display:       p.display,
		Urgent:        p.urgent,
		Locked:        p.locked,
		Notifications: p.notifications,
		Report:        p.report,
		Issues:        p.issues,
	}
	if s.Notifications == nil {
		s.Notifications = []Notification{}
	}
	p.notifications = nil
	return s
}
