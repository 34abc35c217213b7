package session

import "github.com/pavelanni/schreiben/internal/model"

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Presenter shows session output to the student. Implementations must be
// safe for use from the clock goroutine and request handlers at once.
type Presenter interface {
	ShowTime(display string, urgent bool)
	Notify(msg string, kind Kind)
	Render(report model.ScoreReport, issues []model.GrammarIssue)
	// Lock disables editing and checking in the UI once time is up.
	Lock()
}

// DraftStore keeps the single saved draft between sessions.
type DraftStore interface {
	SaveDraft(text string) error
	LoadDraft() (string, error)
	ClearDraft() error
}

// NopPresenter discards all output.
type NopPresenter struct{}

func (NopPresenter) ShowTime(string, bool) {}
func (NopPresenter) Notify(string, Kind) {}
func (NopPresenter) Render(model.ScoreReport, []model.GrammarIssue) {}
func (NopPresenter) Lock() {}
