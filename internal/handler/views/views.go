package views

import (
	"context"

	"github.com/pavelanni/schreiben/internal/i18n"
)

// IndexData is the state the exam page starts from before its first poll.
type IndexData struct {
	Text    string
	Display string
	Urgent  bool
	Locked  bool
	Words   int
	Chars   int
}

// labelIDs are the UI strings the page script renders reports with.
var labelIDs = []string{
	"NoErrors", "TotalScore", "Rating",
	"LabelContent", "LabelGrammar", "LabelCoherence", "LabelFormat",
	"ErrorsFound", "ErrorsHeading", "Words", "Chars", "MinWordsHint",
	"Suggestion", "CheckFailedTitle", "CheckFailedDetail",
}

// Labels returns the translated script labels keyed by message ID.
func Labels(ctx context.Context) map[string]string {
	labels := make(map[string]string, len(labelIDs))
	for _, id := range labelIDs {
		labels[id] = i18n.T(ctx, id)
	}
	return labels
}
