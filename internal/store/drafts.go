package store

import (
	"database/sql"
	"log/slog"
	"time"
)

// DraftKey is the key the essay draft is saved under.
const DraftKey = "b2_essay_text"

// SetValue upserts a key-value pair in the drafts table.
func (s *Store) SetValue(key, value string) error {
	now := time.Now()
	_, err := s.db.Exec(
		`INSERT INTO drafts (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = ?`,
		key, value, now, value, now,
	)
	return err
}

// GetValue returns the value for a key.
// Returns empty string and nil error if the key is missing.
func (s *Store) GetValue(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM drafts WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// DeleteValue removes a key. Missing keys are not an error.
func (s *Store) DeleteValue(key string) error {
	_, err := s.db.Exec(`DELETE FROM drafts WHERE key = ?`, key)
	return err
}

// SaveDraft stores the essay text for the next session.
func (s *Store) SaveDraft(text string) error {
	if err := s.SetValue(DraftKey, text); err != nil {
		slog.Error("failed to save draft", "error", err)
		return err
	}
	slog.Info("saved draft", "chars", len([]rune(text)))
	return nil
}

// LoadDraft returns the saved essay text, or "" if none was saved.
func (s *Store) LoadDraft() (string, error) {
	return s.GetValue(DraftKey)
}

// ClearDraft forgets the saved essay text.
func (s *Store) ClearDraft() error {
	return s.DeleteValue(DraftKey)
}
