package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pavelanni/schreiben/internal/handler/views"
	"github.com/pavelanni/schreiben/internal/i18n"
	"github.com/pavelanni/schreiben/internal/model"
	"github.com/pavelanni/schreiben/internal/session"
)

// maxBodyBytes caps request bodies; an exam essay is a few kilobytes.
const maxBodyBytes = 1 << 20

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	session *session.Session
	view    *WebPresenter
}

// New creates a new Handler. view must be the presenter the session reports to.
func New(s *session.Session, view *WebPresenter) *Handler {
	return &Handler{session: s, view: view}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Route("/api", func(api chi.Router) {
		api.Get("/session", h.handleSession)
		api.Put("/text", h.handleText)
		api.Post("/check", h.handleCheck)
		api.Post("/draft", h.handleDraft)
		api.Delete("/draft", h.handleDiscardDraft)
	})
	r.Handle("/metrics", promhttp.Handler())
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	clock := h.view.Clock()
	stats := h.session.Stats()
	data := views.IndexData{
		Text:    h.session.Text(),
		Display: clock.Display,
		Urgent:  clock.Urgent,
		Locked:  clock.Locked,
		Words:   stats.Words,
		Chars:   stats.Chars,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.IndexPage(data).Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

type sessionResponse struct {
	Remaining     string             `json:"remaining"`
	Urgent        bool               `json:"urgent"`
	Locked        bool               `json:"locked"`
	Checking      bool               `json:"checking"`
	Words         int                `json:"words"`
	WordsLabel    string             `json:"words_label"`
	Chars         int                `json:"chars"`
	Notifications []Notification     `json:"notifications"`
	Report        *model.ScoreReport `json:"report,omitempty"`
	Issues        []IssueView        `json:"issues,omitempty"`
}

// handleSession serves the clock as the presenter last showed it, and the
// draft counters from the session.
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	st := h.session.State()
	snap := h.view.Drain()
	writeJSON(w, http.StatusOK, sessionResponse{
		Remaining:     snap.Display,
		Urgent:        snap.Urgent,
		Locked:        snap.Locked,
		Checking:      st.Checking,
		Words:         st.Stats.Words,
		WordsLabel:    wordsLabel(r.Context(), st.Stats.Words),
		Chars:         st.Stats.Chars,
		Notifications: snap.Notifications,
		Report:        snap.Report,
		Issues:        snap.Issues,
	})
}

type textRequest struct {
	Text string `json:"text"`
}

type textResponse struct {
	Words      int    `json:"words"`
	WordsLabel string `json:"words_label"`
	Chars      int    `json:"chars"`
}

func wordsLabel(ctx context.Context, words int) string {
	return i18n.Tp(ctx, "WordCount", words)
}

func (h *Handler) handleText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stats, err := h.session.SetText(req.Text)
	if errors.Is(err, session.ErrInputLocked) {
		writeJSON(w, http.StatusLocked, map[string]any{
			"error": i18n.T(r.Context(), "NotifyInputLocked"),
			"stats": stats,
		})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, textResponse{
		Words:      stats.Words,
		WordsLabel: wordsLabel(r.Context(), stats.Words),
		Chars:      stats.Chars,
	})
}

type checkResponse struct {
	Report model.ScoreReport `json:"report"`
	Issues []IssueView       `json:"issues"`
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report, issues, err := h.session.Check(ctx)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, checkResponse{Report: report, Issues: issueViews(issues)})
	case errors.Is(err, session.ErrEmptyText):
		writeError(w, http.StatusUnprocessableEntity, i18n.T(ctx, "NotifyEmptyText"))
	case errors.Is(err, session.ErrTooShort):
		writeError(w, http.StatusUnprocessableEntity, i18n.T(ctx, "NotifyTooShort"))
	case errors.Is(err, session.ErrCheckInFlight):
		writeError(w, http.StatusConflict, i18n.T(ctx, "NotifyCheckRunning"))
	case errors.Is(err, session.ErrInputLocked):
		writeError(w, http.StatusLocked, i18n.T(ctx, "NotifyInputLocked"))
	case errors.Is(err, model.ErrCheckFailed):
		writeError(w, http.StatusBadGateway,
			i18n.T(ctx, "CheckFailedTitle")+" "+i18n.T(ctx, "CheckFailedDetail"))
	default:
		slog.Error("check failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) handleDraft(w http.ResponseWriter, r *http.Request) {
	saved, err := h.session.SaveDraft(r.Context())
	if errors.Is(err, session.ErrNoDraftStore) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		slog.Error("save draft", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": saved})
}

func (h *Handler) handleDiscardDraft(w http.ResponseWriter, r *http.Request) {
	err := h.session.ClearDraft(r.Context())
	if errors.Is(err, session.ErrNoDraftStore) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		slog.Error("clear draft", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
