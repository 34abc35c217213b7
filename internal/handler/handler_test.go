package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelanni/schreiben/internal/i18n"
	"github.com/pavelanni/schreiben/internal/model"
	"github.com/pavelanni/schreiben/internal/session"
)

type fakeChecker struct {
	calls  atomic.Int32
	issues []model.GrammarIssue
	err    error
	block  chan struct{}
}

func (f *fakeChecker) Check(ctx context.Context, _ string) ([]model.GrammarIssue, error) {
	f.calls.Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.issues, f.err
}

type memDrafts struct {
	text     string
	clearErr error
}

func (m *memDrafts) SaveDraft(text string) error { m.text = text; return nil }
func (m *memDrafts) LoadDraft() (string, error) { return m.text, nil }

func (m *memDrafts) ClearDraft() error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.text = ""
	return nil
}

type testEnv struct {
	server  *httptest.Server
	session *session.Session
	view    *WebPresenter
}

func newTestEnv(t *testing.T, checker *fakeChecker, drafts session.DraftStore, d time.Duration) *testEnv {
	t.Helper()
	view := NewWebPresenter(session.FormatRemaining(int(d / time.Second)))
	sess := session.New(session.Config{Duration: d, MinWords: session.DefaultMinWords}, checker, view, drafts)

	r := chi.NewRouter()
	r.Use(i18n.Middleware(i18n.Lang))
	New(sess, view).Routes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testEnv{server: srv, session: sess, view: view}
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, e.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func textBody(t *testing.T, text string) string {
	t.Helper()
	b, err := json.Marshal(map[string]string{"text": text})
	require.NoError(t, err)
	return string(b)
}

func essay(words int) string {
	return "Sehr geehrte Damen und Herren, " + strings.Repeat("wort ", words-8) + "Mit freundlichen Grüßen"
}

func TestIndexPage(t *testing.T) {
	env := newTestEnv(t, &fakeChecker{}, nil, 30*time.Minute)

	resp, err := http.Get(env.server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	var sb strings.Builder
	_, err = io.Copy(&sb, resp.Body)
	require.NoError(t, err)
	page := sb.String()
	assert.Contains(t, page, "B2 Schreiben")
	assert.Contains(t, page, "30:00")
	assert.Contains(t, page, "Text überprüfen")
	assert.Contains(t, page, "0 Wörter")
	assert.Contains(t, page, `<script id="labels" type="application/json">`)
	assert.Contains(t, page, `<span id="timer">30:00</span>`)
	assert.Contains(t, page, `<textarea id="essay">`)
}

func TestIndexPageShowsPresenterState(t *testing.T) {
	env := newTestEnv(t, &fakeChecker{}, nil, 30*time.Minute)
	_, err := env.session.SetText("Liebe Anna")
	require.NoError(t, err)
	env.view.ShowTime("04:59", true)
	env.view.Lock()

	resp, err := http.Get(env.server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	var sb strings.Builder
	_, err = io.Copy(&sb, resp.Body)
	require.NoError(t, err)
	page := sb.String()
	assert.Contains(t, page, `<span id="timer" data-urgent>04:59</span>`)
	assert.Contains(t, page, `<textarea id="essay" disabled>Liebe Anna</textarea>`)
	assert.Contains(t, page, "2 Wörter")
}

func TestSetTextAndPoll(t *testing.T) {
	env := newTestEnv(t, &fakeChecker{}, nil, 30*time.Minute)

	resp, body := env.do(t, http.MethodPut, "/api/text", textBody(t, "Hallo liebe Anna"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, body["words"])
	assert.EqualValues(t, 16, body["chars"])
	assert.Equal(t, "3 Wörter", body["words_label"])

	resp, body = env.do(t, http.MethodGet, "/api/session", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "30:00", body["remaining"])
	assert.Equal(t, false, body["locked"])
	assert.EqualValues(t, 3, body["words"])
	assert.Equal(t, "3 Wörter", body["words_label"])
	assert.Empty(t, body["notifications"])
	assert.NotContains(t, body, "report")
}

func TestSetTextBadBody(t *testing.T) {
	env := newTestEnv(t, &fakeChecker{}, nil, 30*time.Minute)
	resp, _ := env.do(t, http.MethodPut, "/api/text", "{not json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckRejectsEmptyAndShortText(t *testing.T) {
	checker := &fakeChecker{}
	env := newTestEnv(t, checker, nil, 30*time.Minute)

	resp, body := env.do(t, http.MethodPost, "/api/check", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "⚠️ Bitte schreiben Sie zuerst einen Text!", body["error"])

	env.do(t, http.MethodPut, "/api/text", textBody(t, strings.Repeat("wort ", 49)))
	resp, body = env.do(t, http.MethodPost, "/api/check", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "⚠️ Text ist zu kurz für eine sinnvolle Überprüfung!", body["error"])

	assert.Zero(t, checker.calls.Load())
}

func TestCheckScores(t *testing.T) {
	checker := &fakeChecker{issues: []model.GrammarIssue{{
		Category:    "Grammatik",
		Message:     "Falscher Artikel.",
		Context:     "Ich habe ein gute Idee.",
		Offset:      9,
		Length:      3,
		Suggestions: []string{"eine"},
	}}}
	env := newTestEnv(t, checker, nil, 30*time.Minute)

	env.do(t, http.MethodPut, "/api/text", textBody(t, essay(200)))
	resp, body := env.do(t, http.MethodPost, "/api/check", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	report := body["report"].(map[string]any)
	assert.EqualValues(t, 12, report["content"])
	assert.EqualValues(t, 12, report["grammar"])
	assert.EqualValues(t, 200, report["word_count"])
	issues := body["issues"].([]any)
	require.Len(t, issues, 1)
	issue := issues[0].(map[string]any)
	assert.Equal(t, "ein", issue["flagged"])
	assert.Equal(t, "Ich habe ", issue["before"])

	_, body = env.do(t, http.MethodGet, "/api/session", "")
	assert.Contains(t, body, "report")
	notes := body["notifications"].([]any)
	require.NotEmpty(t, notes)
	last := notes[len(notes)-1].(map[string]any)
	assert.Equal(t, "✓ Überprüfung abgeschlossen!", last["message"])
	assert.Equal(t, "success", last["kind"])

	_, body = env.do(t, http.MethodGet, "/api/session", "")
	assert.Empty(t, body["notifications"])
}

func TestCheckFailed(t *testing.T) {
	checker := &fakeChecker{err: errors.New("connection refused")}
	env := newTestEnv(t, checker, nil, 30*time.Minute)

	env.do(t, http.MethodPut, "/api/text", textBody(t, essay(120)))
	resp, body := env.do(t, http.MethodPost, "/api/check", "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body["error"], "Fehler bei der Überprüfung")

	_, body = env.do(t, http.MethodGet, "/api/session", "")
	assert.NotContains(t, body, "report")
}

func TestCheckInFlight(t *testing.T) {
	checker := &fakeChecker{block: make(chan struct{})}
	env := newTestEnv(t, checker, nil, 30*time.Minute)
	env.do(t, http.MethodPut, "/api/text", textBody(t, essay(120)))

	done := make(chan int, 1)
	go func() {
		resp, err := http.Post(env.server.URL+"/api/check", "application/json", nil)
		if err != nil {
			done <- 0
			return
		}
		resp.Body.Close()
		done <- resp.StatusCode
	}()

	require.Eventually(t, func() bool { return env.session.State().Checking }, 2*time.Second, 5*time.Millisecond)

	resp, _ := env.do(t, http.MethodPost, "/api/check", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	close(checker.block)
	assert.Equal(t, http.StatusOK, <-done)
	assert.EqualValues(t, 1, checker.calls.Load())
}

func TestLockedAfterExpiry(t *testing.T) {
	checker := &fakeChecker{}
	env := newTestEnv(t, checker, nil, time.Second)
	env.do(t, http.MethodPut, "/api/text", textBody(t, essay(120)))

	ctx := i18n.WithLocalizer(context.Background(), i18n.NewLocalizer(i18n.Lang))
	assert.True(t, env.session.Tick(ctx))
	assert.False(t, env.session.Tick(ctx))

	resp, body := env.do(t, http.MethodPut, "/api/text", textBody(t, "neu"))
	assert.Equal(t, http.StatusLocked, resp.StatusCode)
	assert.EqualValues(t, 120, body["stats"].(map[string]any)["words"])

	resp, _ = env.do(t, http.MethodPost, "/api/check", "")
	assert.Equal(t, http.StatusLocked, resp.StatusCode)
	assert.Zero(t, checker.calls.Load())

	_, body = env.do(t, http.MethodGet, "/api/session", "")
	assert.Equal(t, true, body["locked"])
	assert.Equal(t, "00:00", body["remaining"])
	assert.Contains(t, notificationMessages(body["notifications"]), "⏰ Zeit abgelaufen!")
}

func notificationMessages(v any) []string {
	var out []string
	for _, n := range v.([]any) {
		out = append(out, n.(map[string]any)["message"].(string))
	}
	return out
}

func TestSaveDraft(t *testing.T) {
	env := newTestEnv(t, &fakeChecker{}, nil, 30*time.Minute)
	resp, _ := env.do(t, http.MethodPost, "/api/draft", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	drafts := &memDrafts{}
	env = newTestEnv(t, &fakeChecker{}, drafts, 30*time.Minute)

	resp, body := env.do(t, http.MethodPost, "/api/draft", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["saved"])

	env.do(t, http.MethodPut, "/api/text", textBody(t, "Liebe Anna, wie geht es dir?"))
	resp, body = env.do(t, http.MethodPost, "/api/draft", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["saved"])
	assert.Equal(t, "Liebe Anna, wie geht es dir?", drafts.text)
}

func TestSessionServesPresenterClock(t *testing.T) {
	env := newTestEnv(t, &fakeChecker{}, nil, 30*time.Minute)
	env.view.ShowTime("01:59", true)

	_, body := env.do(t, http.MethodGet, "/api/session", "")
	assert.Equal(t, "01:59", body["remaining"])
	assert.Equal(t, true, body["urgent"])
	assert.Equal(t, false, body["locked"])

	env.view.Lock()
	_, body = env.do(t, http.MethodGet, "/api/session", "")
	assert.Equal(t, "01:59", body["remaining"])
	assert.Equal(t, true, body["locked"])

	_, body = env.do(t, http.MethodPut, "/api/text", textBody(t, "eins"))
	assert.Equal(t, "1 Wort", body["words_label"])
}

func TestDiscardDraft(t *testing.T) {
	env := newTestEnv(t, &fakeChecker{}, nil, 30*time.Minute)
	resp, _ := env.do(t, http.MethodDelete, "/api/draft", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	drafts := &memDrafts{text: "alter Entwurf"}
	env = newTestEnv(t, &fakeChecker{}, drafts, 30*time.Minute)
	env.do(t, http.MethodPut, "/api/text", textBody(t, "Liebe Anna"))

	resp, _ = env.do(t, http.MethodDelete, "/api/draft", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, drafts.text)
	assert.Equal(t, "Liebe Anna", env.session.Text())

	_, body := env.do(t, http.MethodGet, "/api/session", "")
	assert.Contains(t, notificationMessages(body["notifications"]), "✓ Gespeicherter Text wurde gelöscht!")

	drafts.clearErr = errors.New("disk full")
	resp, _ = env.do(t, http.MethodDelete, "/api/draft", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, &fakeChecker{}, nil, 30*time.Minute)
	env.do(t, http.MethodPost, "/api/check", "")

	resp, err := http.Get(env.server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sb strings.Builder
	_, err = io.Copy(&sb, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), `schreiben_checks_total{outcome="rejected"}`)
}

func TestWebPresenterBoundsNotifications(t *testing.T) {
	p := NewWebPresenter("30:00")
	for i := range maxNotifications + 5 {
		p.Notify(strings.Repeat("x", i+1), session.KindSuccess)
	}
	p.ShowTime("01:59", true)
	p.Lock()

	snap := p.Drain()
	require.Len(t, snap.Notifications, maxNotifications)
	assert.Equal(t, strings.Repeat("x", 6), snap.Notifications[0].Message)
	assert.Equal(t, "01:59", snap.Display)
	assert.True(t, snap.Urgent)
	assert.True(t, snap.Locked)
	assert.Nil(t, snap.Report)

	assert.Empty(t, p.Drain().Notifications)
}

func TestWebPresenterClockDoesNotDrain(t *testing.T) {
	p := NewWebPresenter("30:00")
	assert.Equal(t, ClockView{Display: "30:00"}, p.Clock())

	p.Notify("gespeichert", session.KindSuccess)
	p.ShowTime("04:00", true)
	assert.Equal(t, ClockView{Display: "04:00", Urgent: true}, p.Clock())
	assert.Len(t, p.Drain().Notifications, 1)
}

func TestIssueViewsKeepEmptySuggestions(t *testing.T) {
	views := issueViews([]model.GrammarIssue{{Context: "abc", Offset: 1, Length: 1}})
	require.Len(t, views, 1)
	assert.Equal(t, IssueView{Before: "a", Flagged: "b", After: "c", Suggestions: []string{}}, views[0])
}

var _ session.Presenter = (*WebPresenter)(nil)
