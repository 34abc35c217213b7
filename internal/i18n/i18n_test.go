package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	require.NoError(t, Init(lang))
	return WithLocalizer(context.Background(), NewLocalizer(lang))
}

func TestTranslateGerman(t *testing.T) {
	ctx := initLang(t, "de")

	assert.Equal(t, "⏰ Zeit abgelaufen!", T(ctx, "NotifyTimeUp"))
	assert.Equal(t, "📝 Inhalt & Aufgabe:", T(ctx, "LabelContent"))
}

func TestFallbackWithoutLocalizer(t *testing.T) {
	require.NoError(t, Init(Lang))

	got := T(context.Background(), "NotifyFiveMinutes")
	assert.Equal(t, "⚠️ Nur noch 5 Minuten!", got)
}

func TestPluralTranslation(t *testing.T) {
	ctx := initLang(t, "de")

	assert.Equal(t, "1 Wort", Tp(ctx, "WordCount", 1))
	assert.Equal(t, "180 Wörter", Tp(ctx, "WordCount", 180))
}

func TestTemplateDataTranslation(t *testing.T) {
	ctx := initLang(t, "de")

	got := Td(ctx, "ScoreOutOf", map[string]any{"Score": 37, "Max": 45})
	assert.Equal(t, "37/45", got)
}

func TestMissingKey(t *testing.T) {
	ctx := initLang(t, "de")

	assert.Equal(t, "NonExistentKey", T(ctx, "NonExistentKey"))
}

func TestInvalidLanguage(t *testing.T) {
	assert.Error(t, Init("not a language!"))
}

func TestMiddleware(t *testing.T) {
	require.NoError(t, Init(Lang))

	var got string
	h := Middleware(Lang)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = T(r.Context(), "Words")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "Wörter:", got)
}
