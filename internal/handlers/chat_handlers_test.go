package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/daryakuznetsova/finhorizon/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatHandlerAsksAndCaches(t *testing.T) {
	calls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/chat", r.URL.Path)
		w.Write([]byte(`{"answer": "сначала подушка безопасности"}`))
	}))
	defer upstream.Close()
	t.Setenv("AI_API_URL", upstream.URL)

	handler := ChatHandler()

	ask := func() models.ChatMessage {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/analytics/chat", strings.NewReader(`{"question": "с чего начать копить?"}`))
		req.Header.Set("X-User-ID", "41")
		handler(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp models.ChatMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	first := ask()
	assert.Equal(t, "сначала подушка безопасности", first.Answer)
	assert.False(t, first.Cached)

	second := ask()
	assert.True(t, second.Cached, "повторный вопрос должен отдаваться из кэша")
	assert.Equal(t, 1, calls, "внешний сервис вызывается один раз")
}

func TestChatHandlerEmptyQuestion(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analytics/chat", strings.NewReader(`{"question": "   "}`))
	req.Header.Set("X-User-ID", "42")

	ChatHandler()(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatHandlerUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer upstream.Close()
	t.Setenv("AI_API_URL", upstream.URL)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analytics/chat", strings.NewReader(`{"question": "вопрос без кэша"}`))
	req.Header.Set("X-User-ID", "43")

	ChatHandler()(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
