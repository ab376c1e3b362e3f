package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/caviar-shop/internal/infrastructure/storage"
	"github.com/yourusername/caviar-shop/internal/usecase"
	"go.uber.org/zap/zaptest"
)

type fakeMessenger struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeMessenger) Send(ctx context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

func newTestServer(t *testing.T, messenger *fakeMessenger) http.Handler {
	t.Helper()
	logger := zaptest.NewLogger(t)
	journal := storage.NewMemoryLeadJournal(10)
	var relay usecase.RelayUseCase
	if messenger == nil {
		relay = usecase.NewRelayUseCase(nil, journal, logger)
	} else {
		relay = usecase.NewRelayUseCase(messenger, journal, logger)
	}
	return NewRouter(NewLeadHandler(relay, logger))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestServeLead_Options(t *testing.T) {
	srv := newTestServer(t, &fakeMessenger{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
}

func TestServeLead_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &fakeMessenger{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method not allowed", decodeBody(t, rec)["error"])
}

func TestServeLead_NotConfigured(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"type":"contact"}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Telegram credentials not configured", decodeBody(t, rec)["error"])
}

func TestServeLead_MalformedJSON(t *testing.T) {
	messenger := &fakeMessenger{}
	srv := newTestServer(t, messenger)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "malformed lead payload")
	assert.Empty(t, messenger.sent)
}

func TestServeLead_Success(t *testing.T) {
	messenger := &fakeMessenger{}
	srv := newTestServer(t, messenger)

	payload := `{"type":"order","products":[{"name":"Кета премиум","quantity":2,"price":11000}],"total":11000,"contact":"Иван, +7 900"}`
	for _, path := range []string{"/", "/api/leads"} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload)))

		assert.Equal(t, http.StatusOK, rec.Code, path)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Sent to Telegram", body["message"])
	}

	require.Len(t, messenger.sent, 2)
	assert.Contains(t, messenger.sent[0], "🛒 Новый заказ!")
	assert.Contains(t, messenger.sent[0], "• Кета премиум - 2 шт. (11 000 ₽)")
	assert.Contains(t, messenger.sent[0], "💰 Итого: 11 000 ₽")
}

func TestServeLead_SendFailure(t *testing.T) {
	srv := newTestServer(t, &fakeMessenger{err: errors.New("telegram down")})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"type":"contact","name":"A"}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "telegram down", decodeBody(t, rec)["error"])
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
