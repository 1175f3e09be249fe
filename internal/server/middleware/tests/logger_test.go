package tests

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-chat-token/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-chat-token/internal/shared/logger"
)

// Статус по умолчанию и размер
func TestResponseWriter_Write_DefaultStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &middleware.ResponseWriter{ResponseWriter: rr}

	body := []byte("hello")
	n, err := w.Write(body)

	require.NoError(t, err)
	require.Equal(t, len(body), n)
	require.Equal(t, http.StatusOK, w.Status)
	require.Equal(t, len(body), w.Size)
}

// вспомогательная функция
func testHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}

func testLogger(t *testing.T) (*logger.HTTPLogger, string) {
	t.Helper()
	p := filepath.Join(t.TempDir(), "http.log")
	return logger.New(logger.Options{File: p}), p
}

// проверка корректного прохода статуса и тела через мидлу
func TestLoggerMiddleware(t *testing.T) {
	l, p := testLogger(t)
	mw := middleware.LoggerMiddleware(l)

	handler := mw(testHandler(http.StatusTeapot, "tea"))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusTeapot, rr.Code)
	require.Equal(t, "tea", rr.Body.String())
	require.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))

	_ = l.Sync()
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	require.Contains(t, string(b), "/test")
	require.Contains(t, string(b), "418")
}

func TestLoggerMiddleware_KeepsIncomingRequestID(t *testing.T) {
	l, _ := testLogger(t)
	handler := middleware.LoggerMiddleware(l)(testHandler(http.StatusOK, "ok"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, "req-42", rr.Header().Get(middleware.RequestIDHeader))
}
