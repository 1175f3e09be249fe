package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-chat-token/internal/shared/accesstoken"
)

// issuedAt — момент выдачи токенов в тестах
var issuedAt = time.Unix(1_700_000_000, 0)

// signedToken выпускает настоящий JWT, как это делает сервер.
func signedToken(t *testing.T, identity string) string {
	t.Helper()

	at, err := accesstoken.New("AC1", "SK1", []byte("s3cr3t"), time.Hour)
	require.NoError(t, err)
	at.Identity = identity
	at.Now = func() time.Time { return issuedAt }

	token, err := at.ToJWT("")
	require.NoError(t, err)
	return token
}

// tokenServer поднимает httptest-сервер с единственным маршрутом /token.
func tokenServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", h)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}
