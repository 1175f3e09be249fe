package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/IvanChernomyrdin/go-chat-token/internal/server/api"
	"github.com/IvanChernomyrdin/go-chat-token/internal/server/config"
	"github.com/IvanChernomyrdin/go-chat-token/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-chat-token/internal/server/service"
	"github.com/IvanChernomyrdin/go-chat-token/internal/shared/accesstoken"
	"github.com/IvanChernomyrdin/go-chat-token/internal/shared/logger"
)

func newTestRouter(t *testing.T, mutate func(*config.Config)) (http.Handler, *config.Config) {
	t.Helper()

	dir := t.TempDir()
	static := filepath.Join(dir, "public")
	if err := os.MkdirAll(static, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(static, "index.html"), []byte("<h1>chat</h1>"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// --- arrange: cfg ---
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1"},
		Twilio: config.TwilioConfig{
			AccountSID:    "AC1",
			APIKey:        "SK1",
			APISecret:     "s3cr3t",
			IPMServiceSID: "IS1",
		},
		Token:   config.TokenConfig{TTL: 60 * time.Second},
		Webhook: config.WebhookConfig{Key: "parse-key"},
		Static:  config.StaticConfig{Dir: static},
	}
	config.ApplyDefaults(cfg)
	if mutate != nil {
		mutate(cfg)
	}

	// --- arrange: real service + handler + router ---
	svc := service.NewServices(cfg)
	log := logger.New(logger.Options{File: filepath.Join(dir, "http.log")})
	h := api.NewHandler(svc, log)

	return NewRouter(h, cfg), cfg
}

func postToken(router http.Handler, key string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-Parse-Webhook-Key", key)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Token_OK(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	body, _ := json.Marshal(map[string]any{
		"user":   map[string]string{"username": "alice"},
		"params": map[string]string{"device": "phone1"},
	})
	rec := postToken(router, "parse-key", string(body))

	// --- assert ---
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d, body=%q", http.StatusOK, rec.Code, rec.Body.String())
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}

	var resp api.TokenResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success.Identity != "alice" {
		t.Fatalf("expected identity alice, got %q", resp.Success.Identity)
	}

	claims := &accesstoken.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(resp.Success.Token, claims); err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != "AC1" || claims.Issuer != "SK1" {
		t.Fatalf("unexpected sub/iss: %q/%q", claims.Subject, claims.Issuer)
	}
	if got := claims.ExpiresAt.Unix() - claims.NotBefore.Unix(); got != 60 {
		t.Fatalf("expected exp-nbf=60, got %d", got)
	}
	ipm, ok := claims.Grants["ip_messaging"].(map[string]any)
	if !ok {
		t.Fatalf("expected ip_messaging grant, got %#v", claims.Grants)
	}
	if ipm["service_sid"] != "IS1" || ipm["endpoint_id"] != "TwilioChat:alice:phone1" {
		t.Fatalf("unexpected ip_messaging grant: %#v", ipm)
	}
}

func TestRouter_Token_ForbiddenWithoutKey(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	for _, key := range []string{"", "wrong"} {
		rec := postToken(router, key, `{"user":{"username":"alice"},"params":{"device":"phone1"}}`)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected %d, got %d", http.StatusForbidden, rec.Code)
		}

		var body middleware.ErrorResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Status != http.StatusForbidden || body.Message != middleware.WebhookForbiddenMessage {
			t.Fatalf("unexpected body: %+v", body)
		}
	}
}

func TestRouter_Token_CustomHeader(t *testing.T) {
	router, _ := newTestRouter(t, func(c *config.Config) { c.Webhook.Header = "X-Hook" })

	req := httptest.NewRequest(http.MethodPost, "/token", bytes.NewBufferString(`{"user":{"username":"a"},"params":{"device":"d"}}`))
	req.Header.Set("X-Hook", "parse-key")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d, body=%q", http.StatusOK, rec.Code, rec.Body.String())
	}
}

func TestRouter_Token_RateLimited(t *testing.T) {
	router, _ := newTestRouter(t, func(c *config.Config) {
		c.Security.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.01, Burst: 1}
	})

	body := `{"user":{"username":"a"},"params":{"device":"d"}}`
	if rec := postToken(router, "parse-key", body); rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if rec := postToken(router, "parse-key", body); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected %d, got %d", http.StatusTooManyRequests, rec.Code)
	}
}

func TestRouter_ServesStatic(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "chat") {
		t.Fatalf("expected index.html body, got %q", rec.Body.String())
	}
}
