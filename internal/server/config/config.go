// Package config отвечает за:
// - чтение server.yaml
// - подстановку переменных окружения вида ${TWILIO_API_SECRET}
// - проставление дефолтов
// - валидацию (чтобы сервер не стартовал без ключей Twilio и webhook-секрета)
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/IvanChernomyrdin/go-chat-token/internal/shared/accesstoken"
)

// Config — корневая структура всего конфига сервера.
type Config struct {
	Env      string         `yaml:"env"` // dev|stage|prod
	Server   ServerConfig   `yaml:"server"`
	TLS      TLSConfig      `yaml:"tls"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Token    TokenConfig    `yaml:"token"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Static   StaticConfig   `yaml:"static"`
	Security SecurityConfig `yaml:"security"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig — настройки HTTP-сервера.
type ServerConfig struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"` // время на graceful shutdown
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`   // лимит размера тела запроса
}

// TLSConfig — настройки HTTPS (опционально, по умолчанию обычный HTTP).
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// TwilioConfig — учётные данные аккаунта и сервиса сообщений.
type TwilioConfig struct {
	AccountSID              string `yaml:"account_sid"`
	APIKey                  string `yaml:"api_key"`    // SID ключа подписи (iss)
	APISecret               string `yaml:"api_secret"` // секрет ключа подписи
	IPMServiceSID           string `yaml:"ipm_service_sid"`
	PushCredentialSID       string `yaml:"push_credential_sid"`
	DeploymentRoleSID       string `yaml:"deployment_role_sid"`
	ConfigurationProfileSID string `yaml:"configuration_profile_sid"`
}

// TokenConfig — как выписываем access-токены.
type TokenConfig struct {
	AppName   string        `yaml:"app_name"` // префикс endpoint_id
	TTL       time.Duration `yaml:"ttl"`
	Algorithm string        `yaml:"algorithm"` // HS256|HS384|HS512
}

// WebhookConfig — проверка того, что запрос пришёл от Parse.
type WebhookConfig struct {
	Header string `yaml:"header"`
	Key    string `yaml:"key"`
}

// StaticConfig — каталог со статикой клиента.
type StaticConfig struct {
	Dir string `yaml:"dir"`
}

// SecurityConfig — ограничения/защита.
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig — простой rate limit по IP.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

// LogConfig — настройки логирования (zap).
type LogConfig struct {
	Level string `yaml:"level"` // debug|info|warn|error
	File  string `yaml:"file"`
}

// Load читает YAML, подставляет переменные окружения вида ${VAR},
// затем парсит в структуру, проставляет дефолты и валидирует.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать конфиг: %w", err)
	}

	// api_secret: "${TWILIO_API_SECRET}" -> api_secret: "реальное_значение"
	expanded := ExpandEnvStrict(string(raw))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("не удалось распарсить yaml: %w", err)
	}

	ApplyDefaults(&cfg)
	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv собирает конфиг только из переменных окружения
// (TWILIO_ACCOUNT_SID, TWILIO_API_KEY, TWILIO_API_SECRET, TWILIO_IPM_SERVICE_SID,
// PARSE_WEBHOOK_KEY, PORT). Используется, когда server.yaml отсутствует.
func LoadFromEnv() (*Config, error) {
	cfg := Config{
		Twilio: TwilioConfig{
			AccountSID:              os.Getenv("TWILIO_ACCOUNT_SID"),
			APIKey:                  os.Getenv("TWILIO_API_KEY"),
			APISecret:               os.Getenv("TWILIO_API_SECRET"),
			IPMServiceSID:           os.Getenv("TWILIO_IPM_SERVICE_SID"),
			PushCredentialSID:       os.Getenv("TWILIO_PUSH_CREDENTIAL_SID"),
			ConfigurationProfileSID: os.Getenv("TWILIO_CONFIGURATION_PROFILE_SID"),
		},
		Webhook: WebhookConfig{
			Key: os.Getenv("PARSE_WEBHOOK_KEY"),
		},
	}

	ApplyDefaults(&cfg)
	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var envPlaceholder = regexp.MustCompile(`\$\{([A-Z0-9_]+)\}`)

// ExpandEnvStrict заменяет ${VAR} на значение из окружения.
// Если переменная не задана — оставляем ${VAR} как есть,
// а потом Validate() упадёт с понятной ошибкой.
func ExpandEnvStrict(s string) string {
	return envPlaceholder.ReplaceAllStringFunc(s, func(m string) string {
		sub := envPlaceholder.FindStringSubmatch(m)
		if len(sub) != 2 {
			return m
		}
		if val, ok := os.LookupEnv(sub[1]); ok {
			return val
		}
		return m
	})
}

// ApplyDefaults — дефолтные значения, если в yaml поле не задано.
func ApplyDefaults(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.ReadHeaderTimeout == 0 {
		cfg.Server.ReadHeaderTimeout = 5 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 1 << 20
	}
	if cfg.Token.AppName == "" {
		cfg.Token.AppName = "TwilioChat"
	}
	if cfg.Token.TTL == 0 {
		cfg.Token.TTL = accesstoken.DefaultTTL
	}
	if cfg.Token.Algorithm == "" {
		cfg.Token.Algorithm = accesstoken.DefaultAlgorithm
	}
	if cfg.Webhook.Header == "" {
		cfg.Webhook.Header = "X-Parse-Webhook-Key"
	}
	if cfg.Static.Dir == "" {
		cfg.Static.Dir = "public"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// ApplyEnvOverrides даёт возможность переопределять
// некоторые настройки через переменные окружения без ${...} в yaml.
// PORT=9090 переопределит server.port.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			c.Server.Port = p
		}
	}
}

// Validate проверяет, что конфиг заполнен корректно и безопасно.
// Если что-то не так — возвращаем ошибку и сервер НЕ стартует.
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host обязателен")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port некорректен: %d", c.Server.Port)
	}

	if c.TLS.Enabled && (c.TLS.CertFile == "" || c.TLS.KeyFile == "") {
		return errors.New("tls.cert_file и tls.key_file обязательны при tls.enabled=true")
	}

	required := []struct {
		name  string
		value string
	}{
		{"twilio.account_sid", c.Twilio.AccountSID},
		{"twilio.api_key", c.Twilio.APIKey},
		{"twilio.api_secret", c.Twilio.APISecret},
		{"twilio.ipm_service_sid", c.Twilio.IPMServiceSID},
		{"webhook.key", c.Webhook.Key},
	}
	for _, f := range required {
		v := strings.TrimSpace(f.value)
		if v == "" {
			return fmt.Errorf("%s обязателен", f.name)
		}
		// Если ${VAR} не подставился — значит переменная окружения не задана
		if envPlaceholder.MatchString(v) {
			return fmt.Errorf("%s содержит неподставленную переменную: %q", f.name, v)
		}
	}

	if !accesstoken.IsSupportedAlgorithm(c.Token.Algorithm) {
		return fmt.Errorf("token.algorithm должен быть одним из %s (сейчас %q)",
			strings.Join(accesstoken.Algorithms(), "|"), c.Token.Algorithm)
	}
	if c.Token.TTL < time.Second {
		return fmt.Errorf("token.ttl слишком маленький: %s", c.Token.TTL)
	}
	if strings.TrimSpace(c.Webhook.Header) == "" {
		return errors.New("webhook.header обязателен")
	}

	if c.Security.RateLimit.Enabled {
		if c.Security.RateLimit.RPS <= 0 {
			return errors.New("security.rate_limit.rps должен быть > 0 при включённом rate_limit")
		}
		if c.Security.RateLimit.Burst <= 0 {
			return errors.New("security.rate_limit.burst должен быть > 0 при включённом rate_limit")
		}
	}

	return nil
}

// Addr возвращает адрес для http.Server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
