package service

import (
	"context"
	"strings"
	"time"

	"github.com/IvanChernomyrdin/go-chat-token/internal/server/config"
	"github.com/IvanChernomyrdin/go-chat-token/internal/shared/accesstoken"
	serr "github.com/IvanChernomyrdin/go-chat-token/internal/shared/errors"
)

// TokenService собирает грант сервиса сообщений для пользователя
// и подписывает access-токен ключом аккаунта.
type TokenService struct {
	accountSID string
	keySID     string
	secret     []byte

	serviceSID              string
	pushCredentialSID       string
	deploymentRoleSID       string
	configurationProfileSID string

	appName   string
	ttl       time.Duration
	algorithm string

	// now — источник времени для токенов (nil = time.Now)
	now func() time.Time
}

// NewTokenService создаёт TokenService с настройками из конфига.
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		accountSID: cfg.Twilio.AccountSID,
		keySID:     cfg.Twilio.APIKey,
		secret:     []byte(cfg.Twilio.APISecret),

		serviceSID:              cfg.Twilio.IPMServiceSID,
		pushCredentialSID:       cfg.Twilio.PushCredentialSID,
		deploymentRoleSID:       cfg.Twilio.DeploymentRoleSID,
		configurationProfileSID: cfg.Twilio.ConfigurationProfileSID,

		appName:   cfg.Token.AppName,
		ttl:       cfg.Token.TTL,
		algorithm: cfg.Token.Algorithm,
	}
}

// WithClock подменяет источник времени (для тестов).
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// EndpointID строит уникальный идентификатор клиента на устройстве:
// "<app>:<identity>:<device>".
func EndpointID(appName, identity, device string) string {
	return appName + ":" + identity + ":" + device
}

// Issue выдаёт токен пользователю req.Username на устройстве req.Device.
//
// Ошибки:
//   - ErrInvalidInput, если username или device пустые
//   - ErrMissingParameter / ErrUnsupportedAlgorithm из accesstoken
//   - ошибки подписи возвращаются как есть
func (s *TokenService) Issue(ctx context.Context, req IssueRequest) (IssuedToken, error) {
	if err := ctx.Err(); err != nil {
		return IssuedToken{}, err
	}

	identity := strings.TrimSpace(req.Username)
	device := strings.TrimSpace(req.Device)
	if identity == "" || device == "" {
		return IssuedToken{}, serr.ErrInvalidInput
	}

	endpointID := EndpointID(s.appName, identity, device)

	token, err := accesstoken.New(s.accountSID, s.keySID, s.secret, s.ttl)
	if err != nil {
		return IssuedToken{}, err
	}
	token.Now = s.now
	token.Identity = identity

	// грант на чат от имени пользователя на конкретном устройстве
	token.AddGrant(accesstoken.NewIPMessagingGrant(accesstoken.IPMessagingGrantOptions{
		ServiceSID:        s.serviceSID,
		EndpointID:        endpointID,
		DeploymentRoleSID: s.deploymentRoleSID,
		PushCredentialSID: s.pushCredentialSID,
	}))
	if s.configurationProfileSID != "" {
		token.AddGrant(accesstoken.NewConversationsGrant(accesstoken.ConversationsGrantOptions{
			ConfigurationProfileSID: s.configurationProfileSID,
		}))
	}

	jwt, err := token.ToJWT(s.algorithm)
	if err != nil {
		return IssuedToken{}, err
	}

	alg := s.algorithm
	if alg == "" {
		alg = accesstoken.DefaultAlgorithm
	}

	return IssuedToken{
		Identity:   identity,
		EndpointID: endpointID,
		Algorithm:  alg,
		Token:      jwt,
	}, nil
}
