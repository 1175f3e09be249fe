// Package service содержит бизнес-логику приложения (выдача токенов для чата).
// Это прослойка между HTTP-обработчиками (api) и сборкой токенов (accesstoken).
package service

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"

	"github.com/IvanChernomyrdin/go-chat-token/internal/server/config"
)

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Token TokenIssuer
}

// NewServices собирает все сервисы приложения.
func NewServices(cfg *config.Config) *Services {
	return &Services{
		Token: NewTokenService(cfg),
	}
}

// IssueRequest — данные пользователя из webhook-запроса.
type IssueRequest struct {
	Username string
	Device   string
}

// IssuedToken — результат выдачи токена.
type IssuedToken struct {
	Identity   string
	EndpointID string
	Algorithm  string
	Token      string
}

// TokenIssuer выдаёт подписанный токен доступа к чату.
type TokenIssuer interface {
	Issue(ctx context.Context, req IssueRequest) (IssuedToken, error)
}
