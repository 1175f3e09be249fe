// Package api реализует HTTP-слой сервера выдачи токенов.
//
// Пакет отвечает за:
//   - обработку webhook-запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/accesstoken) в HTTP-коды и сообщения.
package api

import (
	"github.com/IvanChernomyrdin/go-chat-token/internal/server/service"
	"github.com/IvanChernomyrdin/go-chat-token/internal/shared/logger"
)

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (выдача токенов);
//   - Log: логгер для записи событий и ошибок;
//   - MaxBodyBytes: лимит размера тела запроса (0 — без лимита).
type Handler struct {
	Svc          *service.Services
	Log          *logger.HTTPLogger
	MaxBodyBytes int64
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, log *logger.HTTPLogger) *Handler {
	return &Handler{
		Svc: svc,
		Log: log,
	}
}
