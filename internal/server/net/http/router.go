// Package http реализует маршрутизацию HTTP-слоя сервера выдачи токенов.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - проверку webhook-секрета и rate limit для выдачи токенов;
//   - раздачу статики клиента.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-chat-token/internal/server/api"
	"github.com/IvanChernomyrdin/go-chat-token/internal/server/config"
	"github.com/IvanChernomyrdin/go-chat-token/internal/server/middleware"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - middleware логирования для всех запросов;
//   - POST /token за rate limit и проверкой заголовка webhook-секрета;
//   - swagger UI на /swagger/*;
//   - статику из cfg.Static.Dir на все остальные GET-пути.
func NewRouter(h *api.Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// webhook от Parse
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.Security.RateLimit))
		r.Use(middleware.WebhookAuth(cfg.Webhook.Header, cfg.Webhook.Key))
		r.Post("/token", h.IssueToken)
	})

	// статика клиента
	r.Handle("/*", http.FileServer(http.Dir(cfg.Static.Dir)))

	return r
}
