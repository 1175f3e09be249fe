// HTTP-хендлер выдачи токена по webhook-запросу от Parse
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-chat-token/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-chat-token/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-chat-token/internal/shared/errors"
)

// TokenRequest описывает тело webhook-запроса Parse Cloud Code.
type TokenRequest struct {
	User   TokenRequestUser   `json:"user"`
	Params TokenRequestParams `json:"params"`
}

// TokenRequestUser — залогиненный пользователь Parse.
type TokenRequestUser struct {
	Username string `json:"username"`
}

// TokenRequestParams — параметры вызова функции.
type TokenRequestParams struct {
	Device string `json:"device"`
}

// TokenResponse описывает успешный ответ.
type TokenResponse struct {
	Success TokenSuccess `json:"success"`
}

// TokenSuccess — identity и подписанный токен.
type TokenSuccess struct {
	Identity string `json:"identity"`
	Token    string `json:"token"`
}

// IssueToken выдаёт access-токен чата пользователю из webhook-запроса.
//
// Проверка общего секрета выполняется раньше, в middleware.WebhookAuth.
//
// @Summary      Выдать токен чата
// @Tags         token
// @Accept       json
// @Produce      json
// @Param        X-Parse-Webhook-Key  header  string        true  "общий секрет webhook"
// @Param        body                 body    TokenRequest  true  "пользователь и устройство"
// @Success      200  {object}  TokenResponse
// @Failure      400  {object}  middleware.ErrorResponse
// @Failure      403  {object}  middleware.ErrorResponse
// @Failure      429  {object}  middleware.ErrorResponse
// @Failure      500  {object}  middleware.ErrorResponse
// @Router       /token [post]
//
// Ответы:
//   - 200 OK: токен выдан;
//   - 400 Bad Request: неверный JSON или пустые username/device;
//   - 500 Internal Server Error: ошибка сборки или подписи токена.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	if h.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBodyBytes)
	}

	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, serr.ErrBadJSON.Error())
		return
	}

	issued, err := h.Svc.Token.Issue(r.Context(), service.IssueRequest{
		Username: req.User.Username,
		Device:   req.Params.Device,
	})
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			middleware.WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput.Error())
		default:
			h.Log.Error("issue token failed", zap.Error(err))
			middleware.WriteError(w, http.StatusInternalServerError, serr.ErrInternal.Error())
		}
		return
	}

	h.Log.LogTokenIssued(issued.Identity, issued.EndpointID, issued.Algorithm)

	middleware.WriteJSON(w, http.StatusOK, TokenResponse{
		Success: TokenSuccess{
			Identity: issued.Identity,
			Token:    issued.Token,
		},
	})
}
