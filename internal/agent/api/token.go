// В этом файле описан метод клиента для получения токена чата через webhook сервера.
package api

// DefaultWebhookHeader — заголовок, в котором сервер ожидает общий секрет.
const DefaultWebhookHeader = "X-Parse-Webhook-Key"

// TokenRequest повторяет тело запроса, которое отправляет Parse Cloud Code.
type TokenRequest struct {
	User   TokenUser   `json:"user"`
	Params TokenParams `json:"params"`
}

// TokenUser — пользователь, для которого запрашивается токен.
type TokenUser struct {
	Username string `json:"username"`
}

// TokenParams — параметры вызова.
type TokenParams struct {
	Device string `json:"device"`
}

// TokenResponse описывает ответ сервера при успешной выдаче токена.
type TokenResponse struct {
	Success struct {
		Identity string `json:"identity"`
		Token    string `json:"token"`
	} `json:"success"`
}

// FetchToken запрашивает токен чата для пользователя и устройства.
//
// Метод отправляет POST запрос на /token, передавая webhookKey в заголовке header
// (если header пустой, используется DefaultWebhookHeader).
func (c *Client) FetchToken(username, device, webhookKey, header string) (TokenResponse, error) {
	if header == "" {
		header = DefaultWebhookHeader
	}

	var resp TokenResponse
	err := c.PostJSON("/token", TokenRequest{
		User:   TokenUser{Username: username},
		Params: TokenParams{Device: device},
	}, &resp, map[string]string{header: webhookKey})
	return resp, err
}
