package middleware

import (
	"crypto/subtle"
	"net/http"
)

// WebhookForbiddenMessage — текст ответа, если webhook-запрос не прошёл проверку.
const WebhookForbiddenMessage = "Parse webhook request could not be validated."

// WebhookAuth возвращает middleware, которое пропускает запрос дальше
// только если заголовок header совпадает с общим секретом key.
//
// Сравнение выполняется за постоянное время. При несовпадении (или пустом key)
// отвечает 403 со структурированным телом и не вызывает next.
func WebhookAuth(header, key string) func(http.Handler) http.Handler {
	expected := []byte(key)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get(header))

			if len(expected) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
				WriteError(w, http.StatusForbidden, WebhookForbiddenMessage)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
