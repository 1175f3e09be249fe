// Package errors содержит общие доменные ошибки приложения.
//
// Ошибки возвращаются из accesstoken и service слоёв (обёрнутые через %w)
// и маппятся на HTTP-статусы в api слое.
package errors

import "errors"

var (
	// Входные данные невалидны (пустой username/device и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Webhook-запрос не прошёл проверку общего секрета
	ErrForbidden = errors.New("forbidden")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Превышен лимит запросов
	ErrTooManyRequests = errors.New("too many requests")
	// ожидаемая ошибка (для тестов)
	ErrExpectedError = errors.New("expected error")
)

// только для access-токенов
var (
	// не передан обязательный параметр конструктора токена
	ErrMissingParameter = errors.New("missing parameter")
	// алгоритм подписи не входит в allow-list
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
)
