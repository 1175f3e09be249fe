package middleware

import (
	"encoding/json"
	"net/http"
)

// Каждый ответ отдаётся в JSON
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// ErrorResponse — структурированное тело ошибки.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// WriteJSON пишет JSON-ответ с указанным статусом и запрещает кэширование
// (ответы содержат токены).
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError пишет ошибку в формате {"status": ..., "message": ...}.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Status: status, Message: message})
}
