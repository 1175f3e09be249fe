// Package config хранит последний полученный CLI-клиентом токен чата.
//
// Файл по умолчанию: ~/.chattoken/credentials.json (права 0600, директория 0700).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/IvanChernomyrdin/go-chat-token/internal/shared/accesstoken"
)

// Credentials — identity и токен, выданные сервером последним.
// ExpiresAt берётся из claim exp токена; нулевое значение — срок неизвестен.
type Credentials struct {
	Identity  string    `json:"identity"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// FromToken собирает Credentials из выданного токена.
//
// Подпись не проверяется: у клиента нет секрета, exp читается только для информации.
func FromToken(identity, token string) (*Credentials, error) {
	claims := &accesstoken.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	c := &Credentials{Identity: identity, Token: token}
	if claims.ExpiresAt != nil {
		c.ExpiresAt = claims.ExpiresAt.Time
	}
	return c, nil
}

// Expired сообщает, истёк ли токен к моменту now.
// Пустой токен считается истёкшим, неизвестный срок — нет.
func (c *Credentials) Expired(now time.Time) bool {
	if c.Token == "" {
		return true
	}
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// DefaultPath возвращает путь к файлу в домашней директории пользователя.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".chattoken", "credentials.json"), nil
}

// Load читает файл; отсутствующий файл даёт пустые Credentials без ошибки.
func Load(path string) (*Credentials, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Credentials{}, nil
	}
	if err != nil {
		return nil, err
	}

	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("credentials %s: %w", path, err)
	}
	return &c, nil
}

// Save пишет Credentials в JSON, создавая директорию при необходимости.
func Save(path string, c *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
