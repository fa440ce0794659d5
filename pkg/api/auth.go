// Package api содержит типы запросов и ответов HTTP API
package api

import "time"

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Email    string `json:"email"`          // email пользователя
	Password string `json:"password"`       // пароль открытым текстом (только в теле запроса)
	Name     string `json:"name,omitempty"` // отображаемое имя (опционально)
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User представляет пользователя в ответах API
// Хеш пароля сюда не попадает никогда
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse представляет ответ на успешную регистрацию или вход
type AuthResponse struct {
	User      User   `json:"user"`
	Token     string `json:"token"`      // bearer token
	ExpiresIn int64  `json:"expires_in"` // время жизни токена в секундах
}

// UserResponse представляет ответ GET /api/auth/me
type UserResponse struct {
	User User `json:"user"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
