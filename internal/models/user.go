package models

import "time"

// Роли пользователей. Role — плоская строка-классификатор, без движка прав.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя
type User struct {
	ID           int64     `json:"id"`         // числовой surrogate id
	Email        string    `json:"email"`      // уникальный, хранится в lower-case
	PasswordHash string    `json:"-"`          // bcrypt хеш, никогда не сериализуется
	Name         string    `json:"name"`       // отображаемое имя (опционально)
	Role         string    `json:"role"`       // роль (по умолчанию "user")
	CreatedAt    time.Time `json:"created_at"` // время создания
	UpdatedAt    time.Time `json:"updated_at"` // время последнего обновления
}
