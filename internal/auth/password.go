// Package auth реализует одностороннее хеширование паролей.
// bcrypt сам встраивает cost и случайную соль в строку хеша,
// поэтому два хеша одного пароля никогда не совпадают.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost cost factor по умолчанию для bcrypt
// Каждый +1 удваивает время хеширования
const DefaultCost = 12

// PasswordHasher хеширует и проверяет пароли с фиксированным cost factor
// Cost задается один раз при старте процесса и далее только читается
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher создает hasher с указанным cost factor
// При cost вне допустимого диапазона bcrypt используется DefaultCost
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash возвращает bcrypt хеш пароля
// Пустой пароль — ошибка: валидация на границе обязана отсечь его раньше
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// Verify проверяет пароль против сохраненного хеша
// Fail-closed: на пустой или поврежденный хеш отвечает false, не ошибкой
// Сравнение выполняет bcrypt, тайминг-устойчивость — его гарантия
func (h *PasswordHasher) Verify(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
