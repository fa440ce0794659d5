// Package token выпускает и проверяет bearer токены (JWT, HS256).
// Токен самодостаточен: валидность определяется только подписью и
// сроком действия, без обращений к хранилищу.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Ошибки верификации. Все четыре вида на границе превращаются в 401,
// но различимы для логирования и тестов.
var (
	// ErrMissingToken токен отсутствует
	ErrMissingToken = errors.New("missing token")
	// ErrMalformedToken токен не разбирается как JWT
	ErrMalformedToken = errors.New("malformed token")
	// ErrInvalidSignature подпись не совпадает
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrTokenExpired срок действия токена истек
	ErrTokenExpired = errors.New("token expired")
)

// Claims представляет identity-поля, зашитые в токен
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Config содержит конфигурацию подписи токенов
// Заполняется один раз при старте процесса и далее только читается
type Config struct {
	Secret []byte
	TTL    time.Duration
}

// Service выпускает и проверяет токены с фиксированным секретом и TTL
type Service struct {
	cfg Config
}

// NewService создает новый token service
// secret должен быть криптографически случайной строкой
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Issue выпускает подписанный токен для пользователя
// Возвращает токен и срок его жизни в секундах
func (s *Service) Issue(userID int64, email, role string) (string, int64, error) {
	now := time.Now()

	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "newsdesk",
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.cfg.Secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, int64(s.cfg.TTL.Seconds()), nil
}

// Verify проверяет подпись и срок действия токена и возвращает claims
// Возвращает одну из ошибок верификации, определенных выше
func (s *Service) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Принимаем только HMAC: подмена алгоритма ломает подпись
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.cfg.Secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformedToken
		default:
			return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformedToken
	}

	return claims, nil
}
