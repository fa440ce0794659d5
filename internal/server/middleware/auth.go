package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/newsdeskhq/newsdesk/internal/server/handlers"
	"github.com/newsdeskhq/newsdesk/internal/server/token"
)

// AuthMiddleware создает middleware для проверки bearer токена.
// Проверка чисто криптографическая (подпись + срок действия), хранилище
// не затрагивается: удаленный пользователь с живым токеном проходит gate.
// Вид ошибки верификации различается только в логах, клиенту всегда 401.
func AuthMiddleware(logger *slog.Logger, tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("missing Authorization header", "path", r.URL.Path)
				unauthorized(w)
				return
			}

			// Требуем строгий формат "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				logger.Warn("invalid Authorization header format", "path", r.URL.Path)
				unauthorized(w)
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				logger.Warn("token verification failed", "path", r.URL.Path, "error", err)
				unauthorized(w)
				return
			}

			logger.Debug("user authenticated", "user_id", claims.UserID, "role", claims.Role)

			ctx := handlers.WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// unauthorized отвечает единообразным 401 без деталей
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized","message":"Invalid token"}`))
}
