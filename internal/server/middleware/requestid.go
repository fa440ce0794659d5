package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// requestIDKey тип для ключа request id в контексте
type requestIDKey struct{}

// RequestIDHeader имя заголовка с идентификатором запроса
const RequestIDHeader = "X-Request-Id"

// GetRequestID извлекает request id из контекста
// Возвращает пустую строку, если middleware не отработал
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDMiddleware присваивает каждому запросу идентификатор
// Если клиент прислал X-Request-Id, используется он, иначе генерируется UUID
// Идентификатор кладется в контекст и дублируется в заголовок ответа
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
