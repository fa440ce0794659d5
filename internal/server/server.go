// Package server собирает HTTP сервер: маршруты, цепочку middleware
// и graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/newsdeskhq/newsdesk/internal/auth"
	"github.com/newsdeskhq/newsdesk/internal/config"
	"github.com/newsdeskhq/newsdesk/internal/server/handlers"
	"github.com/newsdeskhq/newsdesk/internal/server/middleware"
	"github.com/newsdeskhq/newsdesk/internal/server/storage"
	"github.com/newsdeskhq/newsdesk/internal/server/token"
)

// Storage объединяет все интерфейсы хранилища, которые нужны серверу
type Storage interface {
	storage.UserStorage
	storage.DocumentStorage
	storage.NewsStorage
	storage.SubscriberStorage
}

// Server представляет HTTP сервер приложения
type Server struct {
	logger       *slog.Logger
	httpServer   *http.Server
	loginLimiter *middleware.RateLimiter
}

// New создает сервер со всеми маршрутами и middleware
func New(cfg *config.Config, logger *slog.Logger, store Storage, version string) *Server {
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := token.NewService(token.Config{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.TokenTTL,
	})

	authHandler := handlers.NewAuthHandler(logger, store, hasher, tokens)
	docHandler := handlers.NewDocumentHandler(logger, store)
	newsHandler := handlers.NewNewsHandler(logger, store)
	newsletterHandler := handlers.NewNewsletterHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger, version)

	requireAuth := middleware.AuthMiddleware(logger, tokens)
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow, logger)

	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.Handle("POST /api/auth/login", loginLimiter.Middleware(http.HandlerFunc(authHandler.Login)))
	mux.Handle("GET /api/auth/me", requireAuth(http.HandlerFunc(authHandler.Me)))

	// Documents: чтение публичное, запись за auth gate
	mux.HandleFunc("GET /api/documents", docHandler.List)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.Get)
	mux.Handle("POST /api/documents", requireAuth(http.HandlerFunc(docHandler.Create)))
	mux.Handle("PUT /api/documents/{id}", requireAuth(http.HandlerFunc(docHandler.Update)))
	mux.Handle("DELETE /api/documents/{id}", requireAuth(http.HandlerFunc(docHandler.Delete)))

	// News
	mux.HandleFunc("GET /api/news", newsHandler.List)
	mux.HandleFunc("GET /api/news/{id}", newsHandler.Get)
	mux.Handle("POST /api/news", requireAuth(http.HandlerFunc(newsHandler.Create)))
	mux.Handle("PUT /api/news/{id}", requireAuth(http.HandlerFunc(newsHandler.Update)))
	mux.Handle("DELETE /api/news/{id}", requireAuth(http.HandlerFunc(newsHandler.Delete)))

	// Newsletter
	mux.HandleFunc("POST /api/newsletter/subscribe", newsletterHandler.Subscribe)

	// Health
	mux.HandleFunc("GET /api/health", healthHandler.Health)

	// Общая цепочка: recovery -> request id -> logging -> CORS -> mux
	var handler http.Handler = mux
	handler = middleware.CORSMiddleware(cfg.AllowedOrigins)(handler)
	handler = middleware.LoggingMiddleware(logger)(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return &Server{
		logger: logger,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		loginLimiter: loginLimiter,
	}
}

// Run запускает сервер и блокируется до отмены контекста
// Завершается graceful shutdown с таймаутом
func (s *Server) Run(ctx context.Context) error {
	errC := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	s.loginLimiter.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	return nil
}
