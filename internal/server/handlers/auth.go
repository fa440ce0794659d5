package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/newsdeskhq/newsdesk/internal/auth"
	"github.com/newsdeskhq/newsdesk/internal/models"
	"github.com/newsdeskhq/newsdesk/internal/server/storage"
	"github.com/newsdeskhq/newsdesk/internal/server/token"
	"github.com/newsdeskhq/newsdesk/internal/validation"
	"github.com/newsdeskhq/newsdesk/pkg/api"
)

// invalidCredentials единый ответ для неизвестного email и неверного пароля,
// чтобы не раскрывать существование аккаунта
const invalidCredentials = "Invalid credentials"

// AuthHandler обрабатывает запросы регистрации и аутентификации
type AuthHandler struct {
	logger *slog.Logger
	users  storage.UserStorage
	hasher *auth.PasswordHasher
	tokens *token.Service
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, users storage.UserStorage, hasher *auth.PasswordHasher, tokens *token.Service) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// apiUser конвертирует модель в API представление (без хеша пароля)
func apiUser(u *models.User) api.User {
	return api.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Register обрабатывает POST /api/auth/register
// Регистрация нового пользователя: хеширование пароля, вставка, выпуск токена
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Нормализация и валидация на границе, до обращений к хранилищу
	email := validation.NormalizeEmail(req.Email)
	if err := validation.ValidateEmail(email); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateName(req.Name); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         models.RoleUser,
	}

	// UNIQUE constraint в хранилище — арбитр дубликатов, в том числе
	// при одновременных регистрациях одного email
	if err := h.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			h.logger.WarnContext(ctx, "email already registered", slog.String("email", email))
			sendError(h.logger, w, "email already in use", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	tokenString, expiresIn, err := h.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.Int64("user_id", user.ID),
		slog.String("email", email))

	resp := api.AuthResponse{
		User:      apiUser(user),
		Token:     tokenString,
		ExpiresIn: expiresIn,
	}

	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Login обрабатывает POST /api/auth/login
// Неизвестный email и неверный пароль неразличимы для клиента
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" {
		sendError(h.logger, w, "email is required", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		sendError(h.logger, w, "password is required", http.StatusBadRequest)
		return
	}

	email := validation.NormalizeEmail(req.Email)

	user, err := h.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("email", email))
			sendError(h.logger, w, invalidCredentials, http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !h.hasher.Verify(req.Password, user.PasswordHash) {
		h.logger.WarnContext(ctx, "login failed: invalid password", slog.Int64("user_id", user.ID))
		sendError(h.logger, w, invalidCredentials, http.StatusUnauthorized)
		return
	}

	tokenString, expiresIn, err := h.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully", slog.Int64("user_id", user.ID))

	resp := api.AuthResponse{
		User:      apiUser(user),
		Token:     tokenString,
		ExpiresIn: expiresIn,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Me обрабатывает GET /api/auth/me
// Identity берется из верифицированных claims; если строка пользователя
// уже удалена, токен все еще валиден, но профиль отвечает 404
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := GetClaims(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "claims not found in context")
		sendError(h.logger, w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "user from token no longer exists", slog.Int64("user_id", claims.UserID))
			sendError(h.logger, w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.UserResponse{User: apiUser(user)}, http.StatusOK)
}
