package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/newsdeskhq/newsdesk/internal/auth"
	"github.com/newsdeskhq/newsdesk/internal/models"
	"github.com/newsdeskhq/newsdesk/internal/server/storage"
	"github.com/newsdeskhq/newsdesk/internal/server/token"
	"github.com/newsdeskhq/newsdesk/pkg/api"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users        map[string]*models.User // email -> User
	nextID       int64
	createError  error
	getUserError error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.users[user.Email]; exists {
		return storage.ErrEmailTaken
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.Email] = user
	return nil
}

func (m *mockUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	user, ok := m.users[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) DeleteUser(ctx context.Context, id int64) error {
	for email, user := range m.users {
		if user.ID == id {
			delete(m.users, email)
			return nil
		}
	}
	return storage.ErrUserNotFound
}

func testTokenService() *token.Service {
	return token.NewService(token.Config{
		Secret: []byte("test-secret"),
		TTL:    time.Hour,
	})
}

func newTestAuthHandler(users *mockUserStorage) *AuthHandler {
	return NewAuthHandler(
		setupTestLogger(),
		users,
		auth.NewPasswordHasher(bcrypt.MinCost),
		testTokenService(),
	)
}

// addTestUser регистрирует пользователя напрямую в mock хранилище
func addTestUser(t *testing.T, users *mockUserStorage, email, password string) *models.User {
	t.Helper()

	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test User",
		Role:         models.RoleUser,
	}
	require.NoError(t, users.CreateUser(context.Background(), user))
	return user
}

func TestAuthHandler_Register_Success(t *testing.T) {
	users := newMockUserStorage()
	handler := newTestAuthHandler(users)

	reqBody := api.RegisterRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice",
	}
	body, err := json.Marshal(reqBody)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	handler.Register(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response api.AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

	assert.Equal(t, "alice@example.com", response.User.Email)
	assert.Equal(t, "Alice", response.User.Name)
	assert.Equal(t, models.RoleUser, response.User.Role)
	assert.Greater(t, response.User.ID, int64(0))
	assert.NotEmpty(t, response.Token)
	assert.Greater(t, response.ExpiresIn, int64(0))

	// Токен сразу верифицируется и несет identity пользователя
	claims, err := testTokenService().Verify(response.Token)
	require.NoError(t, err)
	assert.Equal(t, response.User.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)

	// В хранилище хеш, а не пароль
	stored := users.users["alice@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2a$"))
}

func TestAuthHandler_Register_NormalizesEmail(t *testing.T) {
	users := newMockUserStorage()
	handler := newTestAuthHandler(users)

	reqBody := api.RegisterRequest{
		Email:    "  User@Example.Com ",
		Password: "password123",
	}
	body, err := json.Marshal(reqBody)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Register(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	_, exists := users.users["user@example.com"]
	assert.True(t, exists)
}

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	handler := newTestAuthHandler(newMockUserStorage())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("invalid json")))
	w := httptest.NewRecorder()
	handler.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	handler := newTestAuthHandler(newMockUserStorage())

	tests := []struct {
		name    string
		request api.RegisterRequest
	}{
		{
			name:    "empty email",
			request: api.RegisterRequest{Email: "", Password: "password123"},
		},
		{
			name:    "malformed email",
			request: api.RegisterRequest{Email: "not-an-email", Password: "password123"},
		},
		{
			name:    "empty password",
			request: api.RegisterRequest{Email: "alice@example.com", Password: ""},
		},
		{
			name:    "short password",
			request: api.RegisterRequest{Email: "alice@example.com", Password: "short"},
		},
		{
			name: "name too long",
			request: api.RegisterRequest{
				Email:    "alice@example.com",
				Password: "password123",
				Name:     strings.Repeat("a", 101),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.request)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
			w := httptest.NewRecorder()
			handler.Register(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	users := newMockUserStorage()
	handler := newTestAuthHandler(users)
	addTestUser(t, users, "alice@example.com", "password123")

	reqBody := api.RegisterRequest{
		Email:    "alice@example.com",
		Password: "otherpassword",
	}
	body, err := json.Marshal(reqBody)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Register(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Register_StorageError(t *testing.T) {
	users := newMockUserStorage()
	users.createError = errors.New("database error")
	handler := newTestAuthHandler(users)

	reqBody := api.RegisterRequest{
		Email:    "alice@example.com",
		Password: "password123",
	}
	body, err := json.Marshal(reqBody)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Register(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// Внутренняя ошибка не просачивается в ответ
	assert.NotContains(t, w.Body.String(), "database error")
}

func TestAuthHandler_Login_Success(t *testing.T) {
	users := newMockUserStorage()
	handler := newTestAuthHandler(users)
	user := addTestUser(t, users, "alice@example.com", "password123")

	reqBody := api.LoginRequest{Email: "alice@example.com", Password: "password123"}
	body, err := json.Marshal(reqBody)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Login(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	rawBody := w.Body.String()

	var response api.AuthResponse
	require.NoError(t, json.Unmarshal([]byte(rawBody), &response))

	assert.Equal(t, user.ID, response.User.ID)
	assert.Equal(t, "alice@example.com", response.User.Email)
	assert.NotEmpty(t, response.Token)

	// Хеш пароля не попадает в сериализованный ответ
	assert.NotContains(t, rawBody, user.PasswordHash)
}

func TestAuthHandler_Login_NormalizesEmail(t *testing.T) {
	users := newMockUserStorage()
	handler := newTestAuthHandler(users)
	addTestUser(t, users, "alice@example.com", "password123")

	reqBody := api.LoginRequest{Email: "Alice@Example.COM", Password: "password123"}
	body, err := json.Marshal(reqBody)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Login(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Login_InvalidJSON(t *testing.T) {
	handler := newTestAuthHandler(newMockUserStorage())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte("{")))
	w := httptest.NewRecorder()
	handler.Login(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_EmptyFields(t *testing.T) {
	handler := newTestAuthHandler(newMockUserStorage())

	tests := []struct {
		name    string
		request api.LoginRequest
	}{
		{
			name:    "empty email",
			request: api.LoginRequest{Email: "", Password: "password123"},
		},
		{
			name:    "empty password",
			request: api.LoginRequest{Email: "alice@example.com", Password: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.request)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
			w := httptest.NewRecorder()
			handler.Login(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuthHandler_Login_UniformInvalidCredentials(t *testing.T) {
	users := newMockUserStorage()
	handler := newTestAuthHandler(users)
	addTestUser(t, users, "alice@example.com", "password123")

	login := func(email, password string) *httptest.ResponseRecorder {
		body, err := json.Marshal(api.LoginRequest{Email: email, Password: password})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		w := httptest.NewRecorder()
		handler.Login(w, req)
		return w
	}

	unknownEmail := login("nobody@example.com", "password123")
	wrongPassword := login("alice@example.com", "wrong-password")

	// Неизвестный email и неверный пароль неразличимы:
	// одинаковый статус и одинаковое тело ответа
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, unknownEmail.Body.String(), wrongPassword.Body.String())
	assert.Contains(t, unknownEmail.Body.String(), invalidCredentials)
}

func TestAuthHandler_Login_StorageError(t *testing.T) {
	users := newMockUserStorage()
	users.getUserError = errors.New("db error")
	handler := newTestAuthHandler(users)

	body, err := json.Marshal(api.LoginRequest{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Login(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthHandler_Me_Success(t *testing.T) {
	users := newMockUserStorage()
	handler := newTestAuthHandler(users)
	user := addTestUser(t, users, "alice@example.com", "password123")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(WithClaims(req.Context(), &token.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}))

	w := httptest.NewRecorder()
	handler.Me(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	rawBody := w.Body.String()

	var response api.UserResponse
	require.NoError(t, json.Unmarshal([]byte(rawBody), &response))

	assert.Equal(t, user.ID, response.User.ID)
	assert.Equal(t, "alice@example.com", response.User.Email)
	assert.Equal(t, "Test User", response.User.Name)
	assert.NotContains(t, rawBody, user.PasswordHash)
}

func TestAuthHandler_Me_UserDeleted(t *testing.T) {
	users := newMockUserStorage()
	handler := newTestAuthHandler(users)

	// Токен валиден, но строки пользователя уже нет
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(WithClaims(req.Context(), &token.Claims{
		UserID: 42,
		Email:  "gone@example.com",
		Role:   models.RoleUser,
	}))

	w := httptest.NewRecorder()
	handler.Me(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthHandler_Me_NoClaims(t *testing.T) {
	handler := newTestAuthHandler(newMockUserStorage())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	handler.Me(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Me_StorageError(t *testing.T) {
	users := newMockUserStorage()
	users.getUserError = errors.New("db error")
	handler := newTestAuthHandler(users)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(WithClaims(req.Context(), &token.Claims{UserID: 1}))

	w := httptest.NewRecorder()
	handler.Me(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
