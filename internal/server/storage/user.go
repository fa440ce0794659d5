package storage

import (
	"context"

	"github.com/newsdeskhq/newsdesk/internal/models"
)

// UserStorage defines interface for user data persistence.
// All email arguments must already be normalized (lower-cased) by the caller.
type UserStorage interface {
	// CreateUser inserts a new user and fills in the assigned ID and
	// timestamps. Returns ErrEmailTaken if the email is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves user by normalized email
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// DeleteUser deletes user by ID
	// Returns ErrUserNotFound if user doesn't exist
	DeleteUser(ctx context.Context, id int64) error
}
