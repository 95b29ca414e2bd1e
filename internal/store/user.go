package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/nexotime/nexotime/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// It handles domain validation and password hashing internally.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user contains all fields except the plaintext password.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByTelegramID retrieves a user by their linked Telegram chat ID.
	// Returns ErrUserNotFound if no user has linked that account.
	GetByTelegramID(ctx context.Context, telegramID string) (*domain.User, error)

	// SetTelegramID binds a Telegram chat ID to the user.
	// Returns ErrUserNotFound if the user does not exist and
	// ErrTelegramIDExists if the chat is already linked to another user.
	SetTelegramID(ctx context.Context, id uuid.UUID, telegramID string) error

	// Update modifies an existing user's details.
	// If a new plaintext Password is provided, it is hashed and the stored
	// hash replaced. Returns ErrUserNotFound if the user does not exist
	// and ErrEmailExists if updating to an email that is already taken.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	// Owned habits, routines, reminders, and logs are removed with it.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
