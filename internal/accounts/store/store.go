package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/passageqa/internal/accounts/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this
// and expose sub-repositories to keep concerns tidy and testable.
type Store interface {
	Users() Users

	// ApplyMigrations brings the schema up to date. Safe to call on every
	// start.
	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Users owns the users table. Every method is a single statement, so each
// call is atomic on its own row and nothing spans rows.
type Users interface {
	// CreateUser inserts a user and returns it with its new id. A taken
	// username or email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// UpdatePasswordHashByEmail replaces the hash. ErrNotFound when no row
	// matched.
	UpdatePasswordHashByEmail(ctx context.Context, email, newHash string) error

	// DeleteUserByUsername removes the row. ErrNotFound when no row matched.
	DeleteUserByUsername(ctx context.Context, username string) error

	CountUsers(ctx context.Context) (int64, error)
}
