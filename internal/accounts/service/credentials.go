package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/passageqa/internal/accounts/domain"
	"github.com/aussiebroadwan/passageqa/internal/accounts/store"
	"github.com/aussiebroadwan/passageqa/pkg/cryptox"
)

// CredentialStore owns user rows and the hashing applied on the way in.
// Each method reports its outcome as a bool; err is only set for storage
// failures that are not a plain "no" (I/O, closed database).
type CredentialStore struct {
	Store store.Store
}

// CreateTable brings the users schema up to date. Safe to call repeatedly.
func (c *CredentialStore) CreateTable() error {
	return c.Store.ApplyMigrations()
}

// AddUser hashes password and inserts the user. A taken username or email
// reports false.
func (c *CredentialStore) AddUser(ctx context.Context, username, email, password string) (bool, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return false, err
	}

	_, err = c.Store.Users().CreateUser(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("add user: %w", err)
	}
	return true, nil
}

// Authenticate reports whether password matches the stored hash for
// username. Unknown users report false.
func (c *CredentialStore) Authenticate(ctx context.Context, username, password string) (bool, error) {
	u, err := c.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("authenticate: %w", err)
	}
	return cryptox.VerifyPassword(u.PasswordHash, password), nil
}

// ResetPassword replaces the hash of the user registered with email.
// Reports false when no user has that email.
func (c *CredentialStore) ResetPassword(ctx context.Context, email, newPassword string) (bool, error) {
	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return false, err
	}

	err = c.Store.Users().UpdatePasswordHashByEmail(ctx, email, hash)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reset password: %w", err)
	}
	return true, nil
}

// DeleteUser removes the user. Reports false when nothing was removed.
func (c *CredentialStore) DeleteUser(ctx context.Context, username string) (bool, error) {
	err := c.Store.Users().DeleteUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return true, nil
}
