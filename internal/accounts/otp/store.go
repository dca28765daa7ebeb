package otp

import (
	"context"
	"time"

	"github.com/aussiebroadwan/passageqa/internal/accounts/domain"
)

// Store holds at most one OTPEntry per email.
type Store interface {
	// Get returns the entry for email and whether one exists.
	Get(ctx context.Context, email string) (domain.OTPEntry, bool, error)

	// Set stores entry for email, replacing any existing one.
	Set(ctx context.Context, email string, entry domain.OTPEntry) error

	// DeleteIf removes the entry only while it still equals expected, and
	// reports whether this call removed it. When two callers race, exactly
	// one sees true, and an entry replaced by a later Set is left alone.
	DeleteIf(ctx context.Context, email string, expected domain.OTPEntry) (bool, error)
}

// Sweeper is implemented by stores that can bulk remove stale entries.
type Sweeper interface {
	// DeleteExpiredBefore removes entries whose expiry is before cutoff and
	// returns how many were removed.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int, error)
}
