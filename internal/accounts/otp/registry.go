package otp

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aussiebroadwan/passageqa/internal/accounts/domain"
	"github.com/aussiebroadwan/passageqa/internal/accounts/notify"
	"github.com/aussiebroadwan/passageqa/pkg/cryptox"
	"github.com/aussiebroadwan/passageqa/pkg/metrics"
	"github.com/aussiebroadwan/passageqa/pkg/slogx"
)

// DefaultTTL is how long an issued code stays valid.
const DefaultTTL = 300 * time.Second

// ErrNoSweeper is returned by Sweep when the store cannot bulk delete.
var ErrNoSweeper = errors.New("otp: store does not support sweeping")

// Registry issues and checks single use, time bound codes keyed by email.
//
// Per email the lifecycle is Absent -> Pending on Issue, then Pending ->
// Consumed on a correct code, Pending -> Expired on any attempt after
// expiry, or Pending -> Pending when Issue overwrites. A wrong code leaves
// the entry as it was.
type Registry struct {
	Store  Store
	Sender notify.Sender

	// Metrics is optional.
	Metrics *metrics.Metrics

	// TTL defaults to DefaultTTL.
	TTL time.Duration

	// Now and Generate default to time.Now and GenerateCode. Tests replace
	// them to control expiry and codes.
	Now      func() time.Time
	Generate func() (string, error)

	// mu serializes every read-modify-write against Store.
	mu sync.Mutex
}

func (r *Registry) ttl() time.Duration {
	if r.TTL <= 0 {
		return DefaultTTL
	}
	return r.TTL
}

func (r *Registry) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Registry) generate() (string, error) {
	if r.Generate != nil {
		return r.Generate()
	}
	return GenerateCode()
}

// Issue mints a code for email, stores it, then hands it to the Sender. The
// entry is stored before delivery is attempted and stays stored when
// delivery fails. The bool is the delivery outcome; err is only set when the
// code could not be generated or stored.
func (r *Registry) Issue(ctx context.Context, email string) (bool, error) {
	log := slogx.FromContext(ctx).With("email_fp", cryptox.FingerprintToken(email))

	code, err := r.generate()
	if err != nil {
		return false, err
	}
	entry := domain.OTPEntry{Code: code, ExpiresAt: r.now().Add(r.ttl())}

	r.mu.Lock()
	err = r.Store.Set(ctx, email, entry)
	r.mu.Unlock()
	if err != nil {
		return false, fmt.Errorf("otp: store entry: %w", err)
	}

	// Delivery runs outside the lock so a slow relay never blocks other emails.
	if !r.Sender.Send(ctx, email, notify.OTPSubject, notify.OTPBody(code, r.ttl())) {
		log.Warn("otp stored but delivery failed; entry remains valid until expiry",
			"expires_at", entry.ExpiresAt,
		)
		r.countIssued("delivery_failed")
		return false, nil
	}

	log.Info("otp issued", "expires_at", entry.ExpiresAt)
	r.countIssued("delivered")
	return true, nil
}

// Verify checks code against the live entry for email. A correct code
// consumes the entry. An expired entry is removed whatever code was sent.
func (r *Registry) Verify(ctx context.Context, email, code string) (domain.OTPOutcome, error) {
	outcome, err := r.verify(ctx, email, code)
	if err != nil {
		return domain.OTPInvalid, err
	}

	slogx.FromContext(ctx).Info("otp verification",
		"email_fp", cryptox.FingerprintToken(email),
		"outcome", outcome,
	)
	r.countVerified(outcome)
	return outcome, nil
}

func (r *Registry) verify(ctx context.Context, email, code string) (domain.OTPOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok, err := r.Store.Get(ctx, email)
	if err != nil {
		return domain.OTPInvalid, fmt.Errorf("otp: load entry: %w", err)
	}
	if !ok {
		return domain.OTPInvalid, nil
	}

	// Both deletes are conditional on the entry read above: another replica
	// may have issued a fresh code since, and that one must survive.
	if entry.Expired(r.now()) {
		if _, err := r.Store.DeleteIf(ctx, email, entry); err != nil {
			return domain.OTPInvalid, fmt.Errorf("otp: delete expired entry: %w", err)
		}
		return domain.OTPExpired, nil
	}

	if subtle.ConstantTimeCompare([]byte(code), []byte(entry.Code)) != 1 {
		return domain.OTPInvalid, nil
	}

	removed, err := r.Store.DeleteIf(ctx, email, entry)
	if err != nil {
		return domain.OTPInvalid, fmt.Errorf("otp: consume entry: %w", err)
	}
	if !removed {
		// Consumed or reissued by another replica after our Get.
		return domain.OTPInvalid, nil
	}
	return domain.OTPVerified, nil
}

// Sweep removes entries that expired more than grace ago. Entries inside
// the grace window are left so a late attempt still reports "expired".
func (r *Registry) Sweep(ctx context.Context, grace time.Duration) (int, error) {
	sw, ok := r.Store.(Sweeper)
	if !ok {
		return 0, ErrNoSweeper
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n, err := sw.DeleteExpiredBefore(ctx, r.now().Add(-grace))
	if err != nil {
		return 0, fmt.Errorf("otp: sweep: %w", err)
	}
	if r.Metrics != nil {
		r.Metrics.OTPSwept.Add(float64(n))
	}
	return n, nil
}

func (r *Registry) countIssued(result string) {
	if r.Metrics != nil {
		r.Metrics.OTPIssued.WithLabelValues(result).Inc()
	}
}

func (r *Registry) countVerified(outcome domain.OTPOutcome) {
	if r.Metrics != nil {
		r.Metrics.OTPVerified.WithLabelValues(string(outcome)).Inc()
	}
}
