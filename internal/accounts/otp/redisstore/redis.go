// Package redisstore keeps OTP entries in Redis so several service replicas
// share one registry.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/aussiebroadwan/passageqa/internal/accounts/domain"
	"github.com/aussiebroadwan/passageqa/internal/accounts/otp"
	"github.com/aussiebroadwan/passageqa/pkg/cryptox"
)

const DefaultPrefix = "passageqa:otp:"

type Store struct {
	client *redis.Client
	prefix string

	// Retention, when positive, sets a key TTL of expiry + Retention so Redis
	// drops abandoned entries itself. Zero keeps entries until overwritten or
	// verified.
	Retention time.Duration

	// Now is used to compute key TTLs. Defaults to time.Now.
	Now func() time.Time
}

var _ otp.Store = (*Store)(nil)

type Options struct {
	Addr      string
	Password  string
	DB        int
	Prefix    string
	Retention time.Duration
}

// New connects to Redis and checks the connection with a PING.
func New(ctx context.Context, opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redisstore: ping %s: %w", opts.Addr, err)
	}

	s := NewWithClient(client, opts.Prefix)
	s.Retention = opts.Retention
	return s, nil
}

// NewWithClient wraps an existing client. An empty prefix uses DefaultPrefix.
func NewWithClient(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Keys are email fingerprints so raw addresses never reach the keyspace.
func (s *Store) key(email string) string {
	return s.prefix + cryptox.FingerprintToken(email)
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Store) Get(ctx context.Context, email string) (domain.OTPEntry, bool, error) {
	data, err := s.client.Get(ctx, s.key(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.OTPEntry{}, false, nil
	}
	if err != nil {
		return domain.OTPEntry{}, false, fmt.Errorf("redisstore: get: %w", err)
	}

	var e domain.OTPEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return domain.OTPEntry{}, false, fmt.Errorf("redisstore: decode entry: %w", err)
	}
	return e, true, nil
}

func (s *Store) Set(ctx context.Context, email string, entry domain.OTPEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("redisstore: encode entry: %w", err)
	}

	var ttl time.Duration
	if s.Retention > 0 {
		ttl = entry.ExpiresAt.Sub(s.now()) + s.Retention
		if ttl <= 0 {
			ttl = s.Retention
		}
	}

	if err := s.client.Set(ctx, s.key(email), data, ttl).Err(); err != nil {
		return fmt.Errorf("redisstore: set: %w", err)
	}
	return nil
}

// deleteIfEqual runs as one Redis command, so no Set from another replica
// can land between the comparison and the DEL.
var deleteIfEqual = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// DeleteIf compares against the stored encoding of expected. Entries read
// through Get re-encode to the same bytes Set wrote.
func (s *Store) DeleteIf(ctx context.Context, email string, expected domain.OTPEntry) (bool, error) {
	data, err := json.Marshal(expected)
	if err != nil {
		return false, fmt.Errorf("redisstore: encode entry: %w", err)
	}

	n, err := deleteIfEqual.Run(ctx, s.client, []string{s.key(email)}, data).Int64()
	if err != nil {
		return false, fmt.Errorf("redisstore: delete if equal: %w", err)
	}
	return n == 1, nil
}

// Ping checks the connection, for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error { return s.client.Close() }
