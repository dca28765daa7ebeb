package redisstore

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/passageqa/internal/accounts/domain"
	"github.com/aussiebroadwan/passageqa/internal/accounts/notify"
	"github.com/aussiebroadwan/passageqa/internal/accounts/otp"
)

func setupRedis(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	s, err := New(ctx, Options{Addr: fmt.Sprintf("%s:%s", host, port.Port()), Prefix: "test:otp:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNew_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := New(ctx, Options{Addr: "127.0.0.1:1"})
	require.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	s := setupRedis(t)
	ctx := context.Background()

	exp := time.Now().Add(5 * time.Minute).UTC().Truncate(time.Second)

	_, ok, err := s.Get(ctx, "alice@example.com")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, "alice@example.com", domain.OTPEntry{Code: "123456", ExpiresAt: exp}))

	got, ok, err := s.Get(ctx, "alice@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "123456", got.Code)
	require.True(t, exp.Equal(got.ExpiresAt))

	// Raw email never appears as a key
	keys, err := s.client.Keys(ctx, "test:otp:*").Result()
	require.NoError(t, err)
	require.Len(t, keys, 1)
	require.NotContains(t, keys[0], "alice")

	removed, err := s.DeleteIf(ctx, "alice@example.com", got)
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = s.DeleteIf(ctx, "alice@example.com", got)
	require.NoError(t, err)
	require.False(t, removed)
}

func TestRedisStore_DeleteIfKeepsReissuedEntry(t *testing.T) {
	s := setupRedis(t)
	ctx := context.Background()
	exp := time.Now().Add(5 * time.Minute)

	require.NoError(t, s.Set(ctx, "dave@example.com", domain.OTPEntry{Code: "111111", ExpiresAt: exp}))
	stale, ok, err := s.Get(ctx, "dave@example.com")
	require.NoError(t, err)
	require.True(t, ok)

	// Another replica reissues before the stale read is consumed.
	require.NoError(t, s.Set(ctx, "dave@example.com", domain.OTPEntry{Code: "222222", ExpiresAt: exp.Add(time.Second)}))

	removed, err := s.DeleteIf(ctx, "dave@example.com", stale)
	require.NoError(t, err)
	require.False(t, removed)

	fresh, ok, err := s.Get(ctx, "dave@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "222222", fresh.Code)

	removed, err = s.DeleteIf(ctx, "dave@example.com", fresh)
	require.NoError(t, err)
	require.True(t, removed)
}

func TestRedisStore_Retention(t *testing.T) {
	s := setupRedis(t)
	ctx := context.Background()

	now := time.Now()
	s.Now = func() time.Time { return now }
	s.Retention = time.Minute

	require.NoError(t, s.Set(ctx, "bob@example.com", domain.OTPEntry{Code: "1", ExpiresAt: now.Add(5 * time.Minute)}))

	ttl, err := s.client.TTL(ctx, s.key("bob@example.com")).Result()
	require.NoError(t, err)
	require.InDelta(t, (6 * time.Minute).Seconds(), ttl.Seconds(), 2)

	s.Retention = 0
	require.NoError(t, s.Set(ctx, "bob@example.com", domain.OTPEntry{Code: "2", ExpiresAt: now.Add(5 * time.Minute)}))

	ttl, err = s.client.TTL(ctx, s.key("bob@example.com")).Result()
	require.NoError(t, err)
	require.Equal(t, time.Duration(-1), ttl, "no expiry without retention")
}

// Two registries sharing one Redis model two replicas. A correct code must
// still be accepted exactly once.
func TestRedisStore_SingleUseAcrossReplicas(t *testing.T) {
	s := setupRedis(t)
	ctx := context.Background()

	sender := notify.SenderFunc(func(context.Context, string, string, string) bool { return true })
	newReplica := func() *otp.Registry {
		return &otp.Registry{
			Store:    s,
			Sender:   sender,
			Generate: func() (string, error) { return "654321", nil },
		}
	}
	a, b := newReplica(), newReplica()

	ok, err := a.Issue(ctx, "carol@example.com")
	require.NoError(t, err)
	require.True(t, ok)

	var verified atomic.Int32
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg := a
			if i%2 == 1 {
				reg = b
			}
			outcome, err := reg.Verify(ctx, "carol@example.com", "654321")
			require.NoError(t, err)
			if outcome == domain.OTPVerified {
				verified.Add(1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, verified.Load())
}
