package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/passageqa/internal/accounts/notify"
	"github.com/aussiebroadwan/passageqa/internal/accounts/otp"
	"github.com/aussiebroadwan/passageqa/pkg/jwtx"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("NOTIFY_DRIVER", "log")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "accounts.db", cfg.DatabaseFile)
	require.Equal(t, "passageqa-accounts", cfg.Issuer)
	require.Empty(t, cfg.SigningKeyFile)
	require.Equal(t, jwtx.DefaultSessionTTL, cfg.SessionTTL)
	require.Equal(t, jwtx.DefaultTicketTTL, cfg.TicketTTL)
	require.Equal(t, otp.DefaultTTL, cfg.OTPTTL)
	require.Equal(t, OTPStoreMemory, cfg.OTPStore)
	require.Zero(t, cfg.OTPSweepInterval)
	require.Equal(t, NotifyDriverLog, cfg.NotifyDriver)
	require.Equal(t, notify.SecurityStartTLS, cfg.SMTP.Security)
	require.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OTP_TTL", "120")
	t.Setenv("TICKET_TTL", "5m")
	t.Setenv("OTP_STORE", "Redis")
	t.Setenv("OTP_REDIS_ADDR", "localhost:6379")
	t.Setenv("OTP_REDIS_DB", "2")
	t.Setenv("OTP_SWEEP_INTERVAL", "15m")
	t.Setenv("NOTIFY_DRIVER", "smtp")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_FROM", "noreply@example.com")
	t.Setenv("SMTP_SECURITY", "tls")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 120*time.Second, cfg.OTPTTL)
	require.Equal(t, 5*time.Minute, cfg.TicketTTL)
	require.Equal(t, OTPStoreRedis, cfg.OTPStore)
	require.Equal(t, 15*time.Minute, cfg.OTPSweepInterval)
	require.Equal(t, notify.SecurityTLS, cfg.SMTP.Security)
	require.Equal(t, 465, cfg.SMTP.Port)

	opts := cfg.redisOptions()
	require.Equal(t, "localhost:6379", opts.Addr)
	require.Equal(t, 2, opts.DB)
	require.Equal(t, time.Hour, opts.Retention)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"redis without addr", map[string]string{"NOTIFY_DRIVER": "log", "OTP_STORE": "redis"}},
		{"unknown store", map[string]string{"NOTIFY_DRIVER": "log", "OTP_STORE": "etcd"}},
		{"smtp without host", map[string]string{"NOTIFY_DRIVER": "smtp", "SMTP_FROM": "a@b.c"}},
		{"unknown driver", map[string]string{"NOTIFY_DRIVER": "pigeon"}},
		{"bad security", map[string]string{"NOTIFY_DRIVER": "log", "SMTP_SECURITY": "ssl3"}},
		{"non positive ttl", map[string]string{"NOTIFY_DRIVER": "log", "OTP_TTL": "-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}

func TestGetEnvDurationOrDefault(t *testing.T) {
	t.Setenv("X_DURATION", "90s")
	require.Equal(t, 90*time.Second, getEnvDurationOrDefault("X_DURATION", time.Minute))

	t.Setenv("X_DURATION", "45")
	require.Equal(t, 45*time.Second, getEnvDurationOrDefault("X_DURATION", time.Minute))

	t.Setenv("X_DURATION", "soon")
	require.Equal(t, time.Minute, getEnvDurationOrDefault("X_DURATION", time.Minute))
}
