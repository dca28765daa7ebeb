package app

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/passageqa/internal/accounts/notify"
	"github.com/aussiebroadwan/passageqa/pkg/accountsdk"
	"github.com/aussiebroadwan/passageqa/pkg/jwtx"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "json",
		Port:                0,
		DatabaseFile:        ":memory:",
		Issuer:              "passageqa-test",
		SessionTTL:          time.Hour,
		TicketTTL:           time.Minute,
		ShutdownGracePeriod: time.Second,
		OTPTTL:              time.Minute,
		OTPStore:            OTPStoreMemory,
		NotifyDriver:        NotifyDriverLog,
	}
}

func newTestApp(t *testing.T, cfg Config) *Application {
	t.Helper()
	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Shutdown() })
	return app
}

func TestNew_WiresLogDriverAndMemoryStore(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	require.Nil(t, app.redis)
	require.Nil(t, app.housekeeping)
	require.IsType(t, &notify.LogSender{}, app.sender)
	require.Equal(t, time.Minute, app.registry.TTL)
	require.Equal(t, "passageqa-test", app.accountService.Issuer)
}

func TestNew_SMTPDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.NotifyDriver = NotifyDriverSMTP
	cfg.SMTP = notify.SMTPConfig{Host: "smtp.example.com", Port: 587, From: "noreply@example.com"}

	app := newTestApp(t, cfg)

	sender, ok := app.sender.(*notify.SMTPSender)
	require.True(t, ok)
	require.Equal(t, "smtp.example.com", sender.Config.Host)
}

func TestNew_PersistentSigningKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.SigningKeyFile = filepath.Join(t.TempDir(), "signing.pem")

	first := newTestApp(t, cfg)
	second := newTestApp(t, cfg)

	// Same file, same kid, so tokens minted by one instance verify on the other.
	require.Equal(t, first.signer.KID(), second.signer.KID())

	tok, err := first.signer.Sign(jwtx.NewSessionClaims("carol", time.Hour, cfg.Issuer, time.Now()))
	require.NoError(t, err)

	claims, err := second.verifier.Verify(tok, jwtx.PurposeSession)
	require.NoError(t, err)
	require.Equal(t, "carol", claims.Username)
}

func TestNew_RedisUnreachable(t *testing.T) {
	cfg := testConfig(t)
	cfg.OTPStore = OTPStoreRedis
	cfg.OTPRedisAddr = "127.0.0.1:1"

	_, err := New(cfg)
	require.Error(t, err)
}

func TestApplication_EndToEndFlow(t *testing.T) {
	app := newTestApp(t, testConfig(t))
	app.registry.Generate = func() (string, error) { return "424242", nil }

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)

	client := accountsdk.NewClient(srv.URL)
	ctx := context.Background()

	health, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "ok", health.Checks["database"])
	require.NotContains(t, health.Checks, "otp_store")

	sent, err := client.RequestSignupOTP(ctx, accountsdk.SignupOTPRequest{
		Email:           "carol@example.com",
		Username:        "carol",
		Password:        "Str0ng!Pass",
		ConfirmPassword: "Str0ng!Pass",
	})
	require.NoError(t, err)
	require.True(t, sent.OTPSent)

	ticket, err := client.VerifySignupOTP(ctx, "carol@example.com", "424242")
	require.NoError(t, err)

	session, err := client.CompleteSignup(ctx, accountsdk.SignupRequest{
		Ticket:          ticket.Ticket,
		Username:        "carol",
		Password:        "Str0ng!Pass",
		ConfirmPassword: "Str0ng!Pass",
	})
	require.NoError(t, err)
	require.Equal(t, "Bearer", session.TokenType)

	acct, err := client.GetAccount(ctx, session.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "carol@example.com", acct.Email)

	// The code was consumed by the first verification.
	_, err = client.VerifySignupOTP(ctx, "carol@example.com", "424242")
	require.ErrorIs(t, err, accountsdk.ErrOTPInvalid)
}

func TestNew_HousekeepingWhenSweepEnabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.OTPSweepInterval = time.Hour

	app, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, app.housekeeping)
	require.Equal(t, time.Hour, app.housekeeping.Interval)

	app.housekeeping.Start()
	require.NoError(t, app.Shutdown())
}
