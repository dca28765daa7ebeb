package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/passageqa/internal/accounts/notify"
	"github.com/aussiebroadwan/passageqa/internal/accounts/otp"
	"github.com/aussiebroadwan/passageqa/internal/accounts/otp/redisstore"
	"github.com/aussiebroadwan/passageqa/pkg/httpx"
	"github.com/aussiebroadwan/passageqa/pkg/jwtx"
)

// OTP store drivers.
const (
	OTPStoreMemory = "memory"
	OTPStoreRedis  = "redis"
)

// Notification drivers.
const (
	NotifyDriverSMTP = "smtp"
	NotifyDriverLog  = "log"
)

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Port      int    // HTTP server port (default: 8080)

	DatabaseFile   string        // Path to SQLite database file (default: accounts.db)
	Issuer         string        // Issuer claim for tickets and sessions (default: passageqa-accounts)
	SigningKeyFile string        // Optional: Ed25519 PEM key; empty means a fresh key per process
	SessionTTL     time.Duration // Session token lifetime (default: 24h)
	TicketTTL      time.Duration // Signup/reset ticket lifetime (default: 10m)

	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	OTPTTL            time.Duration // Code lifetime (default: 300s)
	OTPStore          string        // memory or redis (default: memory)
	OTPRedisAddr      string        // Required when OTPStore is redis
	OTPRedisPassword  string
	OTPRedisDB        int
	OTPRedisRetention time.Duration // How long expired entries linger in redis (default: 1h)
	OTPSweepInterval  time.Duration // Memory store sweep interval, 0 disables (default: 0)
	OTPSweepGrace     time.Duration // Age past expiry before an entry is swept (default: 1h)

	NotifyDriver string // smtp or log (default: smtp)
	SMTP         notify.SMTPConfig
}

// LoadConfig reads the environment, after loading a .env file from the
// working directory when one exists.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	httpx.LoadRateLimitsFromEnv()

	cfg := Config{
		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Port:      getEnvIntOrDefault("PORT", 8080),

		DatabaseFile:   getEnvOrDefault("ACCOUNTS_DATABASE_FILE", "accounts.db"),
		Issuer:         getEnvOrDefault("ACCOUNTS_ISSUER", "passageqa-accounts"),
		SigningKeyFile: os.Getenv("ACCOUNTS_SIGNING_KEY_FILE"),
		SessionTTL:     getEnvDurationOrDefault("SESSION_TTL", jwtx.DefaultSessionTTL),
		TicketTTL:      getEnvDurationOrDefault("TICKET_TTL", jwtx.DefaultTicketTTL),

		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		OTPTTL:            getEnvDurationOrDefault("OTP_TTL", otp.DefaultTTL),
		OTPStore:          strings.ToLower(getEnvOrDefault("OTP_STORE", OTPStoreMemory)),
		OTPRedisAddr:      os.Getenv("OTP_REDIS_ADDR"),
		OTPRedisPassword:  os.Getenv("OTP_REDIS_PASSWORD"),
		OTPRedisDB:        getEnvIntOrDefault("OTP_REDIS_DB", 0),
		OTPRedisRetention: getEnvDurationOrDefault("OTP_REDIS_RETENTION", time.Hour),
		OTPSweepInterval:  getEnvDurationOrDefault("OTP_SWEEP_INTERVAL", 0),
		OTPSweepGrace:     getEnvDurationOrDefault("OTP_SWEEP_GRACE", time.Hour),

		NotifyDriver: strings.ToLower(getEnvOrDefault("NOTIFY_DRIVER", NotifyDriverSMTP)),
		SMTP: notify.SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvIntOrDefault("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
			Timeout:  getEnvDurationOrDefault("SMTP_TIMEOUT", 10*time.Second),
		},
	}

	security, err := notify.ParseSecurity(getEnvOrDefault("SMTP_SECURITY", string(notify.SecurityStartTLS)))
	if err != nil {
		return Config{}, err
	}
	cfg.SMTP.Security = security

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations the application cannot start with.
func (c Config) Validate() error {
	switch c.OTPStore {
	case OTPStoreMemory:
	case OTPStoreRedis:
		if c.OTPRedisAddr == "" {
			return errors.New("config: OTP_REDIS_ADDR is required when OTP_STORE=redis")
		}
	default:
		return fmt.Errorf("config: unknown OTP_STORE %q", c.OTPStore)
	}

	switch c.NotifyDriver {
	case NotifyDriverLog:
	case NotifyDriverSMTP:
		if c.SMTP.Host == "" || c.SMTP.From == "" {
			return errors.New("config: SMTP_HOST and SMTP_FROM are required when NOTIFY_DRIVER=smtp")
		}
	default:
		return fmt.Errorf("config: unknown NOTIFY_DRIVER %q", c.NotifyDriver)
	}

	if c.OTPTTL <= 0 || c.TicketTTL <= 0 || c.SessionTTL <= 0 {
		return errors.New("config: OTP_TTL, TICKET_TTL and SESSION_TTL must be positive")
	}
	return nil
}

// redisOptions maps the OTP_REDIS_* keys onto the redis store.
func (c Config) redisOptions() redisstore.Options {
	return redisstore.Options{
		Addr:      c.OTPRedisAddr,
		Password:  c.OTPRedisPassword,
		DB:        c.OTPRedisDB,
		Retention: c.OTPRedisRetention,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds, matching how OTP lifetimes are usually quoted.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
