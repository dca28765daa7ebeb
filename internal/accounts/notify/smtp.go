package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/passageqa/pkg/cryptox"
	"github.com/aussiebroadwan/passageqa/pkg/idx"
	"github.com/aussiebroadwan/passageqa/pkg/slogx"
)

// Security selects how the SMTP connection is protected.
type Security string

const (
	SecurityStartTLS Security = "starttls" // plain dial, then STARTTLS (port 587)
	SecurityTLS      Security = "tls"      // implicit TLS (port 465)
	SecurityNone     Security = "none"     // plaintext, local relays and tests only
)

// ParseSecurity maps a config string to a Security mode.
func ParseSecurity(s string) (Security, error) {
	switch Security(strings.ToLower(strings.TrimSpace(s))) {
	case SecurityStartTLS, "":
		return SecurityStartTLS, nil
	case SecurityTLS:
		return SecurityTLS, nil
	case SecurityNone:
		return SecurityNone, nil
	default:
		return "", fmt.Errorf("notify: unknown smtp security mode %q", s)
	}
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string // empty disables AUTH
	Password string
	From     string
	Security Security
	Timeout  time.Duration // whole session bound, default 10s

	// TLSConfig overrides the client TLS settings, mostly for tests.
	TLSConfig *tls.Config
}

// SMTPSender delivers mail through an SMTP relay.
type SMTPSender struct {
	Config SMTPConfig
	Logger *slog.Logger

	// Now stamps the Date header. Defaults to time.Now.
	Now func() time.Time
}

var errHeaderInjection = errors.New("notify: header value contains a line break")

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) bool {
	logger := s.Logger
	if logger == nil {
		logger = slogx.FromContext(ctx)
	}

	start := time.Now()
	if err := s.deliver(ctx, to, subject, body); err != nil {
		logger.WarnContext(ctx, "smtp delivery failed",
			"to_fp", cryptox.FingerprintToken(to),
			"host", s.Config.Host,
			"error", err,
		)
		return false
	}

	logger.InfoContext(ctx, "smtp delivery ok",
		"to_fp", cryptox.FingerprintToken(to),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return true
}

func (s *SMTPSender) timeout() time.Duration {
	if s.Config.Timeout <= 0 {
		return 10 * time.Second
	}
	return s.Config.Timeout
}

func (s *SMTPSender) tlsConfig() *tls.Config {
	if s.Config.TLSConfig != nil {
		return s.Config.TLSConfig
	}
	return &tls.Config{ServerName: s.Config.Host, MinVersion: tls.VersionTLS12}
}

func (s *SMTPSender) deliver(ctx context.Context, to, subject, body string) error {
	if strings.ContainsAny(to, "\r\n") || strings.ContainsAny(subject, "\r\n") {
		return errHeaderInjection
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	addr := net.JoinHostPort(s.Config.Host, strconv.Itoa(s.Config.Port))

	var (
		conn net.Conn
		err  error
	)
	if s.Config.Security == SecurityTLS {
		d := &tls.Dialer{Config: s.tlsConfig()}
		conn, err = d.DialContext(ctx, "tcp", addr)
	} else {
		var d net.Dialer
		conn, err = d.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	// The smtp client has no context support, so bound the session with a
	// deadline and tear the connection down if ctx is cancelled early.
	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	client, err := smtp.NewClient(conn, s.Config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if s.Config.Security == SecurityStartTLS {
		if ok, _ := client.Extension("STARTTLS"); !ok {
			return errors.New("server does not support STARTTLS")
		}
		if err := client.StartTLS(s.tlsConfig()); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if s.Config.Username != "" {
		auth := smtp.PlainAuth("", s.Config.Username, s.Config.Password, s.Config.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := client.Mail(s.Config.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write(s.compose(to, subject, body)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		return fmt.Errorf("failed to quit SMTP session: %w", err)
	}
	return nil
}

func (s *SMTPSender) compose(to, subject, body string) []byte {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	domain := s.Config.Host
	if at := strings.LastIndexByte(s.Config.From, '@'); at >= 0 {
		domain = s.Config.From[at+1:]
	}

	var msg bytes.Buffer
	headers := [][2]string{
		{"From", s.Config.From},
		{"To", to},
		{"Subject", subject},
		{"Date", now().Format(time.RFC1123Z)},
		{"Message-ID", "<" + idx.New().String() + "@" + domain + ">"},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/plain; charset=UTF-8"},
	}
	for _, h := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", h[0], h[1])
	}
	msg.WriteString("\r\n")
	msg.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	msg.WriteString("\r\n")
	return msg.Bytes()
}
