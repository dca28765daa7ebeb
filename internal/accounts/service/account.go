package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/passageqa/internal/accounts/domain"
	"github.com/aussiebroadwan/passageqa/internal/accounts/otp"
	"github.com/aussiebroadwan/passageqa/internal/accounts/store"
	"github.com/aussiebroadwan/passageqa/pkg/cryptox"
	"github.com/aussiebroadwan/passageqa/pkg/jwtx"
	"github.com/aussiebroadwan/passageqa/pkg/metrics"
	"github.com/aussiebroadwan/passageqa/pkg/slogx"
)

// Account event labels recorded in metrics.
const (
	EventSignupOTP    = "signup_otp"
	EventSignupVerify = "signup_verify"
	EventSignup       = "signup"
	EventLogin        = "login"
	EventResetOTP     = "reset_otp"
	EventResetVerify  = "reset_verify"
	EventReset        = "reset"
	EventDelete       = "delete"
)

// SignupRequest is the first step of signup. The password is validated here
// so the user learns about a weak password before waiting for an email.
type SignupRequest struct {
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
}

// AccountService runs the signup, login, password reset and deletion flows.
// It holds no durable state: progress between steps is carried by signed
// tickets that bind the verified email.
type AccountService struct {
	Credentials *CredentialStore
	OTP         *otp.Registry

	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string

	TicketTTL  time.Duration
	SessionTTL time.Duration

	// Metrics is optional.
	Metrics *metrics.Metrics

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *AccountService) ticketTTL() time.Duration {
	if s.TicketTTL <= 0 {
		return jwtx.DefaultTicketTTL
	}
	return s.TicketTTL
}

func (s *AccountService) sessionTTL() time.Duration {
	if s.SessionTTL <= 0 {
		return jwtx.DefaultSessionTTL
	}
	return s.SessionTTL
}

func (s *AccountService) record(event string, err error) {
	if s.Metrics != nil {
		s.Metrics.RecordAccount(event, err == nil)
	}
}

// normalizeEmail trims surrounding whitespace. Case is kept: the users table
// compares emails exactly.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// RequestSignupOTP validates the signup form and sends a code to the email.
// A delivery failure returns ErrDeliveryFailure; the code stays valid.
func (s *AccountService) RequestSignupOTP(ctx context.Context, req SignupRequest) (err error) {
	defer func() { s.record(EventSignupOTP, err) }()

	email := normalizeEmail(req.Email)
	if email == "" {
		return domain.ErrMissingEmail
	}
	if strings.TrimSpace(req.Username) == "" {
		return domain.ErrMissingUsername
	}
	if err := validateNewPassword(req.Password, req.ConfirmPassword); err != nil {
		return err
	}
	return s.issue(ctx, email)
}

// VerifySignupOTP checks the code and returns a signup ticket for email.
func (s *AccountService) VerifySignupOTP(ctx context.Context, email, code string) (_ domain.IssuedToken, err error) {
	defer func() { s.record(EventSignupVerify, err) }()
	return s.verifyForTicket(ctx, email, code, jwtx.PurposeSignup)
}

// CompleteSignup creates the user for the email bound by ticket and logs
// them in. A taken username or email returns ErrDuplicateIdentity.
func (s *AccountService) CompleteSignup(ctx context.Context, ticket, username, password, confirm string) (_ domain.IssuedToken, err error) {
	defer func() { s.record(EventSignup, err) }()
	l := slogx.FromContext(ctx)

	claims, err := s.verifyTicket(ticket, jwtx.PurposeSignup)
	if err != nil {
		return domain.IssuedToken{}, err
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return domain.IssuedToken{}, domain.ErrMissingUsername
	}
	if err := validateNewPassword(password, confirm); err != nil {
		return domain.IssuedToken{}, err
	}

	added, err := s.Credentials.AddUser(ctx, username, claims.Email, password)
	if err != nil {
		l.Error("failed to add user", slog.Any("error", err))
		return domain.IssuedToken{}, err
	}
	if !added {
		l.Info("signup rejected, identity taken", slog.String("username", username))
		return domain.IssuedToken{}, domain.ErrDuplicateIdentity
	}

	l.Info("user signed up", slog.String("username", username),
		slog.String("email_fp", cryptox.FingerprintToken(claims.Email)))
	return s.mintSession(username)
}

// Login checks the credentials and returns a session token.
func (s *AccountService) Login(ctx context.Context, username, password string) (_ domain.IssuedToken, err error) {
	defer func() { s.record(EventLogin, err) }()
	l := slogx.FromContext(ctx)

	ok, err := s.Credentials.Authenticate(ctx, username, password)
	if err != nil {
		l.Error("failed to authenticate", slog.Any("error", err))
		return domain.IssuedToken{}, err
	}
	if !ok {
		l.Info("login failed", slog.String("username", username))
		return domain.IssuedToken{}, domain.ErrInvalidCredentials
	}
	return s.mintSession(username)
}

// RequestPasswordReset sends a code to email. Whether an account exists is
// not checked here, so the response never reveals registered addresses.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) (err error) {
	defer func() { s.record(EventResetOTP, err) }()

	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrMissingEmail
	}
	return s.issue(ctx, email)
}

// VerifyPasswordReset checks the code and returns a reset ticket for email.
func (s *AccountService) VerifyPasswordReset(ctx context.Context, email, code string) (_ domain.IssuedToken, err error) {
	defer func() { s.record(EventResetVerify, err) }()
	return s.verifyForTicket(ctx, email, code, jwtx.PurposeReset)
}

// ResetPassword sets a new password for the email bound by ticket.
// ErrNotFound when no account uses that email.
func (s *AccountService) ResetPassword(ctx context.Context, ticket, newPassword, confirm string) (err error) {
	defer func() { s.record(EventReset, err) }()
	l := slogx.FromContext(ctx)

	claims, err := s.verifyTicket(ticket, jwtx.PurposeReset)
	if err != nil {
		return err
	}
	if err := validateNewPassword(newPassword, confirm); err != nil {
		return err
	}

	ok, err := s.Credentials.ResetPassword(ctx, claims.Email, newPassword)
	if err != nil {
		l.Error("failed to reset password", slog.Any("error", err))
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}

	l.Info("password reset", slog.String("email_fp", cryptox.FingerprintToken(claims.Email)))
	return nil
}

// DeleteAccount removes username once confirm equals DeleteConfirmation.
func (s *AccountService) DeleteAccount(ctx context.Context, username, confirm string) (err error) {
	defer func() { s.record(EventDelete, err) }()
	l := slogx.FromContext(ctx)

	if confirm != DeleteConfirmation {
		return domain.ErrConfirmationRequired
	}

	ok, err := s.Credentials.DeleteUser(ctx, username)
	if err != nil {
		l.Error("failed to delete user", slog.Any("error", err))
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}

	l.Info("account deleted", slog.String("username", username))
	return nil
}

// GetAccount returns the stored user.
func (s *AccountService) GetAccount(ctx context.Context, username string) (domain.User, error) {
	u, err := s.Credentials.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

func (s *AccountService) issue(ctx context.Context, email string) error {
	sent, err := s.OTP.Issue(ctx, email)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to issue otp", slog.Any("error", err))
		return err
	}
	if !sent {
		return domain.ErrDeliveryFailure
	}
	return nil
}

func (s *AccountService) verifyForTicket(ctx context.Context, email, code string, purpose jwtx.Purpose) (domain.IssuedToken, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.IssuedToken{}, domain.ErrMissingEmail
	}

	outcome, err := s.OTP.Verify(ctx, email, strings.TrimSpace(code))
	if err != nil {
		slogx.FromContext(ctx).Error("failed to verify otp", slog.Any("error", err))
		return domain.IssuedToken{}, err
	}
	if err := outcome.Err(); err != nil {
		return domain.IssuedToken{}, err
	}

	return s.mint(jwtx.NewTicketClaims(purpose, email, s.ticketTTL(), s.Issuer, s.now()))
}

func (s *AccountService) mintSession(username string) (domain.IssuedToken, error) {
	return s.mint(jwtx.NewSessionClaims(username, s.sessionTTL(), s.Issuer, s.now()))
}

func (s *AccountService) mint(claims jwtx.Claims) (domain.IssuedToken, error) {
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.IssuedToken{}, fmt.Errorf("sign %s token: %w", claims.Purpose, err)
	}
	return domain.IssuedToken{Value: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (s *AccountService) verifyTicket(token string, purpose jwtx.Purpose) (jwtx.Claims, error) {
	claims, err := s.Verifier.Verify(strings.TrimSpace(token), purpose)
	if err != nil {
		return jwtx.Claims{}, fmt.Errorf("%w: %w", domain.ErrInvalidTicket, err)
	}
	return claims, nil
}
