package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gigledger/gigledger/pkg/email"
	"github.com/gigledger/gigledger/pkg/logger"
	"github.com/gigledger/gigledger/pkg/otp"
	"github.com/gigledger/gigledger/pkg/sanitizer"
)

// DefaultChallengeTTL is the OTP validity window.
const DefaultChallengeTTL = 10 * time.Minute

// StatusOTPRequired is returned by Login when the password checked out and a
// code was dispatched.
const StatusOTPRequired = "otp_required"

// CredentialStore resolves accounts by email. Stored emails are lowercased at
// write time, so lookups expect a normalized email. Returns ErrAccountNotFound
// when no account matches.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
}

// LoginResult is the outcome of a successful first login phase. It never
// carries a token; the token is only minted after OTP verification.
type LoginResult struct {
	Status string `json:"status"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// Session is the outcome of a successful OTP verification.
type Session struct {
	Account Account `json:"account"`
	Token   string  `json:"token"`
}

// Service orchestrates the two-phase login flow: password verification, OTP
// challenge issuance and consumption, and session token issuance.
type Service struct {
	creds      CredentialStore
	hasher     *Hasher
	challenges ChallengeStore
	verifier   *Verifier
	mailer     email.EmailSender
	tokens     *TokenIssuer
	limiter    *AttemptLimiter

	codeLength   int
	challengeTTL time.Duration
	log          *slog.Logger
}

// Option configures the auth service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithChallengeTTL sets the OTP validity window.
func WithChallengeTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.challengeTTL = ttl
		}
	}
}

// WithCodeLength sets the OTP code length.
func WithCodeLength(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.codeLength = n
		}
	}
}

// WithAttemptLimiter enables failed-verification limiting.
func WithAttemptLimiter(l *AttemptLimiter) Option {
	return func(s *Service) { s.limiter = l }
}

// NewService creates the auth orchestrator.
func NewService(creds CredentialStore, hasher *Hasher, challenges ChallengeStore, mailer email.EmailSender, tokens *TokenIssuer, opts ...Option) *Service {
	s := &Service{
		creds:        creds,
		hasher:       hasher,
		challenges:   challenges,
		mailer:       mailer,
		tokens:       tokens,
		codeLength:   otp.DefaultLength,
		challengeTTL: DefaultChallengeTTL,
		log:          logger.Discard(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.verifier = NewVerifier(challenges, s.log)
	return s
}

// Login verifies the password and, on success, issues a fresh OTP challenge
// for the email (replacing any live one) and dispatches the code out-of-band.
//
// Unknown email and wrong password both return ErrInvalidCredentials, with
// the distinct cause logged internally. A dispatch failure returns
// ErrDispatchFailed but leaves the persisted challenge valid: delivery and
// challenge validity are deliberately decoupled, and a login retry simply
// overwrites the code.
func (s *Service) Login(ctx context.Context, emailAddr, password string) (*LoginResult, error) {
	emailAddr = sanitizer.NormalizeEmail(emailAddr)

	acct, err := s.creds.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			s.log.InfoContext(ctx, "login failed: unknown email",
				logger.Email(emailAddr),
				logger.Component("auth"),
			)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("credential lookup: %w", err)
	}

	ok, err := s.hasher.Verify(password, acct.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("password verify: %w", err)
	}
	if !ok {
		s.log.InfoContext(ctx, "login failed: wrong password",
			logger.Email(emailAddr),
			logger.AccountID(acct.ID),
			logger.Component("auth"),
		)
		return nil, ErrInvalidCredentials
	}

	code, err := otp.Generate(s.codeLength)
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}

	if err := s.challenges.Upsert(ctx, emailAddr, code, s.challengeTTL); err != nil {
		return nil, fmt.Errorf("persist challenge: %w", err)
	}

	if err := s.mailer.SendEmail(ctx, email.SendEmailParams{
		SendTo:   acct.Email,
		Subject:  "Your login code",
		BodyHTML: otpEmailBody(acct.Name, code, s.challengeTTL),
		Tag:      "login-otp",
	}); err != nil {
		// The challenge stays consumable; the caller retries login for a
		// fresh code.
		s.log.ErrorContext(ctx, "otp dispatch failed",
			logger.Email(emailAddr),
			logger.Error(err),
			logger.Component("auth"),
		)
		return nil, errors.Join(ErrDispatchFailed, err)
	}

	s.log.InfoContext(ctx, "otp challenge issued",
		logger.Email(emailAddr),
		logger.AccountID(acct.ID),
		logger.Component("auth"),
	)

	return &LoginResult{
		Status: StatusOTPRequired,
		Email:  acct.Email,
		Name:   acct.Name,
	}, nil
}

// VerifyOTP consumes the submitted code and, on success, issues a session
// token for the account. The account is re-fetched after verification; in
// the rare race where it was deleted in between, ErrAccountNotFound is fatal
// to the attempt.
func (s *Service) VerifyOTP(ctx context.Context, emailAddr, code string) (*Session, error) {
	emailAddr = sanitizer.NormalizeEmail(emailAddr)

	if s.limiter != nil {
		if err := s.limiter.Check(ctx, emailAddr); err != nil {
			return nil, err
		}
	}

	verifiedEmail, err := s.verifier.Verify(ctx, emailAddr, code)
	if err != nil {
		if s.limiter != nil && (errors.Is(err, ErrInvalidOrExpiredOTP) || errors.Is(err, ErrOTPExpired)) {
			s.limiter.RecordFailure(ctx, emailAddr)
		}
		return nil, err
	}

	if s.limiter != nil {
		s.limiter.Reset(ctx, emailAddr)
	}

	acct, err := s.creds.FindByEmail(ctx, verifiedEmail)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("account lookup: %w", err)
	}

	token, err := s.tokens.Issue(*acct)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.InfoContext(ctx, "session issued",
		logger.Email(verifiedEmail),
		logger.AccountID(acct.ID),
		logger.Role(acct.Role),
		logger.Component("auth"),
	)

	return &Session{
		Account: acct.Sanitized(),
		Token:   token,
	}, nil
}

func otpEmailBody(name, code string, ttl time.Duration) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>Your login code is <strong>%s</strong>. It expires in %d minutes.</p><p>If you did not request this code, you can ignore this email.</p>",
		name, code, int(ttl.Minutes()),
	)
}
