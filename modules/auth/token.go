package auth

import (
	"log/slog"
	"time"

	"github.com/gigledger/gigledger/pkg/jwt"
	"github.com/gigledger/gigledger/pkg/logger"
)

// DefaultTokenTTL is the session token validity window.
const DefaultTokenTTL = 24 * time.Hour

// Claims are the identity attributes embedded in a session token. Immutable
// after issuance; validity is determined solely by signature and expiry.
type Claims struct {
	jwt.StandardClaims
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// TokenIssuer mints and validates signed session tokens. Tokens are not
// persisted server-side; there is no revocation.
type TokenIssuer struct {
	svc *jwt.Service
	ttl time.Duration
	now func() time.Time
	log *slog.Logger
}

// NewTokenIssuer creates an issuer signing with secret. ttl <= 0 falls back
// to DefaultTokenTTL.
func NewTokenIssuer(secret string, ttl time.Duration, log *slog.Logger) (*TokenIssuer, error) {
	svc, err := jwt.NewFromString(secret)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if log == nil {
		log = logger.Discard()
	}
	return &TokenIssuer{svc: svc, ttl: ttl, now: time.Now, log: log}, nil
}

// Issue mints a signed token carrying the account's identity claims.
func (t *TokenIssuer) Issue(acct Account) (string, error) {
	now := t.now()
	return t.svc.Generate(Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   acct.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(t.ttl).Unix(),
		},
		ID:    acct.ID,
		Email: acct.Email,
		Name:  acct.Name,
		Role:  acct.Role,
	})
}

// Verify checks signature and expiry. Every structural or temporal failure
// collapses to ErrTokenInvalid; the distinct cause is logged for operability.
func (t *TokenIssuer) Verify(token string) (*Claims, error) {
	var claims Claims
	if err := t.svc.Parse(token, &claims); err != nil {
		t.log.Debug("token verification failed",
			logger.Error(err),
			logger.Component("token_issuer"),
		)
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}
