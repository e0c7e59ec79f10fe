package auth

import "errors"

// Caller-facing error taxonomy. Credential and OTP failures are deliberately
// coarse so the boundary never reveals which part of the check failed; the
// distinct internal cause is logged instead.
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidOrExpiredOTP  = errors.New("invalid or expired otp")
	ErrOTPExpired           = errors.New("otp expired")
	ErrDispatchFailed       = errors.New("otp dispatch failed")
	ErrTokenInvalid         = errors.New("invalid token")
	ErrAccountNotFound      = errors.New("account not found")
	ErrTooManyAttempts      = errors.New("too many verification attempts")
	ErrMalformedPasswordHash = errors.New("malformed password hash")
)

// ErrChallengeNotFound is internal to the challenge store: no record matches
// the (email, code) tuple. The verifier collapses it into ErrInvalidOrExpiredOTP.
var ErrChallengeNotFound = errors.New("challenge not found")
