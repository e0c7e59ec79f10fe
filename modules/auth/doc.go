// Package auth implements the two-phase account login flow: password
// verification followed by a time-boxed, single-use one-time-passcode
// challenge delivered by email, followed by session token issuance.
//
// The challenge store keeps at most one live challenge per email; issuing a
// new one silently replaces the old (last writer wins). A challenge is
// consumed by the first successful or detected-expired verification. Session
// tokens are stateless signed claims with a fixed validity window and no
// server-side revocation.
package auth
