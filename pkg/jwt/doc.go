// Package jwt implements compact HS256 tokens: HMAC-SHA256 signing, strict
// algorithm checking, constant-time signature verification, and temporal
// claim validation for claim types that implement Valid() error.
package jwt
