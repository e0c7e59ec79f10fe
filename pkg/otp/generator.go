// Package otp generates one-time numeric passcodes from a cryptographically
// secure random source.
package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// DefaultLength is the standard code length for login challenges.
const DefaultLength = 6

var ErrInvalidLength = errors.New("otp: length must be between 1 and 18")

// Generate draws a value uniformly from [0, 10^length) using crypto/rand and
// returns it zero-padded to length digits. rand.Int rejection-samples, so
// there is no modulo bias.
func Generate(length int) (string, error) {
	if length < 1 || length > 18 {
		return "", ErrInvalidLength
	}

	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("otp: generate: %w", err)
	}

	return fmt.Sprintf("%0*d", length, n), nil
}
