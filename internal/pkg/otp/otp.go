package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// codeSpace is the number of distinct 6-digit codes, [100000, 999999].
const codeSpace = 900000

// NewCode returns a uniformly random 6-digit numeric code. The low bound of
// 100000 means the string never needs zero-padding, but the width formatting
// stays in place as a guard.
func NewCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpace))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
