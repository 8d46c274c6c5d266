package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	tokenLength   = 30
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var alphabetSize = big.NewInt(int64(len(tokenAlphabet)))

// NewSessionToken returns a 30-character alphanumeric token drawn uniformly
// from crypto/rand. The token's entropy is the only thing standing between a
// bearer session and a guessing attacker, so math/rand is not an option.
func NewSessionToken() (string, error) {
	out := make([]byte, tokenLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("draw random index: %w", err)
		}
		out[i] = tokenAlphabet[n.Int64()]
	}
	return string(out), nil
}
