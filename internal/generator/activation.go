// internal/generator/activation.go
package generator

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	activationAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	activationLength   = 6
)

// GenerateActivationCode returns the 6-character alphanumeric code sent after
// registration.
func GenerateActivationCode() (string, error) {
	code := make([]byte, activationLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(activationAlphabet))))
		if err != nil {
			return "", fmt.Errorf("activation code generation: %w", err)
		}
		code[i] = activationAlphabet[n.Int64()]
	}
	return string(code), nil
}
