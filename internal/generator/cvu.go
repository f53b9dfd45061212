// internal/generator/cvu.go
package generator

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

const cvuLength = 22

// CVUExistsFunc reports whether a CVU is already assigned.
type CVUExistsFunc func(ctx context.Context, cvu string) (bool, error)

// GenerateCVU returns a 22-digit account number whose first digit is 1-9,
// retrying until the uniqueness check passes.
func GenerateCVU(ctx context.Context, exists CVUExistsFunc) (string, error) {
	for {
		cvu, err := randomCVU()
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, cvu)
		if err != nil {
			return "", fmt.Errorf("cvu uniqueness check: %w", err)
		}
		if !taken {
			return cvu, nil
		}
	}
}

func randomCVU() (string, error) {
	digits := make([]byte, cvuLength)
	first, err := rand.Int(rand.Reader, big.NewInt(9))
	if err != nil {
		return "", fmt.Errorf("cvu generation: %w", err)
	}
	digits[0] = byte('1' + first.Int64())
	for i := 1; i < cvuLength; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("cvu generation: %w", err)
		}
		digits[i] = byte('0' + d.Int64())
	}
	return string(digits), nil
}
