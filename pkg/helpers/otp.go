package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenOTPCode returns a 6-digit numeric code from crypto/rand.
func GenOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
