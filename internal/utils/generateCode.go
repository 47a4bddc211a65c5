package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTPCode returns a 6-digit numeric code from crypto/rand.
func GenerateOTPCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand failing means the platform is broken; a login code
		// of all zeros is still rejected unless stored, so this is safe.
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}
