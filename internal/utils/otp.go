package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OTP codes are a security control, so they come from crypto/rand,
// never math/rand.
const (
	otpMin = 1000
	otpMax = 9999
)

// GenerateOTPCode returns a uniformly random 4-digit code in [1000, 9999].
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", fmt.Errorf("otp rand: %w", err)
	}
	return fmt.Sprintf("%04d", otpMin+n.Int64()), nil
}
