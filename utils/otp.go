package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateNumericOTP generates a cryptographically random numeric code of the given length.
func GenerateNumericOTP(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid OTP length %d", length)
	}
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}

// SendOTPMessage delivers an OTP text to the given phone number.
// No SMS gateway is wired yet, so the message goes to the log.
func SendOTPMessage(phoneNumber, message string) error {
	GetLogger().Sugar().Infof("Sending OTP message to %s: %s", phoneNumber, message)
	return nil
}
