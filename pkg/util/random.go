package util

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandomToken returns a hex token of 2*n characters, used for
// password reset tokens.
func GenerateRandomToken(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
