package otp

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// Generate returns an 8-character uppercase hexadecimal one-time code
// built from 4 random bytes.
func Generate() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}
