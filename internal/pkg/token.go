package pkg

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const tokenSize = 32

// GenerateToken - generates a random URL-safe token.
func GenerateToken() (string, error) {
	b := make([]byte, tokenSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
