package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateID creates a unique ID in prefix-xxxxx format (5-char hex).
func GenerateID(prefix string) (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("models: generate ID: %w", err)
	}
	return prefix + "-" + hex.EncodeToString(b)[:5], nil
}
