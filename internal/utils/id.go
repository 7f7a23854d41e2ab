package utils

import (
	"crypto/rand"
	"encoding/hex"
)

const infoHashBytes = 10

// GenerateInfoHash returns a random hex identifier for a simulated torrent.
func GenerateInfoHash() (string, error) {
	b := make([]byte, infoHashBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
