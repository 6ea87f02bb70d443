package pkg

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const (
	publicIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	PublicIDLength   = 5
)

// GenerateID - generates a random UUID used for rooms, games, turns and connections.
func GenerateID() string {
	return uuid.NewString()
}

// GeneratePublicID - generates the five character code players type to join a room.
func GeneratePublicID() (string, error) {
	code := make([]byte, PublicIDLength)
	limit := big.NewInt(int64(len(publicIDAlphabet)))

	for i := range code {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate public ID: %w", err)
		}

		code[i] = publicIDAlphabet[n.Int64()]
	}

	return string(code), nil
}
