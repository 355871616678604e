package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateAuthTokenKey() uuid.UUID {
	return uuid.New()
}

// ==================== CALLBACK TOKEN ====================

// GenerateTokenKey creates a cryptographically random numeric token of
// exactly the given length, left-padded with zeros. No uniqueness is
// guaranteed here; a collision inside the active window surfaces as an
// ambiguous match at verification time.
func GenerateTokenKey(length int) string {
	if length <= 0 {
		length = 6
	}

	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		// crypto/rand failing means the process has no entropy source;
		// there is nothing sensible to fall back to.
		panic(fmt.Sprintf("generate token key: %v", err))
	}

	return fmt.Sprintf("%0*d", length, n)
}
