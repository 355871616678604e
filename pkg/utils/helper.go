package utils

import (
	"crypto/rand"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ==================== PASSWORDS ====================

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// UnusablePasswordHash returns a bcrypt hash of random bytes that were
// never exposed, so no presented password can ever match it. Set on
// accounts that authenticate through callback tokens only.
func UnusablePasswordHash() string {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		panic("unusable password hash: " + err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword(buf, bcrypt.MinCost)
	if err != nil {
		panic("unusable password hash: " + err.Error())
	}

	return string(hash)
}
