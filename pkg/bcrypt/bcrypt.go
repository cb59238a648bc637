package bcrypt

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultCost = 10
	// MaxPasswordBytes is the longest input bcrypt reads; later bytes are
	// ignored when comparing.
	MaxPasswordBytes = 72
)

var (
	ErrEmptyPassword   = errors.New("password must not be empty")
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)

// HashPassword şifreyi rastgele bir salt ile hashler
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// ComparePassword hashlenen şifre ile plain text şifreyi karşılaştırır
func ComparePassword(hashedPassword, password string) error {
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("password comparison failed: %w", bcrypt.ErrMismatchedHashAndPassword)
	}
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		return fmt.Errorf("password comparison failed: %w", err)
	}
	return nil
}

// CheckPassword reports whether password produced hash. A malformed hash
// never matches, and neither does a password longer than MaxPasswordBytes.
func CheckPassword(password, hash string) bool {
	if len(password) > MaxPasswordBytes || !VerifyHash(hash) {
		return false
	}
	return ComparePassword(hash, password) == nil
}

// VerifyHash verilen hash'in geçerli bir bcrypt hash'i olup olmadığını kontrol eder
func VerifyHash(hash string) bool {
	return len(hash) == 60 && hash[0:2] == "$2"
}
