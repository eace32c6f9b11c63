package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12
	// OTPDigits is the length of one-time login and verification codes
	OTPDigits = 6
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomInt                  = rand.Int
)

// HashPassword hashes a secret using bcrypt
func HashPassword(password string, cost int) (string, error) {
	bytes, err := bcryptGenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword compares a secret with a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Hasher hashes passwords and OTP codes with a fixed bcrypt cost
type Hasher struct {
	cost int
}

// NewHasher creates a bcrypt hasher; a cost outside bcrypt's range falls back to DefaultCost
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(plain string) (string, error) {
	return HashPassword(plain, h.cost)
}

func (h *Hasher) Verify(plain, hash string) bool {
	return CheckPassword(plain, hash)
}

// GenerateOTP returns a zero-padded numeric code of the given length
func GenerateOTP(digits int) (string, error) {
	if digits <= 0 {
		digits = OTPDigits
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := randomInt(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}
