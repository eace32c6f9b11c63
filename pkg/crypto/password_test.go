package crypto

import (
	"errors"
	"io"
	"math/big"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Password123!", bcrypt.MinCost)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	assert.True(t, CheckPassword("Password123!", hash))
	assert.False(t, CheckPassword("WrongPass", hash))
}

func TestHasher(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	hash, err := h.Hash("123456")
	assert.NoError(t, err)
	assert.True(t, h.Verify("123456", hash))
	assert.False(t, h.Verify("654321", hash))

	assert.Equal(t, DefaultCost, NewHasher(0).cost)
	assert.Equal(t, DefaultCost, NewHasher(99).cost)
}

func TestGenerateOTP(t *testing.T) {
	code, err := GenerateOTP(OTPDigits)
	assert.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), code)

	code, err = GenerateOTP(0)
	assert.NoError(t, err)
	assert.Len(t, code, OTPDigits)
}

func TestGenerateOTP_ZeroPadded(t *testing.T) {
	orig := randomInt
	t.Cleanup(func() { randomInt = orig })

	randomInt = func(io.Reader, *big.Int) (*big.Int, error) {
		return big.NewInt(42), nil
	}
	code, err := GenerateOTP(6)
	assert.NoError(t, err)
	assert.Equal(t, "000042", code)
}

func TestHashPasswordAndGenerateOTP_ErrorBranches(t *testing.T) {
	origBcrypt := bcryptGenerateFromPassword
	origRandInt := randomInt
	t.Cleanup(func() {
		bcryptGenerateFromPassword = origBcrypt
		randomInt = origRandInt
	})

	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("bcrypt failed")
	}
	_, err := HashPassword("Password123!", DefaultCost)
	assert.Error(t, err)

	randomInt = func(io.Reader, *big.Int) (*big.Int, error) {
		return nil, errors.New("rand failed")
	}
	_, err = GenerateOTP(6)
	assert.Error(t, err)
}
