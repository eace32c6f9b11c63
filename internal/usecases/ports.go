package usecases

import (
	"context"
	"io"

	"github.com/google/uuid"
	"seller-panel.backend/pkg/jwt"
)

// HashService hashes and verifies passwords and OTP codes
type HashService interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// TokenIssuer signs and verifies seller session tokens
type TokenIssuer interface {
	Issue(sellerID uuid.UUID, status string) (string, error)
	Verify(token string) (*jwt.Claims, error)
}

// ObjectStore persists an uploaded file under folder and returns its URL
type ObjectStore interface {
	Put(ctx context.Context, folder, fileName, contentType string, size int64, content io.Reader) (string, error)
	// Remove deletes an object previously returned by Put
	Remove(ctx context.Context, url string) error
}

// Notifier delivers one-time codes to sellers
type Notifier interface {
	SendOtp(ctx context.Context, to, fullName, code string, validForMinutes int) error
}

// OtpLimiter throttles OTP issuance per recipient and purpose
type OtpLimiter interface {
	Allow(ctx context.Context, subject, purpose string) error
}
