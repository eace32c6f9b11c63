package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"seller-panel.backend/internal/domain/entities"
)

// SellerSection names one independently written part of a seller record
type SellerSection string

const (
	SectionBusinessInfo SellerSection = "businessInfo"
	SectionBankDetails  SellerSection = "bankDetails"
	SectionDocuments    SellerSection = "documents"
	SectionStoreDetails SellerSection = "storeDetails"
)

// StatusTransition is a compare-and-set on the seller status
type StatusTransition struct {
	From entities.SellerStatus
	To   entities.SellerStatus
}

// SellerRepository defines seller data operations
type SellerRepository interface {
	Create(ctx context.Context, seller *entities.Seller) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Seller, error)
	GetByEmail(ctx context.Context, email string) (*entities.Seller, error)
	// ResetRegistration overwrites profile, credentials and OTP of an unverified seller.
	ResetRegistration(ctx context.Context, seller *entities.Seller) error
	SetOtp(ctx context.Context, id uuid.UUID, otpHash string, expiry time.Time) error
	ClearOtp(ctx context.Context, id uuid.UUID) error
	// MarkEmailVerified clears the OTP, sets emailVerified and applies the transition.
	MarkEmailVerified(ctx context.Context, id uuid.UUID, transition StatusTransition) error
	UpdateContact(ctx context.Context, id uuid.UUID, fullName, mobileNumber string, alternateContact null.String) error
	// SaveSection writes only the named section and, when transition is set, advances status.
	SaveSection(ctx context.Context, seller *entities.Seller, section SellerSection, transition *StatusTransition) error
	ClearExpiredOtps(ctx context.Context, now time.Time) (int64, error)
}
