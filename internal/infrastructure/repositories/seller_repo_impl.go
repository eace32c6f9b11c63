package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"seller-panel.backend/internal/domain/entities"
	domainerrors "seller-panel.backend/internal/domain/errors"
	domainRepos "seller-panel.backend/internal/domain/repositories"
	"seller-panel.backend/internal/infrastructure/models"
	"seller-panel.backend/pkg/utils"
)

// SellerRepository implements seller data operations
type SellerRepository struct {
	db *gorm.DB
}

// NewSellerRepository creates a new seller repository
func NewSellerRepository(db *gorm.DB) *SellerRepository {
	return &SellerRepository{db: db}
}

// Create inserts a new seller
func (r *SellerRepository) Create(ctx context.Context, seller *entities.Seller) error {
	if seller.ID == uuid.Nil {
		seller.ID = utils.GenerateUUIDv7()
	}
	m, err := r.toModel(seller)
	if err != nil {
		return err
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateWriteError(err)
	}
	seller.CreatedAt = m.CreatedAt
	seller.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a seller by ID
func (r *SellerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Seller, error) {
	var m models.Seller
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return r.toEntity(&m)
}

// GetByEmail gets a seller by normalized email
func (r *SellerRepository) GetByEmail(ctx context.Context, email string) (*entities.Seller, error) {
	var m models.Seller
	if err := GetDB(ctx, r.db).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&m).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return r.toEntity(&m)
}

// ResetRegistration overwrites an unverified registration attempt
func (r *SellerRepository) ResetRegistration(ctx context.Context, seller *entities.Seller) error {
	updates := map[string]interface{}{
		"full_name":      seller.FullName,
		"mobile_number":  seller.MobileNumber,
		"password_hash":  seller.PasswordHash,
		"email_verified": false,
		"otp_hash":       seller.OtpHash.Ptr(),
		"otp_expiry":     seller.OtpExpiry.Ptr(),
		"status":         string(entities.SellerStatusPendingEmailVerification),
		"updated_at":     time.Now(),
	}
	result := GetDB(ctx, r.db).
		Model(&models.Seller{}).
		Where("id = ? AND email_verified = ?", seller.ID, false).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAlreadyExists
	}
	return nil
}

// SetOtp stores a fresh OTP hash, replacing any previous one
func (r *SellerRepository) SetOtp(ctx context.Context, id uuid.UUID, otpHash string, expiry time.Time) error {
	return r.updateByID(ctx, id, map[string]interface{}{
		"otp_hash":   otpHash,
		"otp_expiry": expiry,
		"updated_at": time.Now(),
	})
}

// ClearOtp removes the stored OTP
func (r *SellerRepository) ClearOtp(ctx context.Context, id uuid.UUID) error {
	return r.updateByID(ctx, id, map[string]interface{}{
		"otp_hash":   nil,
		"otp_expiry": nil,
		"updated_at": time.Now(),
	})
}

// MarkEmailVerified flags the email verified and advances status in one statement
func (r *SellerRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID, transition domainRepos.StatusTransition) error {
	result := GetDB(ctx, r.db).
		Model(&models.Seller{}).
		Where("id = ? AND status = ?", id, string(transition.From)).
		Updates(map[string]interface{}{
			"email_verified": true,
			"otp_hash":       nil,
			"otp_expiry":     nil,
			"status":         string(transition.To),
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.transitionMiss(ctx, id)
	}
	return nil
}

// UpdateContact updates personal contact fields
func (r *SellerRepository) UpdateContact(ctx context.Context, id uuid.UUID, fullName, mobileNumber string, alternateContact null.String) error {
	return r.updateByID(ctx, id, map[string]interface{}{
		"full_name":         fullName,
		"mobile_number":     mobileNumber,
		"alternate_contact": alternateContact.Ptr(),
		"updated_at":        time.Now(),
	})
}

// SaveSection writes a single section column, optionally advancing status
func (r *SellerRepository) SaveSection(ctx context.Context, seller *entities.Seller, section domainRepos.SellerSection, transition *domainRepos.StatusTransition) error {
	column, payload, err := sectionColumn(seller, section)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		column:       payload,
		"updated_at": time.Now(),
	}
	query := GetDB(ctx, r.db).Model(&models.Seller{}).Where("id = ?", seller.ID)
	if transition != nil {
		updates["status"] = string(transition.To)
		query = query.Where("status = ?", string(transition.From))
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if transition != nil {
			return r.transitionMiss(ctx, seller.ID)
		}
		return domainerrors.ErrNotFound
	}
	return nil
}

// ClearExpiredOtps drops OTP hashes whose expiry has passed
func (r *SellerRepository) ClearExpiredOtps(ctx context.Context, now time.Time) (int64, error) {
	result := GetDB(ctx, r.db).
		Model(&models.Seller{}).
		Where("otp_expiry IS NOT NULL AND otp_expiry < ?", now).
		Updates(map[string]interface{}{
			"otp_hash":   nil,
			"otp_expiry": nil,
		})
	return result.RowsAffected, result.Error
}

func (r *SellerRepository) updateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := GetDB(ctx, r.db).Model(&models.Seller{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// transitionMiss distinguishes a vanished seller from a status that moved underneath us.
func (r *SellerRepository) transitionMiss(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := GetDB(ctx, r.db).Model(&models.Seller{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrNotFound
	}
	return domainerrors.ErrConflict
}

func sectionColumn(seller *entities.Seller, section domainRepos.SellerSection) (string, *string, error) {
	var (
		column  string
		payload *string
		err     error
	)
	switch section {
	case domainRepos.SectionBusinessInfo:
		column = "business_info"
		payload, err = encodeOptionalJSON(seller.BusinessInfo, seller.BusinessInfo != nil)
	case domainRepos.SectionBankDetails:
		column = "bank_details"
		payload, err = encodeOptionalJSON(seller.BankDetails, seller.BankDetails != nil)
	case domainRepos.SectionDocuments:
		column = "documents"
		payload, err = encodeOptionalJSON(seller.Documents, seller.Documents != nil)
	case domainRepos.SectionStoreDetails:
		column = "store_details"
		payload, err = encodeOptionalJSON(seller.StoreDetails, seller.StoreDetails != nil)
	default:
		return "", nil, fmt.Errorf("unknown seller section %q", section)
	}
	if err != nil {
		return "", nil, fmt.Errorf("encode %s: %w", section, err)
	}
	return column, payload, nil
}

func (r *SellerRepository) toModel(e *entities.Seller) (*models.Seller, error) {
	m := &models.Seller{
		ID:               e.ID,
		FullName:         e.FullName,
		Email:            strings.ToLower(strings.TrimSpace(e.Email)),
		MobileNumber:     e.MobileNumber,
		AlternateContact: e.AlternateContact.Ptr(),
		PasswordHash:     e.PasswordHash,
		EmailVerified:    e.EmailVerified,
		OtpHash:          e.OtpHash.Ptr(),
		OtpExpiry:        e.OtpExpiry.Ptr(),
		Status:           string(e.Status),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
	for _, section := range []domainRepos.SellerSection{
		domainRepos.SectionBusinessInfo,
		domainRepos.SectionBankDetails,
		domainRepos.SectionDocuments,
		domainRepos.SectionStoreDetails,
	} {
		_, payload, err := sectionColumn(e, section)
		if err != nil {
			return nil, err
		}
		switch section {
		case domainRepos.SectionBusinessInfo:
			m.BusinessInfo = payload
		case domainRepos.SectionBankDetails:
			m.BankDetails = payload
		case domainRepos.SectionDocuments:
			m.Documents = payload
		case domainRepos.SectionStoreDetails:
			m.StoreDetails = payload
		}
	}
	return m, nil
}

func (r *SellerRepository) toEntity(m *models.Seller) (*entities.Seller, error) {
	e := &entities.Seller{
		ID:               m.ID,
		FullName:         m.FullName,
		Email:            m.Email,
		MobileNumber:     m.MobileNumber,
		AlternateContact: null.StringFromPtr(m.AlternateContact),
		PasswordHash:     m.PasswordHash,
		EmailVerified:    m.EmailVerified,
		OtpHash:          null.StringFromPtr(m.OtpHash),
		OtpExpiry:        null.TimeFromPtr(m.OtpExpiry),
		Status:           entities.SellerStatus(m.Status),
		Documents:        []entities.DocumentUpload{},
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.BusinessInfo != nil {
		e.BusinessInfo = &entities.BusinessInfo{}
		if err := decodeOptionalJSON(m.BusinessInfo, e.BusinessInfo); err != nil {
			return nil, fmt.Errorf("decode business info: %w", err)
		}
	}
	if m.BankDetails != nil {
		e.BankDetails = &entities.BankDetails{}
		if err := decodeOptionalJSON(m.BankDetails, e.BankDetails); err != nil {
			return nil, fmt.Errorf("decode bank details: %w", err)
		}
	}
	if err := decodeOptionalJSON(m.Documents, &e.Documents); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	if e.Documents == nil {
		e.Documents = []entities.DocumentUpload{}
	}
	if m.StoreDetails != nil {
		e.StoreDetails = &entities.StoreDetails{}
		if err := decodeOptionalJSON(m.StoreDetails, e.StoreDetails); err != nil {
			return nil, fmt.Errorf("decode store details: %w", err)
		}
	}
	return e, nil
}
