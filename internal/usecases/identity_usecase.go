package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"seller-panel.backend/internal/domain/entities"
	domainerrors "seller-panel.backend/internal/domain/errors"
	"seller-panel.backend/internal/domain/repositories"
	"seller-panel.backend/pkg/crypto"
	"seller-panel.backend/pkg/logger"
	"seller-panel.backend/pkg/metrics"
)

const (
	otpPurposeRegister = "register"
	otpPurposeLogin    = "login"
)

var generateOTP = crypto.GenerateOTP

// IdentityUsecase handles seller registration, login and session lookups
type IdentityUsecase struct {
	sellerRepo   repositories.SellerRepository
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
	variantRepo  repositories.VariantRepository
	hasher       HashService
	tokens       TokenIssuer
	notifier     Notifier
	limiter      OtpLimiter
	otpTTL       time.Duration
	now          func() time.Time
}

// NewIdentityUsecase creates a new identity usecase
func NewIdentityUsecase(
	sellerRepo repositories.SellerRepository,
	categoryRepo repositories.CategoryRepository,
	productRepo repositories.ProductRepository,
	variantRepo repositories.VariantRepository,
	hasher HashService,
	tokens TokenIssuer,
	notifier Notifier,
	limiter OtpLimiter,
	otpTTL time.Duration,
) *IdentityUsecase {
	if otpTTL <= 0 {
		otpTTL = 10 * time.Minute
	}
	return &IdentityUsecase{
		sellerRepo:   sellerRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		hasher:       hasher,
		tokens:       tokens,
		notifier:     notifier,
		limiter:      limiter,
		otpTTL:       otpTTL,
		now:          time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// StartRegistration creates or replaces an unverified seller and mails a verification OTP
func (u *IdentityUsecase) StartRegistration(ctx context.Context, input *entities.RegisterSellerInput) (*entities.Seller, error) {
	email := normalizeEmail(input.Email)
	fullName := strings.TrimSpace(input.FullName)
	mobile := strings.TrimSpace(input.MobileNumber)
	switch {
	case fullName == "":
		return nil, domainerrors.Validation("fullName is required")
	case email == "" || !strings.Contains(email, "@"):
		return nil, domainerrors.Validation("a valid email is required")
	case mobile == "":
		return nil, domainerrors.Validation("mobileNumber is required")
	case len(input.Password) < 6:
		return nil, domainerrors.Validation("password must be at least 6 characters")
	}

	existing, err := u.sellerRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, repoError(ctx, "find seller by email", err, "seller not found")
	}
	if existing != nil && existing.EmailVerified {
		return nil, domainerrors.Conflict("email", "a verified seller with this email already exists")
	}

	passwordHash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	code, otpHash, expiry, err := u.newOtp()
	if err != nil {
		return nil, err
	}

	seller := &entities.Seller{
		FullName:     fullName,
		Email:        email,
		MobileNumber: mobile,
		PasswordHash: passwordHash,
		Status:       entities.SellerStatusPendingEmailVerification,
		Documents:    []entities.DocumentUpload{},
	}
	seller.OtpHash.SetValid(otpHash)
	seller.OtpExpiry.SetValid(expiry)

	if existing != nil {
		seller.ID = existing.ID
		seller.CreatedAt = existing.CreatedAt
		err = u.sellerRepo.ResetRegistration(ctx, seller)
	} else {
		err = u.sellerRepo.Create(ctx, seller)
	}
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("email", "a verified seller with this email already exists")
		}
		return nil, repoError(ctx, "save registration", err, "seller not found")
	}

	logger.Info(ctx, "Seller registration started", zap.String("seller_id", seller.ID.String()), zap.Bool("restarted", existing != nil))
	if err := u.sendOtp(ctx, seller, code, otpPurposeRegister); err != nil {
		return nil, err
	}
	return seller, nil
}

// VerifyEmail checks the registration OTP and advances the seller to business info
func (u *IdentityUsecase) VerifyEmail(ctx context.Context, input *entities.VerifyOtpInput) (*entities.AuthResponse, error) {
	seller, err := u.sellerRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, repoError(ctx, "find seller by email", err, "seller not found")
	}
	if seller.EmailVerified || seller.Status != entities.SellerStatusPendingEmailVerification {
		return nil, domainerrors.InvalidState("email is already verified or the account is in a different state")
	}
	if err := u.checkOtp(seller, input.Otp); err != nil {
		return nil, err
	}

	transition := repositories.StatusTransition{
		From: entities.SellerStatusPendingEmailVerification,
		To:   entities.SellerStatusPendingBusinessInfo,
	}
	if err := u.sellerRepo.MarkEmailVerified(ctx, seller.ID, transition); err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			return nil, domainerrors.InvalidState("email is already verified")
		}
		return nil, repoError(ctx, "mark email verified", err, "seller not found")
	}
	recordTransition(ctx, seller, transition)

	seller.EmailVerified = true
	seller.OtpHash.Valid = false
	seller.OtpExpiry.Valid = false
	return u.session(seller)
}

// LoginWithPassword authenticates a verified seller by password
func (u *IdentityUsecase) LoginWithPassword(ctx context.Context, input *entities.PasswordLoginInput) (*entities.AuthResponse, error) {
	seller, err := u.sellerRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("invalid credentials")
		}
		return nil, repoError(ctx, "find seller by email", err, "seller not found")
	}
	if !u.hasher.Verify(input.Password, seller.PasswordHash) {
		return nil, domainerrors.Unauthorized("invalid credentials")
	}
	if !seller.EmailVerified {
		return nil, domainerrors.EmailNotVerified()
	}
	return u.session(seller)
}

// RequestLoginOtp mails a fresh login code, replacing any previous one
func (u *IdentityUsecase) RequestLoginOtp(ctx context.Context, input *entities.OtpRequestInput) error {
	email := normalizeEmail(input.Email)
	seller, err := u.sellerRepo.GetByEmail(ctx, email)
	if err != nil {
		return repoError(ctx, "find seller by email", err, "no account found with this email")
	}
	if !seller.EmailVerified {
		return domainerrors.Unauthorized("this account is not verified; complete registration first")
	}
	if u.limiter != nil {
		if err := u.limiter.Allow(ctx, email, otpPurposeLogin); err != nil {
			metrics.OtpRequested(otpPurposeLogin, "throttled")
			return err
		}
	}

	code, otpHash, expiry, err := u.newOtp()
	if err != nil {
		return err
	}
	if err := u.sellerRepo.SetOtp(ctx, seller.ID, otpHash, expiry); err != nil {
		return repoError(ctx, "store login otp", err, "seller not found")
	}
	return u.sendOtp(ctx, seller, code, otpPurposeLogin)
}

// VerifyLoginOtp exchanges a valid login code for a session token
func (u *IdentityUsecase) VerifyLoginOtp(ctx context.Context, input *entities.VerifyOtpInput) (*entities.AuthResponse, error) {
	seller, err := u.sellerRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, repoError(ctx, "find seller by email", err, "seller not found")
	}
	if !seller.EmailVerified {
		return nil, domainerrors.EmailNotVerified()
	}
	if err := u.checkOtp(seller, input.Otp); err != nil {
		return nil, err
	}
	if err := u.sellerRepo.ClearOtp(ctx, seller.ID); err != nil {
		return nil, repoError(ctx, "clear login otp", err, "seller not found")
	}
	seller.OtpHash.Valid = false
	seller.OtpExpiry.Valid = false
	return u.session(seller)
}

// GetProfile returns the acting seller without secrets
func (u *IdentityUsecase) GetProfile(ctx context.Context, actor entities.Actor) (*entities.Seller, error) {
	seller, err := u.sellerRepo.GetByID(ctx, actor.SellerID)
	if err != nil {
		return nil, repoError(ctx, "get seller", err, "seller not found")
	}
	return seller, nil
}

// CheckAuth returns the session summary of the acting seller
func (u *IdentityUsecase) CheckAuth(ctx context.Context, actor entities.Actor) (*entities.AuthCheck, error) {
	seller, err := u.GetProfile(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &entities.AuthCheck{
		SellerID:      seller.ID,
		Status:        seller.Status,
		EmailVerified: seller.EmailVerified,
	}, nil
}

// DashboardMetrics summarises the acting seller's catalog
func (u *IdentityUsecase) DashboardMetrics(ctx context.Context, actor entities.Actor) (*entities.DashboardMetrics, error) {
	products, err := u.productRepo.CountBySeller(ctx, actor.SellerID)
	if err != nil {
		return nil, repoError(ctx, "count products", err, "seller not found")
	}
	categories, err := u.categoryRepo.CountBySeller(ctx, actor.SellerID)
	if err != nil {
		return nil, repoError(ctx, "count categories", err, "seller not found")
	}
	totalStock, outOfStock, err := u.variantRepo.StockSummary(ctx, actor.SellerID)
	if err != nil {
		return nil, repoError(ctx, "summarise stock", err, "seller not found")
	}
	return &entities.DashboardMetrics{
		ProductCount:    products,
		CategoryCount:   categories,
		TotalStock:      totalStock,
		OutOfStockItems: outOfStock,
	}, nil
}

func (u *IdentityUsecase) newOtp() (code, hash string, expiry time.Time, err error) {
	code, err = generateOTP(crypto.OTPDigits)
	if err != nil {
		return "", "", time.Time{}, domainerrors.InternalError(err)
	}
	hash, err = u.hasher.Hash(code)
	if err != nil {
		return "", "", time.Time{}, domainerrors.InternalError(err)
	}
	return code, hash, u.now().UTC().Add(u.otpTTL), nil
}

// sendOtp mails code after it was persisted; a failed send leaves the stored OTP in place
func (u *IdentityUsecase) sendOtp(ctx context.Context, seller *entities.Seller, code, purpose string) error {
	minutes := int(u.otpTTL / time.Minute)
	if err := u.notifier.SendOtp(ctx, seller.Email, seller.FullName, code, minutes); err != nil {
		metrics.OtpRequested(purpose, "failed")
		logger.Error(ctx, "Failed to send OTP", zap.String("seller_id", seller.ID.String()), zap.String("purpose", purpose), zap.Error(err))
		return domainerrors.NotificationFailed("failed to send the verification code; please request a new one", err)
	}
	metrics.OtpRequested(purpose, "sent")
	logger.Info(ctx, "OTP issued", zap.String("seller_id", seller.ID.String()), zap.String("purpose", purpose))
	return nil
}

func (u *IdentityUsecase) checkOtp(seller *entities.Seller, code string) error {
	if !seller.OtpHash.Valid || !seller.OtpExpiry.Valid {
		return domainerrors.Validation("no active OTP; please request a new one")
	}
	if u.now().After(seller.OtpExpiry.Time) {
		return domainerrors.Validation("OTP has expired; please request a new one")
	}
	if !u.hasher.Verify(strings.TrimSpace(code), seller.OtpHash.String) {
		return domainerrors.Validation("invalid OTP")
	}
	return nil
}

func (u *IdentityUsecase) session(seller *entities.Seller) (*entities.AuthResponse, error) {
	token, err := u.tokens.Issue(seller.ID, string(seller.Status))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return &entities.AuthResponse{Token: token, Seller: seller}, nil
}

func recordTransition(ctx context.Context, seller *entities.Seller, transition repositories.StatusTransition) {
	metrics.OnboardingTransition(string(transition.From), string(transition.To))
	logger.Info(ctx, "Seller status advanced",
		zap.String("seller_id", seller.ID.String()),
		zap.String("from", string(transition.From)),
		zap.String("to", string(transition.To)),
	)
	seller.Status = transition.To
}
