package usecases_test

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/volatiletech/null/v8"
	"seller-panel.backend/internal/domain/entities"
	"seller-panel.backend/internal/domain/repositories"
	"seller-panel.backend/pkg/logger"
)

func init() {
	logger.Init("test")
}

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock SellerRepository
type MockSellerRepository struct {
	mock.Mock
}

func (m *MockSellerRepository) Create(ctx context.Context, seller *entities.Seller) error {
	args := m.Called(ctx, seller)
	return args.Error(0)
}

func (m *MockSellerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Seller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Seller), args.Error(1)
}

func (m *MockSellerRepository) GetByEmail(ctx context.Context, email string) (*entities.Seller, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Seller), args.Error(1)
}

func (m *MockSellerRepository) ResetRegistration(ctx context.Context, seller *entities.Seller) error {
	args := m.Called(ctx, seller)
	return args.Error(0)
}

func (m *MockSellerRepository) SetOtp(ctx context.Context, id uuid.UUID, otpHash string, expiry time.Time) error {
	args := m.Called(ctx, id, otpHash, expiry)
	return args.Error(0)
}

func (m *MockSellerRepository) ClearOtp(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSellerRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID, transition repositories.StatusTransition) error {
	args := m.Called(ctx, id, transition)
	return args.Error(0)
}

func (m *MockSellerRepository) UpdateContact(ctx context.Context, id uuid.UUID, fullName, mobileNumber string, alternateContact null.String) error {
	args := m.Called(ctx, id, fullName, mobileNumber, alternateContact)
	return args.Error(0)
}

func (m *MockSellerRepository) SaveSection(ctx context.Context, seller *entities.Seller, section repositories.SellerSection, transition *repositories.StatusTransition) error {
	args := m.Called(ctx, seller, section, transition)
	return args.Error(0)
}

func (m *MockSellerRepository) ClearExpiredOtps(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// Mock CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetOwned(ctx context.Context, id, sellerID uuid.UUID) (*entities.Category, error) {
	args := m.Called(ctx, id, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *MockCategoryRepository) LockOwned(ctx context.Context, id, sellerID uuid.UUID) (*entities.Category, error) {
	args := m.Called(ctx, id, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *MockCategoryRepository) ShareOwned(ctx context.Context, id, sellerID uuid.UUID) (*entities.Category, error) {
	args := m.Called(ctx, id, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByName(ctx context.Context, sellerID uuid.UUID, name string) (*entities.Category, error) {
	args := m.Called(ctx, sellerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entities.Category, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *entities.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) DetachChildren(ctx context.Context, parentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(int64), args.Error(1)
}

// Mock ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *entities.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetOwned(ctx context.Context, id, sellerID uuid.UUID) (*entities.Product, error) {
	args := m.Called(ctx, id, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Product), args.Error(1)
}

func (m *MockProductRepository) LockOwned(ctx context.Context, id, sellerID uuid.UUID) (*entities.Product, error) {
	args := m.Called(ctx, id, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Product), args.Error(1)
}

func (m *MockProductRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]*entities.Product, int64, error) {
	args := m.Called(ctx, sellerID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entities.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

// Mock VariantRepository
type MockVariantRepository struct {
	mock.Mock
}

func (m *MockVariantRepository) Create(ctx context.Context, variant *entities.Variant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *MockVariantRepository) GetOwned(ctx context.Context, id, sellerID uuid.UUID) (*entities.Variant, error) {
	args := m.Called(ctx, id, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Variant), args.Error(1)
}

func (m *MockVariantRepository) GetBySKU(ctx context.Context, sku string) (*entities.Variant, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Variant), args.Error(1)
}

func (m *MockVariantRepository) GetByProductAndName(ctx context.Context, productID uuid.UUID, name string) (*entities.Variant, error) {
	args := m.Called(ctx, productID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Variant), args.Error(1)
}

func (m *MockVariantRepository) ListByProducts(ctx context.Context, productIDs []uuid.UUID) ([]*entities.Variant, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Variant), args.Error(1)
}

func (m *MockVariantRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVariantRepository) Update(ctx context.Context, variant *entities.Variant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *MockVariantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVariantRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVariantRepository) StockSummary(ctx context.Context, sellerID uuid.UUID) (int64, int64, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// Mock Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendOtp(ctx context.Context, to, fullName, code string, validForMinutes int) error {
	args := m.Called(ctx, to, fullName, code, validForMinutes)
	return args.Error(0)
}

// Mock ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, folder, fileName, contentType string, size int64, content io.Reader) (string, error) {
	args := m.Called(ctx, folder, fileName, contentType, size, content)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) Remove(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

// Mock OtpLimiter
type MockOtpLimiter struct {
	mock.Mock
}

func (m *MockOtpLimiter) Allow(ctx context.Context, subject, purpose string) error {
	args := m.Called(ctx, subject, purpose)
	return args.Error(0)
}
