package repositories

import (
	"context"

	"github.com/google/uuid"
	"seller-panel.backend/internal/domain/entities"
)

// CategoryRepository defines category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entities.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error)
	GetOwned(ctx context.Context, id, sellerID uuid.UUID) (*entities.Category, error)
	// LockOwned reads the category under an exclusive row lock for the rest of the transaction.
	LockOwned(ctx context.Context, id, sellerID uuid.UUID) (*entities.Category, error)
	// ShareOwned reads the category under a shared row lock so it cannot be deleted before commit.
	ShareOwned(ctx context.Context, id, sellerID uuid.UUID) (*entities.Category, error)
	GetByName(ctx context.Context, sellerID uuid.UUID, name string) (*entities.Category, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entities.Category, error)
	Update(ctx context.Context, category *entities.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	DetachChildren(ctx context.Context, parentID uuid.UUID) (int64, error)
	CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error)
}

// ProductRepository defines product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entities.Product) error
	GetOwned(ctx context.Context, id, sellerID uuid.UUID) (*entities.Product, error)
	// LockOwned reads the product under an exclusive row lock; variant writes serialize on it.
	LockOwned(ctx context.Context, id, sellerID uuid.UUID) (*entities.Product, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]*entities.Product, int64, error)
	Update(ctx context.Context, product *entities.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

// VariantRepository defines variant data operations
type VariantRepository interface {
	Create(ctx context.Context, variant *entities.Variant) error
	GetOwned(ctx context.Context, id, sellerID uuid.UUID) (*entities.Variant, error)
	GetBySKU(ctx context.Context, sku string) (*entities.Variant, error)
	GetByProductAndName(ctx context.Context, productID uuid.UUID, name string) (*entities.Variant, error)
	ListByProducts(ctx context.Context, productIDs []uuid.UUID) ([]*entities.Variant, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	Update(ctx context.Context, variant *entities.Variant) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	StockSummary(ctx context.Context, sellerID uuid.UUID) (totalStock int64, outOfStock int64, err error)
}
