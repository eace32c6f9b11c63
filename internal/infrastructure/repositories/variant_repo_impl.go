package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"seller-panel.backend/internal/domain/entities"
	domainerrors "seller-panel.backend/internal/domain/errors"
	"seller-panel.backend/internal/infrastructure/models"
	"seller-panel.backend/pkg/utils"
)

// VariantRepository implements variant data operations
type VariantRepository struct {
	db *gorm.DB
}

// NewVariantRepository creates a new variant repository
func NewVariantRepository(db *gorm.DB) *VariantRepository {
	return &VariantRepository{db: db}
}

func (r *VariantRepository) Create(ctx context.Context, variant *entities.Variant) error {
	if variant.ID == uuid.Nil {
		variant.ID = utils.GenerateUUIDv7()
	}
	m := r.toModel(variant)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateWriteError(err)
	}
	variant.CreatedAt = m.CreatedAt
	variant.UpdatedAt = m.UpdatedAt
	return nil
}

// GetOwned returns the variant only when it belongs to sellerID
func (r *VariantRepository) GetOwned(ctx context.Context, id, sellerID uuid.UUID) (*entities.Variant, error) {
	var m models.Variant
	if err := GetDB(ctx, r.db).Where("id = ? AND seller_id = ?", id, sellerID).First(&m).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return r.toEntity(&m), nil
}

// GetBySKU looks a variant up by its store-wide SKU
func (r *VariantRepository) GetBySKU(ctx context.Context, sku string) (*entities.Variant, error) {
	var m models.Variant
	if err := GetDB(ctx, r.db).Where("sku = ?", sku).First(&m).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return r.toEntity(&m), nil
}

func (r *VariantRepository) GetByProductAndName(ctx context.Context, productID uuid.UUID, name string) (*entities.Variant, error) {
	var m models.Variant
	if err := GetDB(ctx, r.db).Where("product_id = ? AND name = ?", productID, name).First(&m).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return r.toEntity(&m), nil
}

func (r *VariantRepository) ListByProducts(ctx context.Context, productIDs []uuid.UUID) ([]*entities.Variant, error) {
	if len(productIDs) == 0 {
		return []*entities.Variant{}, nil
	}
	var ms []models.Variant
	if err := GetDB(ctx, r.db).
		Where("product_id IN ?", productIDs).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Variant, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *VariantRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.Variant{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

func (r *VariantRepository) Update(ctx context.Context, variant *entities.Variant) error {
	updates := map[string]interface{}{
		"name":          variant.Name,
		"sku":           variant.SKU.Ptr(),
		"barcode":       variant.Barcode,
		"mrp":           variant.MRP,
		"selling_price": variant.SellingPrice,
		"stock":         variant.Stock,
		"lead_time":     variant.LeadTime,
		"status":        string(variant.Status),
		"updated_at":    time.Now(),
	}

	result := GetDB(ctx, r.db).
		Model(&models.Variant{}).
		Where("id = ? AND seller_id = ?", variant.ID, variant.SellerID).
		Updates(updates)
	if result.Error != nil {
		return translateWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *VariantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.Variant{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *VariantRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	result := GetDB(ctx, r.db).Delete(&models.Variant{}, "product_id = ?", productID)
	return result.RowsAffected, result.Error
}

// StockSummary returns the total units and the number of zero-stock variants of a seller
func (r *VariantRepository) StockSummary(ctx context.Context, sellerID uuid.UUID) (int64, int64, error) {
	var row struct {
		TotalStock int64
		OutOfStock int64
	}
	err := GetDB(ctx, r.db).
		Model(&models.Variant{}).
		Select("COALESCE(SUM(stock), 0) AS total_stock, COALESCE(SUM(CASE WHEN stock = 0 THEN 1 ELSE 0 END), 0) AS out_of_stock").
		Where("seller_id = ?", sellerID).
		Scan(&row).Error
	return row.TotalStock, row.OutOfStock, err
}

func (r *VariantRepository) toModel(e *entities.Variant) *models.Variant {
	return &models.Variant{
		ID:           e.ID,
		ProductID:    e.ProductID,
		SellerID:     e.SellerID,
		Name:         e.Name,
		SKU:          e.SKU.Ptr(),
		Barcode:      e.Barcode,
		MRP:          e.MRP,
		SellingPrice: e.SellingPrice,
		Stock:        e.Stock,
		LeadTime:     e.LeadTime,
		Status:       string(e.Status),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func (r *VariantRepository) toEntity(m *models.Variant) *entities.Variant {
	return &entities.Variant{
		ID:           m.ID,
		ProductID:    m.ProductID,
		SellerID:     m.SellerID,
		Name:         m.Name,
		SKU:          null.StringFromPtr(m.SKU),
		Barcode:      m.Barcode,
		MRP:          m.MRP,
		SellingPrice: m.SellingPrice,
		Stock:        m.Stock,
		LeadTime:     m.LeadTime,
		Status:       entities.VariantStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
