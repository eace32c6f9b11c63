package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"seller-panel.backend/internal/domain/entities"
	domainerrors "seller-panel.backend/internal/domain/errors"
	"seller-panel.backend/internal/infrastructure/models"
	"seller-panel.backend/pkg/utils"
)

// ProductRepository implements product data operations
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *entities.Product) error {
	if product.ID == uuid.Nil {
		product.ID = utils.GenerateUUIDv7()
	}
	m, err := r.toModel(product)
	if err != nil {
		return err
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateWriteError(err)
	}
	product.CreatedAt = m.CreatedAt
	product.UpdatedAt = m.UpdatedAt
	return nil
}

// GetOwned returns the product only when it belongs to sellerID
func (r *ProductRepository) GetOwned(ctx context.Context, id, sellerID uuid.UUID) (*entities.Product, error) {
	var m models.Product
	if err := GetDB(ctx, r.db).Where("id = ? AND seller_id = ?", id, sellerID).First(&m).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return r.toEntity(&m)
}

// LockOwned is GetOwned with SELECT ... FOR UPDATE
func (r *ProductRepository) LockOwned(ctx context.Context, id, sellerID uuid.UUID) (*entities.Product, error) {
	var m models.Product
	err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ? AND seller_id = ?", id, sellerID).
		First(&m).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return r.toEntity(&m)
}

// ListBySeller returns a page of products, newest first; limit 0 returns all
func (r *ProductRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]*entities.Product, int64, error) {
	var total int64
	query := GetDB(ctx, r.db).Model(&models.Product{}).Where("seller_id = ?", sellerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Product
	find := GetDB(ctx, r.db).Where("seller_id = ?", sellerID).Order("created_at DESC")
	if limit > 0 {
		find = find.Limit(limit).Offset(offset)
	}
	if err := find.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.Product, 0, len(ms))
	for i := range ms {
		item, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, nil
}

// Update writes product-level fields only; variants are untouched
func (r *ProductRepository) Update(ctx context.Context, product *entities.Product) error {
	m, err := r.toModel(product)
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"category_id":       m.CategoryID,
		"title":             m.Title,
		"brand":             m.Brand,
		"description":       m.Description,
		"short_description": m.ShortDescription,
		"tags":              m.Tags,
		"images":            m.Images,
		"attributes":        m.Attributes,
		"shipping_details":  m.ShippingDetails,
		"tax_percentage":    m.TaxPercentage,
		"hsn_code":          m.HSNCode,
		"status":            m.Status,
		"updated_at":        time.Now(),
	}

	result := GetDB(ctx, r.db).
		Model(&models.Product{}).
		Where("id = ? AND seller_id = ?", product.ID, product.SellerID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.Product{}).Where("seller_id = ?", sellerID).Count(&count).Error
	return count, err
}

func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *ProductRepository) toModel(e *entities.Product) (*models.Product, error) {
	tags, err := encodeJSON(nonNilStrings(e.Tags))
	if err != nil {
		return nil, fmt.Errorf("encode product tags: %w", err)
	}
	images, err := encodeJSON(nonNilStrings(e.Images))
	if err != nil {
		return nil, fmt.Errorf("encode product images: %w", err)
	}
	attrs, err := encodeJSON(e.Attributes)
	if err != nil {
		return nil, fmt.Errorf("encode product attributes: %w", err)
	}
	shipping, err := encodeJSON(e.ShippingDetails)
	if err != nil {
		return nil, fmt.Errorf("encode shipping details: %w", err)
	}
	return &models.Product{
		ID:               e.ID,
		SellerID:         e.SellerID,
		CategoryID:       e.CategoryID,
		Title:            e.Title,
		Brand:            e.Brand,
		Description:      e.Description,
		ShortDescription: e.ShortDescription,
		Tags:             tags,
		Images:           images,
		Attributes:       attrs,
		ShippingDetails:  shipping,
		TaxPercentage:    e.TaxPercentage,
		HSNCode:          e.HSNCode,
		Status:           string(e.Status),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}, nil
}

func (r *ProductRepository) toEntity(m *models.Product) (*entities.Product, error) {
	e := &entities.Product{
		ID:               m.ID,
		SellerID:         m.SellerID,
		CategoryID:       m.CategoryID,
		Title:            m.Title,
		Brand:            m.Brand,
		Description:      m.Description,
		ShortDescription: m.ShortDescription,
		Tags:             []string{},
		Images:           []string{},
		TaxPercentage:    m.TaxPercentage,
		HSNCode:          m.HSNCode,
		Status:           entities.ProductStatus(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if err := decodeJSON(m.Tags, &e.Tags); err != nil {
		return nil, fmt.Errorf("decode product tags: %w", err)
	}
	if err := decodeJSON(m.Images, &e.Images); err != nil {
		return nil, fmt.Errorf("decode product images: %w", err)
	}
	if err := decodeJSON(m.Attributes, &e.Attributes); err != nil {
		return nil, fmt.Errorf("decode product attributes: %w", err)
	}
	if err := decodeJSON(m.ShippingDetails, &e.ShippingDetails); err != nil {
		return nil, fmt.Errorf("decode shipping details: %w", err)
	}
	return e, nil
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
