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

// CategoryRepository implements category data operations
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	if category.ID == uuid.Nil {
		category.ID = utils.GenerateUUIDv7()
	}
	m, err := r.toModel(category)
	if err != nil {
		return err
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translateWriteError(err)
	}
	category.CreatedAt = m.CreatedAt
	category.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	var m models.Category
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return r.toEntity(&m)
}

// GetOwned returns the category only when it belongs to sellerID
func (r *CategoryRepository) GetOwned(ctx context.Context, id, sellerID uuid.UUID) (*entities.Category, error) {
	var m models.Category
	if err := GetDB(ctx, r.db).Where("id = ? AND seller_id = ?", id, sellerID).First(&m).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return r.toEntity(&m)
}

func (r *CategoryRepository) LockOwned(ctx context.Context, id, sellerID uuid.UUID) (*entities.Category, error) {
	return r.getOwnedLocked(ctx, id, sellerID, clause.LockingStrengthUpdate)
}

func (r *CategoryRepository) ShareOwned(ctx context.Context, id, sellerID uuid.UUID) (*entities.Category, error) {
	return r.getOwnedLocked(ctx, id, sellerID, clause.LockingStrengthShare)
}

func (r *CategoryRepository) getOwnedLocked(ctx context.Context, id, sellerID uuid.UUID, strength string) (*entities.Category, error) {
	var m models.Category
	err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: strength}).
		Where("id = ? AND seller_id = ?", id, sellerID).
		First(&m).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return r.toEntity(&m)
}

func (r *CategoryRepository) GetByName(ctx context.Context, sellerID uuid.UUID, name string) (*entities.Category, error) {
	var m models.Category
	if err := GetDB(ctx, r.db).Where("seller_id = ? AND name = ?", sellerID, name).First(&m).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return r.toEntity(&m)
}

func (r *CategoryRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entities.Category, error) {
	var ms []models.Category
	if err := GetDB(ctx, r.db).
		Where("seller_id = ?", sellerID).
		Order("name ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Category, 0, len(ms))
	for i := range ms {
		item, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *entities.Category) error {
	attrs, err := encodeJSON(category.Attributes)
	if err != nil {
		return fmt.Errorf("encode category attributes: %w", err)
	}
	updates := map[string]interface{}{
		"name":               category.Name,
		"description":        category.Description,
		"parent_category_id": category.ParentCategoryID,
		"status":             string(category.Status),
		"attributes":         attrs,
		"updated_at":         time.Now(),
	}

	result := GetDB(ctx, r.db).
		Model(&models.Category{}).
		Where("id = ? AND seller_id = ?", category.ID, category.SellerID).
		Updates(updates)
	if result.Error != nil {
		return translateWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DetachChildren turns the direct children of parentID into roots
func (r *CategoryRepository) DetachChildren(ctx context.Context, parentID uuid.UUID) (int64, error) {
	result := GetDB(ctx, r.db).
		Model(&models.Category{}).
		Where("parent_category_id = ?", parentID).
		Updates(map[string]interface{}{
			"parent_category_id": nil,
			"updated_at":         time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *CategoryRepository) CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.Category{}).Where("seller_id = ?", sellerID).Count(&count).Error
	return count, err
}

func (r *CategoryRepository) toModel(e *entities.Category) (*models.Category, error) {
	attrs, err := encodeJSON(e.Attributes)
	if err != nil {
		return nil, fmt.Errorf("encode category attributes: %w", err)
	}
	return &models.Category{
		ID:               e.ID,
		SellerID:         e.SellerID,
		Name:             e.Name,
		Description:      e.Description,
		ParentCategoryID: e.ParentCategoryID,
		Status:           string(e.Status),
		Attributes:       attrs,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}, nil
}

func (r *CategoryRepository) toEntity(m *models.Category) (*entities.Category, error) {
	e := &entities.Category{
		ID:               m.ID,
		SellerID:         m.SellerID,
		Name:             m.Name,
		Description:      m.Description,
		ParentCategoryID: m.ParentCategoryID,
		Status:           entities.CategoryStatus(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if err := decodeJSON(m.Attributes, &e.Attributes); err != nil {
		return nil, fmt.Errorf("decode category attributes: %w", err)
	}
	return e, nil
}
