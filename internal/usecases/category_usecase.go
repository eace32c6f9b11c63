package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"seller-panel.backend/internal/domain/entities"
	domainerrors "seller-panel.backend/internal/domain/errors"
	"seller-panel.backend/internal/domain/repositories"
	"seller-panel.backend/pkg/logger"
)

// maxCategoryDepth bounds the ancestor walk when checking for cycles
const maxCategoryDepth = 64

// CategoryUsecase handles seller-scoped category management
type CategoryUsecase struct {
	uow          repositories.UnitOfWork
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
}

// NewCategoryUsecase creates a new category usecase
func NewCategoryUsecase(
	uow repositories.UnitOfWork,
	categoryRepo repositories.CategoryRepository,
	productRepo repositories.ProductRepository,
) *CategoryUsecase {
	return &CategoryUsecase{
		uow:          uow,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// CreateCategory creates a category owned by the actor
func (u *CategoryUsecase) CreateCategory(ctx context.Context, actor entities.Actor, input *entities.CreateCategoryInput) (*entities.Category, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}

	category := &entities.Category{
		SellerID:    actor.SellerID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Status:      input.Status,
	}
	if category.Status == "" {
		category.Status = entities.CategoryStatusActive
	}
	if input.Attributes != nil {
		category.Attributes = *input.Attributes
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if err := u.ensureNameFree(ctx, actor.SellerID, category.Name, uuid.Nil); err != nil {
		return nil, err
	}
	if input.ParentCategoryID != nil {
		if _, err := u.categoryRepo.GetOwned(ctx, *input.ParentCategoryID, actor.SellerID); err != nil {
			return nil, repoError(ctx, "get parent category", err, "parent category not found")
		}
		parent := *input.ParentCategoryID
		category.ParentCategoryID = &parent
	}

	if err := u.categoryRepo.Create(ctx, category); err != nil {
		return nil, repoError(ctx, "create category", err, "category not found")
	}
	logger.Info(ctx, "Category created", zap.String("category_id", category.ID.String()))
	return category, nil
}

// ListCategories returns all categories of the actor ordered by name
func (u *CategoryUsecase) ListCategories(ctx context.Context, actor entities.Actor) ([]*entities.Category, error) {
	categories, err := u.categoryRepo.ListBySeller(ctx, actor.SellerID)
	if err != nil {
		return nil, repoError(ctx, "list categories", err, "categories not found")
	}
	return categories, nil
}

// GetCategory returns one owned category
func (u *CategoryUsecase) GetCategory(ctx context.Context, actor entities.Actor, id uuid.UUID) (*entities.Category, error) {
	category, err := u.categoryRepo.GetOwned(ctx, id, actor.SellerID)
	if err != nil {
		return nil, repoError(ctx, "get category", err, "category not found")
	}
	return category, nil
}

// UpdateCategory applies a partial update
func (u *CategoryUsecase) UpdateCategory(ctx context.Context, actor entities.Actor, id uuid.UUID, input *entities.UpdateCategoryInput) (*entities.Category, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}
	category, err := u.categoryRepo.GetOwned(ctx, id, actor.SellerID)
	if err != nil {
		return nil, repoError(ctx, "get category", err, "category not found")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name != category.Name {
			if err := u.ensureNameFree(ctx, actor.SellerID, name, category.ID); err != nil {
				return nil, err
			}
		}
		category.Name = name
	}
	if input.Description != nil {
		category.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		category.Status = *input.Status
	}
	if input.Attributes != nil {
		category.Attributes = *input.Attributes
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}

	switch {
	case input.ClearParent:
		category.ParentCategoryID = nil
	case input.ParentCategoryID != nil:
		if err := u.checkParent(ctx, actor.SellerID, category.ID, *input.ParentCategoryID); err != nil {
			return nil, err
		}
		parent := *input.ParentCategoryID
		category.ParentCategoryID = &parent
	}

	if err := u.categoryRepo.Update(ctx, category); err != nil {
		return nil, repoError(ctx, "update category", err, "category not found")
	}
	return category, nil
}

// DeleteCategory removes an unreferenced category and turns its children into roots
func (u *CategoryUsecase) DeleteCategory(ctx context.Context, actor entities.Actor, id uuid.UUID) error {
	if err := requireActive(actor); err != nil {
		return err
	}
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := u.categoryRepo.LockOwned(txCtx, id, actor.SellerID); err != nil {
			return err
		}
		products, err := u.productRepo.CountByCategory(txCtx, id)
		if err != nil {
			return err
		}
		if products > 0 {
			return domainerrors.InvalidOperation("category is still used by products; move or delete them first")
		}
		detached, err := u.categoryRepo.DetachChildren(txCtx, id)
		if err != nil {
			return err
		}
		if detached > 0 {
			logger.Info(ctx, "Child categories detached", zap.String("category_id", id.String()), zap.Int64("count", detached))
		}
		return u.categoryRepo.Delete(txCtx, id)
	})
	return repoError(ctx, "delete category", err, "category not found")
}

// checkParent rejects a parent that is not owned, is the category itself or one of its descendants
func (u *CategoryUsecase) checkParent(ctx context.Context, sellerID, id, parentID uuid.UUID) error {
	if parentID == id {
		return domainerrors.InvalidOperation("a category cannot be its own parent")
	}
	current := parentID
	for depth := 0; depth < maxCategoryDepth; depth++ {
		ancestor, err := u.categoryRepo.GetOwned(ctx, current, sellerID)
		if err != nil {
			if depth == 0 {
				return repoError(ctx, "get parent category", err, "parent category not found")
			}
			return repoError(ctx, "get ancestor category", err, "category not found")
		}
		if ancestor.ParentCategoryID == nil {
			return nil
		}
		if *ancestor.ParentCategoryID == id {
			return domainerrors.InvalidOperation("a category cannot be moved under one of its descendants")
		}
		current = *ancestor.ParentCategoryID
	}
	return domainerrors.InvalidOperation("category tree is too deep")
}

func (u *CategoryUsecase) ensureNameFree(ctx context.Context, sellerID uuid.UUID, name string, self uuid.UUID) error {
	existing, err := u.categoryRepo.GetByName(ctx, sellerID, name)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return repoError(ctx, "get category by name", err, "category not found")
	}
	if existing.ID == self {
		return nil
	}
	return domainerrors.Conflict("name", "category "+name+" already exists")
}

func validateCategory(c *entities.Category) error {
	switch {
	case c.Name == "":
		return domainerrors.Validation("name is required")
	case !c.Status.Valid():
		return domainerrors.Validation("status must be active or inactive")
	}
	return nil
}
