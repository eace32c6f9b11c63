package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"seller-panel.backend/internal/domain/entities"
	domainerrors "seller-panel.backend/internal/domain/errors"
	"seller-panel.backend/internal/domain/repositories"
	"seller-panel.backend/pkg/logger"
	"seller-panel.backend/pkg/utils"
)

// CatalogUsecase owns product and variant writes that span more than one record
type CatalogUsecase struct {
	uow          repositories.UnitOfWork
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
	variantRepo  repositories.VariantRepository
	store        ObjectStore
}

// NewCatalogUsecase creates a new catalog usecase
func NewCatalogUsecase(
	uow repositories.UnitOfWork,
	categoryRepo repositories.CategoryRepository,
	productRepo repositories.ProductRepository,
	variantRepo repositories.VariantRepository,
	store ObjectStore,
) *CatalogUsecase {
	return &CatalogUsecase{
		uow:          uow,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		store:        store,
	}
}

// CreateProduct inserts a product and all of its variants in one transaction
func (u *CatalogUsecase) CreateProduct(ctx context.Context, actor entities.Actor, input *entities.CreateProductInput, images []entities.Upload) (*entities.Product, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}

	product := &entities.Product{
		SellerID:         actor.SellerID,
		CategoryID:       input.CategoryID,
		Title:            strings.TrimSpace(input.Title),
		Brand:            strings.TrimSpace(input.Brand),
		Description:      strings.TrimSpace(input.Description),
		ShortDescription: strings.TrimSpace(input.ShortDescription),
		Tags:             nonEmptyStrings(input.Tags),
		HSNCode:          strings.TrimSpace(input.HSNCode),
		Status:           input.Status,
	}
	if product.Status == "" {
		product.Status = entities.ProductStatusPublished
	}
	if input.Attributes != nil {
		product.Attributes = *input.Attributes
	}
	if input.ShippingDetails != nil {
		product.ShippingDetails = *input.ShippingDetails
	}
	if input.TaxPercentage != nil {
		product.TaxPercentage = *input.TaxPercentage
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if len(input.Variants) == 0 {
		return nil, domainerrors.Validation("at least one variant is required")
	}
	variants := make([]*entities.Variant, 0, len(input.Variants))
	names := make(map[string]bool, len(input.Variants))
	skus := make(map[string]bool, len(input.Variants))
	for i := range input.Variants {
		variant, err := buildVariant(actor.SellerID, &input.Variants[i])
		if err != nil {
			return nil, err
		}
		if names[variant.Name] {
			return nil, domainerrors.Conflict("name", "variant name "+variant.Name+" is repeated")
		}
		names[variant.Name] = true
		if variant.SKU.Valid {
			if skus[variant.SKU.String] {
				return nil, domainerrors.Conflict("sku", "sku "+variant.SKU.String+" is repeated")
			}
			skus[variant.SKU.String] = true
		}
		variants = append(variants, variant)
	}

	existing := nonEmptyStrings(input.ExistingImages)
	if len(existing)+len(images) == 0 {
		return nil, domainerrors.Validation("at least one product image is required")
	}
	if err := validateUploads(images, imageExtensions); err != nil {
		return nil, err
	}

	if _, err := u.categoryRepo.GetOwned(ctx, product.CategoryID, actor.SellerID); err != nil {
		return nil, repoError(ctx, "get category", err, "category not found")
	}
	for sku := range skus {
		if err := u.ensureSKUFree(ctx, sku, uuid.Nil); err != nil {
			return nil, err
		}
	}

	urls, err := putAll(ctx, u.store, productImagesFolder+actor.SellerID.String(), images)
	if err != nil {
		return nil, err
	}
	product.Images = append(existing, urls...)

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := u.categoryRepo.ShareOwned(txCtx, product.CategoryID, actor.SellerID); err != nil {
			return err
		}
		if err := u.productRepo.Create(txCtx, product); err != nil {
			return err
		}
		for _, v := range variants {
			v.ProductID = product.ID
			if err := u.variantRepo.Create(txCtx, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Warn(ctx, "Product creation rolled back", zap.String("title", product.Title), zap.Error(err))
		discardUploads(ctx, u.store, urls)
		return nil, repoError(ctx, "create product", err, "category not found")
	}

	product.Variants = variants
	logger.Info(ctx, "Product created",
		zap.String("product_id", product.ID.String()),
		zap.Int("variants", len(variants)),
	)
	return product, nil
}

// UpdateProduct changes only the product-level fields present in input
func (u *CatalogUsecase) UpdateProduct(ctx context.Context, actor entities.Actor, id uuid.UUID, input *entities.UpdateProductInput, images []entities.Upload) (*entities.Product, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}
	product, err := u.productRepo.GetOwned(ctx, id, actor.SellerID)
	if err != nil {
		return nil, repoError(ctx, "get product", err, "product not found")
	}

	categoryChanged := input.CategoryID != nil && *input.CategoryID != product.CategoryID
	if categoryChanged {
		if _, err := u.categoryRepo.GetOwned(ctx, *input.CategoryID, actor.SellerID); err != nil {
			return nil, repoError(ctx, "get category", err, "category not found")
		}
		product.CategoryID = *input.CategoryID
	}
	if input.Title != nil {
		product.Title = strings.TrimSpace(*input.Title)
	}
	if input.Brand != nil {
		product.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.ShortDescription != nil {
		product.ShortDescription = strings.TrimSpace(*input.ShortDescription)
	}
	if input.Tags != nil {
		product.Tags = nonEmptyStrings(input.Tags)
	}
	if input.Attributes != nil {
		product.Attributes = *input.Attributes
	}
	if input.ShippingDetails != nil {
		product.ShippingDetails = *input.ShippingDetails
	}
	if input.TaxPercentage != nil {
		product.TaxPercentage = *input.TaxPercentage
	}
	if input.HSNCode != nil {
		product.HSNCode = strings.TrimSpace(*input.HSNCode)
	}
	if input.Status != nil {
		product.Status = *input.Status
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	var uploaded []string
	if input.ExistingImages != nil || len(images) > 0 {
		if err := validateUploads(images, imageExtensions); err != nil {
			return nil, err
		}
		retained := product.Images
		if input.ExistingImages != nil {
			retained = nonEmptyStrings(input.ExistingImages)
		}
		if len(retained)+len(images) == 0 {
			return nil, domainerrors.Validation("at least one product image is required")
		}
		urls, err := putAll(ctx, u.store, productImagesFolder+actor.SellerID.String(), images)
		if err != nil {
			return nil, err
		}
		uploaded = urls
		product.Images = append(retained, urls...)
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if categoryChanged {
			if _, err := u.categoryRepo.ShareOwned(txCtx, product.CategoryID, actor.SellerID); err != nil {
				if errors.Is(err, domainerrors.ErrNotFound) {
					return domainerrors.NotFound("category not found")
				}
				return err
			}
		}
		return u.productRepo.Update(txCtx, product)
	})
	if err != nil {
		discardUploads(ctx, u.store, uploaded)
		return nil, repoError(ctx, "update product", err, "product not found")
	}
	return u.withVariants(ctx, product)
}

// DeleteProduct removes a product and every variant under it
func (u *CatalogUsecase) DeleteProduct(ctx context.Context, actor entities.Actor, id uuid.UUID) error {
	if err := requireActive(actor); err != nil {
		return err
	}
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := u.productRepo.LockOwned(txCtx, id, actor.SellerID); err != nil {
			return err
		}
		removed, err := u.variantRepo.DeleteByProduct(txCtx, id)
		if err != nil {
			return err
		}
		logger.Debug(ctx, "Variants removed with product", zap.String("product_id", id.String()), zap.Int64("count", removed))
		return u.productRepo.Delete(txCtx, id)
	})
	return repoError(ctx, "delete product", err, "product not found")
}

// ListProducts returns a page of the seller's products with their variants
func (u *CatalogUsecase) ListProducts(ctx context.Context, actor entities.Actor, page, limit int) ([]*entities.Product, int64, error) {
	params := utils.GetPaginationParams(page, limit)
	products, total, err := u.productRepo.ListBySeller(ctx, actor.SellerID, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, 0, repoError(ctx, "list products", err, "products not found")
	}

	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	variants, err := u.variantRepo.ListByProducts(ctx, ids)
	if err != nil {
		return nil, 0, repoError(ctx, "list variants", err, "variants not found")
	}

	byProduct := make(map[uuid.UUID][]*entities.Variant, len(products))
	for _, v := range variants {
		byProduct[v.ProductID] = append(byProduct[v.ProductID], v)
	}
	for _, p := range products {
		p.Variants = byProduct[p.ID]
		if p.Variants == nil {
			p.Variants = []*entities.Variant{}
		}
	}
	return products, total, nil
}

// GetProduct returns one owned product with its variants
func (u *CatalogUsecase) GetProduct(ctx context.Context, actor entities.Actor, id uuid.UUID) (*entities.Product, error) {
	product, err := u.productRepo.GetOwned(ctx, id, actor.SellerID)
	if err != nil {
		return nil, repoError(ctx, "get product", err, "product not found")
	}
	return u.withVariants(ctx, product)
}

// AddVariant appends a variant to an owned product
func (u *CatalogUsecase) AddVariant(ctx context.Context, actor entities.Actor, productID uuid.UUID, input *entities.VariantInput) (*entities.Variant, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}
	variant, err := buildVariant(actor.SellerID, input)
	if err != nil {
		return nil, err
	}
	variant.ProductID = productID

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := u.productRepo.LockOwned(txCtx, productID, actor.SellerID); err != nil {
			return err
		}
		if err := u.ensureNameFree(txCtx, productID, variant.Name, uuid.Nil); err != nil {
			return err
		}
		if variant.SKU.Valid {
			if err := u.ensureSKUFree(txCtx, variant.SKU.String, uuid.Nil); err != nil {
				return err
			}
		}
		return u.variantRepo.Create(txCtx, variant)
	})
	if err != nil {
		return nil, repoError(ctx, "add variant", err, "product not found")
	}
	return variant, nil
}

// UpdateVariant applies a partial update; zero stock always means outOfStock
func (u *CatalogUsecase) UpdateVariant(ctx context.Context, actor entities.Actor, id uuid.UUID, input *entities.UpdateVariantInput) (*entities.Variant, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}
	variant, err := u.variantRepo.GetOwned(ctx, id, actor.SellerID)
	if err != nil {
		return nil, repoError(ctx, "get variant", err, "variant not found")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerrors.Validation("variant name is required")
		}
		if name != variant.Name {
			if err := u.ensureNameFree(ctx, variant.ProductID, name, variant.ID); err != nil {
				return nil, err
			}
		}
		variant.Name = name
	}
	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku == "" {
			variant.SKU = null.String{}
		} else {
			if !variant.SKU.Valid || sku != variant.SKU.String {
				if err := u.ensureSKUFree(ctx, sku, variant.ID); err != nil {
					return nil, err
				}
			}
			variant.SKU = null.StringFrom(sku)
		}
	}
	if input.Barcode != nil {
		variant.Barcode = strings.TrimSpace(*input.Barcode)
	}
	if input.MRP != nil {
		variant.MRP = *input.MRP
	}
	if input.SellingPrice != nil {
		variant.SellingPrice = *input.SellingPrice
	}
	if input.Stock != nil {
		variant.Stock = *input.Stock
	}
	if input.LeadTime != nil {
		variant.LeadTime = strings.TrimSpace(*input.LeadTime)
	}
	if input.Status != nil {
		variant.Status = *input.Status
	}
	if err := validateVariant(variant); err != nil {
		return nil, err
	}
	variant.ApplyStockRule()

	if err := u.variantRepo.Update(ctx, variant); err != nil {
		return nil, repoError(ctx, "update variant", err, "variant not found")
	}
	return variant, nil
}

// DeleteVariant removes a variant unless it is the last one of its product
func (u *CatalogUsecase) DeleteVariant(ctx context.Context, actor entities.Actor, id uuid.UUID) error {
	if err := requireActive(actor); err != nil {
		return err
	}
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		variant, err := u.variantRepo.GetOwned(txCtx, id, actor.SellerID)
		if err != nil {
			return err
		}
		// Concurrent deletes under the same product queue here, so the count below is current.
		if _, err := u.productRepo.LockOwned(txCtx, variant.ProductID, actor.SellerID); err != nil {
			return err
		}
		count, err := u.variantRepo.CountByProduct(txCtx, variant.ProductID)
		if err != nil {
			return err
		}
		if count <= 1 {
			return domainerrors.InvalidOperation("cannot delete the last variant of a product; delete the product instead")
		}
		return u.variantRepo.Delete(txCtx, id)
	})
	return repoError(ctx, "delete variant", err, "variant not found")
}

func (u *CatalogUsecase) withVariants(ctx context.Context, product *entities.Product) (*entities.Product, error) {
	variants, err := u.variantRepo.ListByProducts(ctx, []uuid.UUID{product.ID})
	if err != nil {
		return nil, repoError(ctx, "list variants", err, "variants not found")
	}
	product.Variants = variants
	return product, nil
}

// ensureSKUFree fails with Conflict when sku belongs to a variant other than self
func (u *CatalogUsecase) ensureSKUFree(ctx context.Context, sku string, self uuid.UUID) error {
	existing, err := u.variantRepo.GetBySKU(ctx, sku)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return repoError(ctx, "get variant by sku", err, "variant not found")
	}
	if existing.ID == self {
		return nil
	}
	return domainerrors.Conflict("sku", "sku "+sku+" already exists")
}

func (u *CatalogUsecase) ensureNameFree(ctx context.Context, productID uuid.UUID, name string, self uuid.UUID) error {
	existing, err := u.variantRepo.GetByProductAndName(ctx, productID, name)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return repoError(ctx, "get variant by name", err, "variant not found")
	}
	if existing.ID == self {
		return nil
	}
	return domainerrors.Conflict("name", "variant "+name+" already exists for this product")
}

func validateProduct(p *entities.Product) error {
	switch {
	case p.Title == "":
		return domainerrors.Validation("title is required")
	case p.Brand == "":
		return domainerrors.Validation("brand is required")
	case p.Description == "":
		return domainerrors.Validation("description is required")
	case p.CategoryID == uuid.Nil:
		return domainerrors.Validation("categoryId is required")
	case !p.Status.Valid():
		return domainerrors.Validation("status must be one of draft, pending-approval, published, rejected, archived")
	case p.TaxPercentage < 0 || p.TaxPercentage > 100:
		return domainerrors.Validation("taxPercentage must be between 0 and 100")
	}
	return nil
}

// buildVariant validates one variant input and applies defaults
func buildVariant(sellerID uuid.UUID, input *entities.VariantInput) (*entities.Variant, error) {
	if input.MRP == nil || input.SellingPrice == nil {
		return nil, domainerrors.Validation("variant mrp and sellingPrice are required")
	}
	variant := &entities.Variant{
		SellerID:     sellerID,
		Name:         strings.TrimSpace(input.Name),
		Barcode:      strings.TrimSpace(input.Barcode),
		MRP:          *input.MRP,
		SellingPrice: *input.SellingPrice,
		LeadTime:     strings.TrimSpace(input.LeadTime),
		Status:       input.Status,
	}
	if sku := strings.TrimSpace(input.SKU); sku != "" {
		variant.SKU = null.StringFrom(sku)
	}
	if input.Stock != nil {
		variant.Stock = *input.Stock
	}
	if variant.Status == "" {
		variant.Status = entities.VariantStatusActive
	}
	if err := validateVariant(variant); err != nil {
		return nil, err
	}
	variant.ApplyStockRule()
	return variant, nil
}

func validateVariant(v *entities.Variant) error {
	switch {
	case v.Name == "":
		return domainerrors.Validation("variant name is required")
	case v.MRP <= 0:
		return domainerrors.Validation("mrp must be greater than 0")
	case v.SellingPrice < 0:
		return domainerrors.Validation("sellingPrice cannot be negative")
	case v.SellingPrice > v.MRP:
		return domainerrors.Validation("sellingPrice cannot exceed mrp")
	case v.Stock < 0:
		return domainerrors.Validation("stock cannot be negative")
	case !v.Status.Valid():
		return domainerrors.Validation("variant status must be one of active, inactive, outOfStock")
	}
	return nil
}
