package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"seller-panel.backend/internal/domain/entities"
	"seller-panel.backend/internal/interfaces/http/response"
)

const (
	productImagesField  = "images"
	defaultProductLimit = 10
)

// CatalogService manages products and their variants
type CatalogService interface {
	CreateProduct(ctx context.Context, actor entities.Actor, input *entities.CreateProductInput, images []entities.Upload) (*entities.Product, error)
	UpdateProduct(ctx context.Context, actor entities.Actor, id uuid.UUID, input *entities.UpdateProductInput, images []entities.Upload) (*entities.Product, error)
	DeleteProduct(ctx context.Context, actor entities.Actor, id uuid.UUID) error
	ListProducts(ctx context.Context, actor entities.Actor, page, limit int) ([]*entities.Product, int64, error)
	GetProduct(ctx context.Context, actor entities.Actor, id uuid.UUID) (*entities.Product, error)
	AddVariant(ctx context.Context, actor entities.Actor, productID uuid.UUID, input *entities.VariantInput) (*entities.Variant, error)
	UpdateVariant(ctx context.Context, actor entities.Actor, id uuid.UUID, input *entities.UpdateVariantInput) (*entities.Variant, error)
	DeleteVariant(ctx context.Context, actor entities.Actor, id uuid.UUID) error
}

// ProductHandler handles product and variant endpoints
type ProductHandler struct {
	catalog CatalogService
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// CreateProduct creates a product together with its variants
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var (
		input  entities.CreateProductInput
		images []entities.Upload
	)
	if isMultipart(c) {
		form, err := multipartForm(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		if err := createProductFromForm(form, &input); err != nil {
			response.Error(c, err)
			return
		}

		uploads, closeAll, err := openUploads(form, []string{productImagesField})
		defer closeAll()
		if err != nil {
			response.Error(c, err)
			return
		}
		images = uploads
	} else if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), actor, &input, images)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"product": product})
}

// ListProducts lists the seller's products with their variants
// GET /api/v1/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultProductLimit)))

	products, total, err := h.catalog.ListProducts(c.Request.Context(), actor, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, "products", products, total, page, limit)
}

// GetProduct gets a product by ID
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := parseID(c, "product")
	if err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": product})
}

// UpdateProduct applies a partial update to product-level fields
// PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := parseID(c, "product")
	if err != nil {
		response.Error(c, err)
		return
	}

	var (
		input  entities.UpdateProductInput
		images []entities.Upload
	)
	if isMultipart(c) {
		form, err := multipartForm(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		if err := updateProductFromForm(form, &input); err != nil {
			response.Error(c, err)
			return
		}

		uploads, closeAll, err := openUploads(form, []string{productImagesField})
		defer closeAll()
		if err != nil {
			response.Error(c, err)
			return
		}
		images = uploads
	} else if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), actor, id, &input, images)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": product})
}

// DeleteProduct deletes a product and all of its variants
// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := parseID(c, "product")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Product deleted"})
}

// AddVariant adds a variant to a product
// POST /api/v1/products/:id/variants
func (h *ProductHandler) AddVariant(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	productID, err := parseID(c, "product")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.VariantInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	variant, err := h.catalog.AddVariant(c.Request.Context(), actor, productID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"variant": variant})
}

// UpdateVariant applies a partial update to a variant
// PUT /api/v1/variants/:id
func (h *ProductHandler) UpdateVariant(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := parseID(c, "variant")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.UpdateVariantInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	variant, err := h.catalog.UpdateVariant(c.Request.Context(), actor, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"variant": variant})
}

// DeleteVariant deletes a variant unless it is the product's last one
// DELETE /api/v1/variants/:id
func (h *ProductHandler) DeleteVariant(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := parseID(c, "variant")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.catalog.DeleteVariant(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Variant deleted"})
}
