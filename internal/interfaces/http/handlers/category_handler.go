package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"seller-panel.backend/internal/domain/entities"
	"seller-panel.backend/internal/interfaces/http/response"
)

// CategoryService manages seller-owned categories
type CategoryService interface {
	CreateCategory(ctx context.Context, actor entities.Actor, input *entities.CreateCategoryInput) (*entities.Category, error)
	ListCategories(ctx context.Context, actor entities.Actor) ([]*entities.Category, error)
	GetCategory(ctx context.Context, actor entities.Actor, id uuid.UUID) (*entities.Category, error)
	UpdateCategory(ctx context.Context, actor entities.Actor, id uuid.UUID, input *entities.UpdateCategoryInput) (*entities.Category, error)
	DeleteCategory(ctx context.Context, actor entities.Actor, id uuid.UUID) error
}

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categories CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categories CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// CreateCategory creates a category
// POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var input entities.CreateCategoryInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	category, err := h.categories.CreateCategory(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"category": category})
}

// ListCategories lists the seller's categories
// GET /api/v1/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	categories, err := h.categories.ListCategories(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": categories})
}

// GetCategory gets a category by ID
// GET /api/v1/categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := parseID(c, "category")
	if err != nil {
		response.Error(c, err)
		return
	}

	category, err := h.categories.GetCategory(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"category": category})
}

// UpdateCategory applies a partial update
// PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := parseID(c, "category")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.UpdateCategoryInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	category, err := h.categories.UpdateCategory(c.Request.Context(), actor, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"category": category})
}

// DeleteCategory deletes a category
// DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := parseID(c, "category")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.categories.DeleteCategory(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Category deleted"})
}
