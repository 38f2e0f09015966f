package handler

import (
	"time"

	ledgerapp "github.com/doug-fsg/controlei/internal/application/ledger"
	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryHandler handles expense category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *ledgerapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *ledgerapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest is the request body for creating or updating a category
type CategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

// CategoryResponse is the category projection returned to callers
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func categoryResponseFrom(category *ledger.ExpenseCategory) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// Create creates a new expense category
func (h *CategoryHandler) Create(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), ledgerapp.CreateCategoryInput{
		OrganizationID: organizationID,
		CreatedBy:      userID,
		Name:           req.Name,
		Color:          req.Color,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, categoryResponseFrom(category))
}

// List returns all categories of the organization ordered by name
func (h *CategoryHandler) List(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	categories, err := h.categoryService.List(c.Request.Context(), organizationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	items := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, categoryResponseFrom(&categories[i]))
	}

	h.Success(c, items)
}

// Update renames or recolors a category
func (h *CategoryHandler) Update(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	categoryID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), ledgerapp.UpdateCategoryInput{
		OrganizationID: organizationID,
		CategoryID:     categoryID,
		Name:           req.Name,
		Color:          req.Color,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, categoryResponseFrom(category))
}

// Delete removes a category. Expenses referencing it keep a null category.
func (h *CategoryHandler) Delete(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	categoryID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), organizationID, categoryID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers category routes
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/expense-categories")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}
