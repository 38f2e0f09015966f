package handler

import (
	identityapp "github.com/doug-fsg/controlei/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// OrganizationHandler handles organization endpoints
type OrganizationHandler struct {
	BaseHandler
	orgService *identityapp.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler
func NewOrganizationHandler(orgService *identityapp.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

// CreateOrganizationRequest is the request body for creating an organization
type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// List returns the organizations the current user belongs to
func (h *OrganizationHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	organizations, err := h.orgService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, organizations)
}

// Get returns one organization the current user belongs to
func (h *OrganizationHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	organizationID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	organization, err := h.orgService.Get(c.Request.Context(), userID, organizationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, organization)
}

// Create creates a new organization owned by the current user
func (h *OrganizationHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	organization, err := h.orgService.CreateOrganization(c.Request.Context(), identityapp.CreateOrganizationInput{
		Name:      req.Name,
		CreatorID: userID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, organization)
}

// RegisterRoutes registers organization routes
func (h *OrganizationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/organizations")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
	}
}
