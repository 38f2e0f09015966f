package handler

import (
	"time"

	ledgerapp "github.com/doug-fsg/controlei/internal/application/ledger"
	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/doug-fsg/controlei/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientHandler handles client endpoints
type ClientHandler struct {
	BaseHandler
	clientService *ledgerapp.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *ledgerapp.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// ClientRequest is the request body for creating or updating a client
type ClientRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Email    string `json:"email" binding:"omitempty,email,max=200"`
	Phone    string `json:"phone" binding:"max=50"`
	Document string `json:"document" binding:"max=50"`
	Address  string `json:"address" binding:"max=500"`
}

// ClientResponse is the client projection returned to callers
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Document  string    `json:"document,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func clientResponseFrom(client *ledger.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID,
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		Document:  client.Document,
		Address:   client.Address,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}

// Create creates a new client
func (h *ClientHandler) Create(c *gin.Context) {
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

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), ledgerapp.CreateClientInput{
		OrganizationID: organizationID,
		CreatedBy:      userID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Document:       req.Document,
		Address:        req.Address,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, clientResponseFrom(client))
}

// Get returns one client
func (h *ClientHandler) Get(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	clientID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	client, err := h.clientService.Get(c.Request.Context(), organizationID, clientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, clientResponseFrom(client))
}

// List returns a paginated client listing
func (h *ClientHandler) List(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.clientService.List(c.Request.Context(), organizationID, toDomainFilter(req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	items := make([]ClientResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, clientResponseFrom(&page.Items[i]))
	}

	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

// Update replaces a client's editable fields
func (h *ClientHandler) Update(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	clientID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), ledgerapp.UpdateClientInput{
		OrganizationID: organizationID,
		ClientID:       clientID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Document:       req.Document,
		Address:        req.Address,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, clientResponseFrom(client))
}

// Delete removes a client. Sales referencing it keep a null client.
func (h *ClientHandler) Delete(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	clientID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), organizationID, clientID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers client routes
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/clients")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}
