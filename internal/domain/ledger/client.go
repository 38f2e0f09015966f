package ledger

import (
	"strings"

	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/google/uuid"
)

// Client is a customer of the organization. Only the name is required;
// sales keep a nullable reference so deleting a client never orphans them.
type Client struct {
	shared.TenantEntity
	Name     string
	Email    string
	Phone    string
	Document string
	Address  string
}

// NewClient creates a client for an organization
func NewClient(organizationID, createdBy uuid.UUID, name string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "client name is required")
	}
	return &Client{
		TenantEntity: shared.NewTenantEntityWithCreator(organizationID, createdBy),
		Name:         name,
	}, nil
}

// Update replaces the client's editable fields
func (c *Client) Update(name, email, phone, document, address string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "client name is required")
	}
	c.Name = name
	c.Email = email
	c.Phone = phone
	c.Document = document
	c.Address = address
	return nil
}
