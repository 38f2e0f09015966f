package ledger

import (
	"context"
	"time"

	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientService manages the organization's clients.
type ClientService struct {
	clientRepo ledger.ClientRepository
	logger     *zap.Logger
}

// NewClientService creates a new client service
func NewClientService(clientRepo ledger.ClientRepository, logger *zap.Logger) *ClientService {
	return &ClientService{clientRepo: clientRepo, logger: logger}
}

// Create creates a client
func (s *ClientService) Create(ctx context.Context, input CreateClientInput) (*ledger.Client, error) {
	client, err := ledger.NewClient(input.OrganizationID, input.CreatedBy, input.Name)
	if err != nil {
		return nil, err
	}
	client.Email = input.Email
	client.Phone = input.Phone
	client.Document = input.Document
	client.Address = input.Address

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	s.logger.Info("Client created",
		zap.String("client_id", client.ID.String()),
		zap.String("organization_id", input.OrganizationID.String()))
	return client, nil
}

// Get returns a client within the organization
func (s *ClientService) Get(ctx context.Context, organizationID, clientID uuid.UUID) (*ledger.Client, error) {
	return s.clientRepo.FindByIDForOrg(ctx, organizationID, clientID)
}

// List returns the organization's clients
func (s *ClientService) List(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) (*shared.Paginated[ledger.Client], error) {
	clients, err := s.clientRepo.FindAllForOrg(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.clientRepo.CountForOrg(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(clients, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update replaces a client's editable fields
func (s *ClientService) Update(ctx context.Context, input UpdateClientInput) (*ledger.Client, error) {
	client, err := s.clientRepo.FindByIDForOrg(ctx, input.OrganizationID, input.ClientID)
	if err != nil {
		return nil, err
	}
	if err := client.Update(input.Name, input.Email, input.Phone, input.Document, input.Address); err != nil {
		return nil, err
	}
	client.UpdatedAt = time.Now()
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete removes a client. Sales referencing it keep a dangling-free nil
// reference at the schema level.
func (s *ClientService) Delete(ctx context.Context, organizationID, clientID uuid.UUID) error {
	if err := s.clientRepo.DeleteForOrg(ctx, organizationID, clientID); err != nil {
		return err
	}
	s.logger.Info("Client deleted",
		zap.String("client_id", clientID.String()),
		zap.String("organization_id", organizationID.String()))
	return nil
}
