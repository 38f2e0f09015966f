package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TenantEntity extends BaseEntity with multi-tenant scoping.
// Every financial record in the system carries an organization ID;
// cross-tenant visibility is a correctness violation.
type TenantEntity struct {
	BaseEntity
	OrganizationID uuid.UUID
	CreatedBy      *uuid.UUID
}

// NewTenantEntity creates a new tenant-scoped entity
func NewTenantEntity(organizationID uuid.UUID) TenantEntity {
	return TenantEntity{
		BaseEntity:     NewBaseEntity(),
		OrganizationID: organizationID,
	}
}

// NewTenantEntityWithCreator creates a new tenant-scoped entity with creator info
func NewTenantEntityWithCreator(organizationID, createdBy uuid.UUID) TenantEntity {
	return TenantEntity{
		BaseEntity:     NewBaseEntity(),
		OrganizationID: organizationID,
		CreatedBy:      &createdBy,
	}
}

// GetOrganizationID returns the owning organization ID
func (t *TenantEntity) GetOrganizationID() uuid.UUID {
	return t.OrganizationID
}

// BelongsTo reports whether the entity is owned by the given organization
func (t *TenantEntity) BelongsTo(organizationID uuid.UUID) bool {
	return t.OrganizationID == organizationID
}
