package models

import (
	"time"

	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to a domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from a domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// TenantModel provides common persistence fields for tenant-scoped models.
// It extends BaseModel with the owning organization and creator. The
// organization column is nullable at the schema level: rows created before
// the tenant backfill have no owner until the migrator adopts them.
type TenantModel struct {
	BaseModel
	OrganizationID uuid.UUID  `gorm:"type:uuid;index"`
	CreatedBy      *uuid.UUID `gorm:"type:uuid"`
}

// ToDomainTenantEntity converts TenantModel to a domain TenantEntity
func (m *TenantModel) ToDomainTenantEntity() shared.TenantEntity {
	return shared.TenantEntity{
		BaseEntity:     m.BaseModel.ToDomain(),
		OrganizationID: m.OrganizationID,
		CreatedBy:      m.CreatedBy,
	}
}

// FromDomainTenantEntity populates TenantModel from a domain TenantEntity
func (m *TenantModel) FromDomainTenantEntity(t shared.TenantEntity) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.OrganizationID = t.OrganizationID
	m.CreatedBy = t.CreatedBy
}
