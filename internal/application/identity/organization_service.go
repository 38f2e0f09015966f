package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-fsg/controlei/internal/domain/identity"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// slugAttempts bounds the collision counter when picking a unique slug
const slugAttempts = 50

// OrganizationService manages organizations and memberships.
type OrganizationService struct {
	orgRepo        identity.OrganizationRepository
	membershipRepo identity.MembershipRepository
	logger         *zap.Logger
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(
	orgRepo identity.OrganizationRepository,
	membershipRepo identity.MembershipRepository,
	logger *zap.Logger,
) *OrganizationService {
	return &OrganizationService{
		orgRepo:        orgRepo,
		membershipRepo: membershipRepo,
		logger:         logger,
	}
}

// CreateOrganization creates an organization with the creator as owner.
// Slug collisions are resolved with a counter suffix.
func (s *OrganizationService) CreateOrganization(ctx context.Context, input CreateOrganizationInput) (*OrganizationInfo, error) {
	org, membership, err := s.createForUser(ctx, input.Name, input.CreatorID)
	if err != nil {
		return nil, err
	}
	info := organizationInfoFrom(org, membership.Role)
	return &info, nil
}

// ListForUser lists the organizations the user actively belongs to
func (s *OrganizationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]OrganizationInfo, error) {
	memberships, err := s.membershipRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]OrganizationInfo, 0, len(memberships))
	for _, membership := range memberships {
		org, err := s.orgRepo.FindByID(ctx, membership.OrganizationID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				s.logger.Warn("Membership references missing organization",
					zap.String("organization_id", membership.OrganizationID.String()))
				continue
			}
			return nil, err
		}
		infos = append(infos, organizationInfoFrom(org, membership.Role))
	}
	return infos, nil
}

// Get returns an organization the user belongs to
func (s *OrganizationService) Get(ctx context.Context, userID, organizationID uuid.UUID) (*OrganizationInfo, error) {
	membership, err := s.membershipRepo.Find(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrForbidden
		}
		return nil, err
	}
	org, err := s.orgRepo.FindByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	info := organizationInfoFrom(org, membership.Role)
	return &info, nil
}

// createForUser creates the organization plus the owner membership. The
// save is retried with suffixed slugs so organizations sharing a name can
// coexist.
func (s *OrganizationService) createForUser(ctx context.Context, name string, creatorID uuid.UUID) (*identity.Organization, *identity.Membership, error) {
	org, err := identity.NewOrganization(name)
	if err != nil {
		return nil, nil, err
	}

	baseSlug := org.Slug
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			org.Slug = org.WithSlugSuffix(attempt)
		}
		err = s.orgRepo.Save(ctx, org)
		if err == nil {
			break
		}
		if !errors.Is(err, shared.ErrAlreadyExists) {
			return nil, nil, err
		}
		org.Slug = baseSlug
		if attempt+1 >= slugAttempts {
			return nil, nil, shared.NewDomainError("ALREADY_EXISTS",
				fmt.Sprintf("Could not find a free slug for %q", name))
		}
	}

	membership, err := identity.NewMembership(creatorID, org.ID, identity.RoleOwner)
	if err != nil {
		return nil, nil, err
	}
	if err := s.membershipRepo.Save(ctx, membership); err != nil {
		return nil, nil, err
	}

	s.logger.Info("Organization created",
		zap.String("organization_id", org.ID.String()),
		zap.String("slug", org.Slug),
		zap.String("owner_id", creatorID.String()))

	return org, membership, nil
}
