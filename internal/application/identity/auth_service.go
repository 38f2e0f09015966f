package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/doug-fsg/controlei/internal/domain/identity"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/doug-fsg/controlei/internal/infrastructure/auth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength  = 8
	resetTokenBytes    = 32
	resetTokenValidity = time.Hour
)

// AuthService handles registration, login, logout and password resets.
type AuthService struct {
	userRepo       identity.UserRepository
	orgRepo        identity.OrganizationRepository
	membershipRepo identity.MembershipRepository
	tokenRepo      identity.VerificationTokenRepository
	orgService     *OrganizationService
	jwtService     *auth.JWTService
	blacklist      auth.TokenBlacklist
	logger         *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	orgRepo identity.OrganizationRepository,
	membershipRepo identity.MembershipRepository,
	tokenRepo identity.VerificationTokenRepository,
	orgService *OrganizationService,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		orgRepo:        orgRepo,
		membershipRepo: membershipRepo,
		tokenRepo:      tokenRepo,
		orgService:     orgService,
		jwtService:     jwtService,
		blacklist:      blacklist,
		logger:         logger,
	}
}

// Register creates a user together with their first organization and owner
// membership. The organization name defaults to one derived from the user.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*LoginResult, error) {
	if len(input.Password) < minPasswordLength {
		return nil, shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	}

	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}

	user, err := identity.NewUser(input.Name, input.Email, string(hash))
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
		}
		return nil, err
	}

	orgName := strings.TrimSpace(input.OrganizationName)
	if orgName == "" {
		orgName = user.DisplayName()
	}
	org, membership, err := s.orgService.createForUser(ctx, orgName, user.ID)
	if err != nil {
		s.logger.Error("Failed to create organization during registration",
			zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("organization_id", org.ID.String()))

	return s.issueSession(user, org, membership.Role)
}

// Login authenticates a user and issues a token scoped to one of their
// organizations. The oldest active membership wins when none is specified.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, invalidCredentials()
	}

	memberships, err := s.membershipRepo.FindActiveByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		s.logger.Warn("Login without active membership", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("FORBIDDEN", "Account has no active organization")
	}
	membership := memberships[0]

	org, err := s.orgRepo.FindByID(ctx, membership.OrganizationID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("organization_id", org.ID.String()))

	return s.issueSession(user, org, membership.Role)
}

// SwitchOrganization issues a token for another organization the user
// actively belongs to.
func (s *AuthService) SwitchOrganization(ctx context.Context, input SwitchOrganizationInput) (*LoginResult, error) {
	membership, err := s.membershipRepo.Find(ctx, input.UserID, input.OrganizationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrForbidden
		}
		return nil, err
	}
	if !membership.IsActive {
		return nil, shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	org, err := s.orgRepo.FindByID(ctx, input.OrganizationID)
	if err != nil {
		return nil, err
	}

	return s.issueSession(user, org, membership.Role)
}

// Logout blacklists the token until its natural expiry
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	ttl := time.Until(input.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, input.TokenID, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to terminate session")
	}
	return nil
}

// RequestPasswordReset creates a single-use reset token for the account.
// An unknown email returns a result with an empty token so callers cannot
// probe for registered addresses.
func (s *AuthService) RequestPasswordReset(ctx context.Context, input RequestPasswordResetInput) (*RequestPasswordResetResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &RequestPasswordResetResult{Email: input.Email}, nil
		}
		return nil, err
	}

	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate reset token")
	}
	tokenValue := hex.EncodeToString(raw)
	expires := time.Now().Add(resetTokenValidity)

	token := identity.NewVerificationToken(tokenValue, user.Email, expires)
	if err := s.tokenRepo.Save(ctx, token); err != nil {
		return nil, err
	}

	s.logger.Info("Password reset requested", zap.String("user_id", user.ID.String()))

	return &RequestPasswordResetResult{
		Token:   tokenValue,
		Email:   user.Email,
		Expires: expires,
	}, nil
}

// ResetPassword consumes a reset token and replaces the user's password
func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if len(input.NewPassword) < minPasswordLength {
		return shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	}

	token, err := s.tokenRepo.Consume(ctx, input.Token)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_INPUT", "Invalid or already used reset token")
		}
		return err
	}
	if token.IsExpired(time.Now()) {
		return shared.ErrTokenExpired
	}

	user, err := s.userRepo.FindByEmail(ctx, token.Identifier)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Password reset completed", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *AuthService) issueSession(user *identity.User, org *identity.Organization, role identity.Role) (*LoginResult, error) {
	token, err := s.jwtService.GenerateToken(user.ID, org.ID, user.Email)
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}
	return &LoginResult{
		Token:        *token,
		User:         userInfoFrom(user),
		Organization: organizationInfoFrom(org, role),
	}, nil
}

func invalidCredentials() error {
	return shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
}
