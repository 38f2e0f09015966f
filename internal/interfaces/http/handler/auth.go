package handler

import (
	identityapp "github.com/doug-fsg/controlei/internal/application/identity"
	"github.com/doug-fsg/controlei/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest is the request body for account registration
type RegisterRequest struct {
	Name             string `json:"name" binding:"required,min=1,max=200"`
	Email            string `json:"email" binding:"required,email,max=200"`
	Password         string `json:"password" binding:"required,min=8,max=128"`
	OrganizationName string `json:"organization_name" binding:"max=200"`
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SwitchOrganizationRequest selects another organization for the session
type SwitchOrganizationRequest struct {
	OrganizationID string `json:"organization_id" binding:"required,uuid"`
}

// PasswordResetRequest starts the password reset flow
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetConfirmRequest completes the password reset flow
type PasswordResetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// SessionResponse is the response body for register, login and
// switch-organization
type SessionResponse struct {
	Token        auth.Token                   `json:"token"`
	User         identityapp.UserInfo         `json:"user"`
	Organization identityapp.OrganizationInfo `json:"organization"`
}

func sessionResponseFrom(result *identityapp.LoginResult) SessionResponse {
	return SessionResponse{
		Token:        result.Token,
		User:         result.User,
		Organization: result.Organization,
	}
}

// Register creates an account together with its first organization
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), identityapp.RegisterInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		OrganizationName: req.OrganizationName,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, sessionResponseFrom(result))
}

// Login authenticates a user and issues a session token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identityapp.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sessionResponseFrom(result))
}

// Logout revokes the current session token
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := GetClaims(c)
	if claims == nil || claims.ExpiresAt == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	err := h.authService.Logout(c.Request.Context(), identityapp.LogoutInput{
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// SwitchOrganization issues a new token scoped to another organization
// the user belongs to
func (h *AuthHandler) SwitchOrganization(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SwitchOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	organizationID, err := parseUUID(req.OrganizationID)
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	result, err := h.authService.SwitchOrganization(c.Request.Context(), identityapp.SwitchOrganizationInput{
		UserID:         userID,
		OrganizationID: organizationID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sessionResponseFrom(result))
}

// RequestPasswordReset starts the password reset flow. The response is
// identical whether or not the email exists, so the endpoint cannot be
// used to probe for accounts. The token itself goes out through the
// delivery channel, never in this response.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	_, err := h.authService.RequestPasswordReset(c.Request.Context(), identityapp.RequestPasswordResetInput{
		Email: req.Email,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "If the email exists, a reset link has been sent"})
}

// ResetPassword completes the password reset flow
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req PasswordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), identityapp.ResetPasswordInput{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Password has been reset"})
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/auth")
	{
		group.POST("/register", h.Register)
		group.POST("/login", h.Login)
		group.POST("/logout", h.Logout)
		group.POST("/switch-organization", h.SwitchOrganization)
		group.POST("/password-reset/request", h.RequestPasswordReset)
		group.POST("/password-reset/confirm", h.ResetPassword)
	}
}
