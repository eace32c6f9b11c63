package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"seller-panel.backend/internal/domain/entities"
	domainerrors "seller-panel.backend/internal/domain/errors"
	"seller-panel.backend/internal/interfaces/http/middleware"
	"seller-panel.backend/internal/interfaces/http/response"
)

// IdentityService is the account side of the seller panel
type IdentityService interface {
	StartRegistration(ctx context.Context, input *entities.RegisterSellerInput) (*entities.Seller, error)
	VerifyEmail(ctx context.Context, input *entities.VerifyOtpInput) (*entities.AuthResponse, error)
	LoginWithPassword(ctx context.Context, input *entities.PasswordLoginInput) (*entities.AuthResponse, error)
	RequestLoginOtp(ctx context.Context, input *entities.OtpRequestInput) error
	VerifyLoginOtp(ctx context.Context, input *entities.VerifyOtpInput) (*entities.AuthResponse, error)
	GetProfile(ctx context.Context, actor entities.Actor) (*entities.Seller, error)
	CheckAuth(ctx context.Context, actor entities.Actor) (*entities.AuthCheck, error)
	DashboardMetrics(ctx context.Context, actor entities.Actor) (*entities.DashboardMetrics, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	identity IdentityService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(identity IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

func requireActor(c *gin.Context) (entities.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("seller not authenticated"))
	}
	return actor, ok
}

// Register starts a seller registration and mails a verification code
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterSellerInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	seller, err := h.identity.StartRegistration(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Registration started. Check your email for the verification code.",
		"seller":  seller,
	})
}

// VerifyEmail confirms the registration code
// POST /api/v1/auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var input entities.VerifyOtpInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	auth, err := h.identity.VerifyEmail(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, auth)
}

// LoginWithPassword handles password login
// POST /api/v1/auth/login/password
func (h *AuthHandler) LoginWithPassword(c *gin.Context) {
	var input entities.PasswordLoginInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	auth, err := h.identity.LoginWithPassword(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, auth)
}

// RequestLoginOtp mails a login code
// POST /api/v1/auth/login/otp-request
func (h *AuthHandler) RequestLoginOtp(c *gin.Context) {
	var input entities.OtpRequestInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.identity.RequestLoginOtp(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "OTP sent to your email"})
}

// VerifyLoginOtp exchanges a login code for a session token
// POST /api/v1/auth/login/otp-verify
func (h *AuthHandler) VerifyLoginOtp(c *gin.Context) {
	var input entities.VerifyOtpInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	auth, err := h.identity.VerifyLoginOtp(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, auth)
}

// CheckAuth reports the current session
// GET /api/v1/auth/check-auth
func (h *AuthHandler) CheckAuth(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	check, err := h.identity.CheckAuth(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, check)
}

// GetProfile returns the seller record
// GET /api/v1/auth/me, GET /api/v1/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	seller, err := h.identity.GetProfile(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"seller": seller})
}

// DashboardMetrics returns catalog counters
// GET /api/v1/auth/dashboard-metrics
func (h *AuthHandler) DashboardMetrics(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	metrics, err := h.identity.DashboardMetrics(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, metrics)
}
