package handlers

import (
	"errors"
	"net/http"

	"backoffice-service/internal/models"
	"backoffice-service/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authService *services.AuthService
	logger      *logrus.Logger
}

func NewAuthHandler(authService *services.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// Login authenticates a user and returns a JWT
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	token, user, err := h.authService.Login(tenantID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		case errors.Is(err, services.ErrAccountDisabled):
			respondError(c, http.StatusForbidden, "ACCOUNT_DISABLED", "This account is disabled")
		default:
			h.logger.WithError(err).Error("Login failed")
			respondInternalError(c)
		}
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data: gin.H{
			"token":      token.Token,
			"expiration": token.Expiration,
			"user":       user,
		},
	})
}

// Register creates a customer account with storefront access
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	var req models.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	token, user, err := h.authService.RegisterCustomer(tenantID, &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			respondError(c, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
			return
		}
		h.logger.WithError(err).Error("Registration failed")
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data: gin.H{
			"token":      token.Token,
			"expiration": token.Expiration,
			"user":       user,
		},
	})
}
