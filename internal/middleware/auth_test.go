package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backoffice-service/internal/config"
	"backoffice-service/internal/models"
	"backoffice-service/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "test-secret",
		JWTIssuer:   "backoffice-service",
		JWTAudience: "backoffice-clients",
	}
}

func signToken(t *testing.T, cfg *config.Config, role models.UserRole, expiresIn time.Duration) string {
	t.Helper()

	claims := services.Claims{
		TenantID: "tenant-1",
		Email:    "admin@example.com",
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    cfg.JWTIssuer,
			Audience:  jwt.ClaimStrings{cfg.JWTAudience},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)
	return token
}

func authRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(cfg))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"tenant_id": c.GetString("tenant_id"),
			"user_role": c.GetString("user_role"),
		})
	})
	return router
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	cfg := testConfig()
	router := authRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg, models.UserRoleAdmin, time.Hour))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tenant-1")
	assert.Contains(t, w.Body.String(), "ADMIN")
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := authRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := authRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "token abc.def.ghi")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	cfg := testConfig()
	router := authRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg, models.UserRoleAdmin, -time.Hour))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	cfg := testConfig()
	other := testConfig()
	other.JWTSecret = "different-secret"

	router := authRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, other, models.UserRoleAdmin, time.Hour))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareTokenTenantOverridesHeader(t *testing.T) {
	cfg := testConfig()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(TenantMiddleware())
	router.Use(AuthMiddleware(cfg))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tenant_id": c.GetString("tenant_id")})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-Tenant-ID", "spoofed-tenant")
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg, models.UserRoleAdmin, time.Hour))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tenant-1")
	assert.NotContains(t, w.Body.String(), "spoofed-tenant")
}

func TestRequireAdminRejectsCustomerRole(t *testing.T) {
	cfg := testConfig()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(cfg))
	router.Use(RequireAdmin())
	router.GET("/admin", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg, models.UserRoleCustomer, time.Hour))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
