package middleware

import (
	"net/http"

	"backoffice-service/internal/models"
	"github.com/gin-gonic/gin"
)

// TenantMiddleware extracts X-Tenant-ID header and sets it in context
// so handlers can use c.GetString("tenant_id")
func TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetString("tenant_id")
		if tenantID == "" {
			tenantID = c.GetHeader("X-Tenant-ID")
		}

		if tenantID != "" {
			c.Set("tenant_id", tenantID)
		}
		c.Next()
	}
}

// RequireTenant rejects requests that carry no tenant ID
func RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("tenant_id") == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "TENANT_REQUIRED",
					Message: "X-Tenant-ID header is required",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
