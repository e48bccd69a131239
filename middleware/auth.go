package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rentroost/rentroost-api/utils"
)

// ============================================================================
// AUTHENTICATION MIDDLEWARE
// ============================================================================
// Two scopes: landlord routes require an "owner" token, the tenant portal a
// "tenant" token. An operation reaching a handler without an authenticated
// identity is the AuthError path; it stops here with a 401.
// ============================================================================

const (
	userIDKey   = "user_id"
	tenantIDKey = "tenant_id"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// Websocket clients cannot set headers; they pass the token in the query.
	return c.Query("token")
}

// AuthMiddleware guards landlord routes.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(token, utils.ScopeOwner)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// PortalAuthMiddleware guards the read-only tenant portal.
func PortalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(token, utils.ScopeTenant)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(tenantIDKey, claims.UserID)
		c.Next()
	}
}

// GetUserID returns the authenticated landlord id, or "" when unauthenticated.
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// GetTenantID returns the authenticated portal tenant id, or "".
func GetTenantID(c *gin.Context) string {
	return c.GetString(tenantIDKey)
}
