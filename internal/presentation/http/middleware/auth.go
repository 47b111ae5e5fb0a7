package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/instabill/instabill-api/internal/presentation/http/dto/response"
	"github.com/instabill/instabill-api/pkg/utils"
)

// AdminAuthMiddleware guards the admin area. There is a single admin
// identity, so the middleware only verifies the token and its role claim.
func AdminAuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAdminToken(parts[1])
		if err != nil || claims.Role != "admin" {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("admin", true)
		c.Next()
	}
}
