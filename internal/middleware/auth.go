package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pena.web.id/penablog/internal/entity"
	adminRepo "pena.web.id/penablog/internal/modules/admin/repository"
	"pena.web.id/penablog/pkg/token"
)

const sessionCookie = "token"

type AuthMiddleware struct {
	adminRepo adminRepo.AdminRepository
}

func NewAuthMiddleware(adminRepo adminRepo.AdminRepository) *AuthMiddleware {
	return &AuthMiddleware{adminRepo: adminRepo}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	// logout hints the client to clear its stale session cookie
	c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": message, "logout": true})
	c.Abort()
}

// RequireUser rejects requests without a valid user session.
func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortUnauthorized(c, "authorization required")
			return
		}

		claims, err := token.Parse(tokenString)
		if err != nil || claims.Role != token.RoleUser {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// OptionalUser resolves the viewer identity when a session is present but
// lets anonymous requests through; public read paths use this.
func (m *AuthMiddleware) OptionalUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString != "" {
			if claims, err := token.Parse(tokenString); err == nil && claims.Role == token.RoleUser {
				c.Set("user_id", claims.Subject)
				c.Set("role", claims.Role)
			}
		}
		c.Next()
	}
}

// RequireAdmin rejects requests without a valid, non-deleted admin session.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortUnauthorized(c, "authorization required")
			return
		}

		claims, err := token.Parse(tokenString)
		if err != nil || claims.Role != token.RoleAdmin {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		adminID, err := uuid.Parse(claims.Subject)
		if err != nil {
			abortUnauthorized(c, "invalid token claims")
			return
		}

		admin, err := m.adminRepo.FindByID(c.Request.Context(), adminID)
		if err != nil || admin.IsDeleted {
			abortUnauthorized(c, "admin account not found")
			return
		}

		c.Set("admin_id", admin.ID.String())
		c.Set("admin", admin)
		c.Set("role", token.RoleAdmin)
		c.Next()
	}
}

// RequireSuperAdmin must run after RequireAdmin.
func (m *AuthMiddleware) RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("admin")
		if !exists {
			abortUnauthorized(c, "admin authentication required")
			return
		}

		admin, ok := value.(*entity.Admin)
		if !ok || !admin.IsSuperAdmin {
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "super admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
