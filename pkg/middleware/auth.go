package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Harshkesharwani789/wave-backend/pkg/response"
	"github.com/Harshkesharwani789/wave-backend/pkg/token"
)

const (
	ActorIDKey    = "user_id"
	ActorRoleKey  = "actor_role"
	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// AuthMiddleware validates JWT bearer tokens issued by this service.
type AuthMiddleware struct {
	tokens *token.Manager
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(tokens *token.Manager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Require returns a Gin middleware that validates the bearer token and,
// when roles are given, requires the token's role to be one of them.
func (m *AuthMiddleware) Require(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authHeaderKey)
		if authHeader == "" {
			response.Unauthorized(c, "No token, authorization denied")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			response.Unauthorized(c, "Invalid authorization format")
			c.Abort()
			return
		}

		claims, err := m.tokens.Validate(strings.TrimPrefix(authHeader, bearerPrefix))
		if err != nil {
			response.Unauthorized(c, "Token is not valid")
			c.Abort()
			return
		}

		if len(roles) > 0 && !roleAllowed(claims.Role, roles) {
			response.Forbidden(c, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Set(ActorIDKey, claims.Subject)
		c.Set(ActorRoleKey, claims.Role)

		c.Next()
	}
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// GetActorID extracts the authenticated subject from the Gin context.
func GetActorID(c *gin.Context) string {
	if id, exists := c.Get(ActorIDKey); exists {
		return id.(string)
	}
	return ""
}

// GetActorRole extracts the authenticated role from the Gin context.
func GetActorRole(c *gin.Context) string {
	if role, exists := c.Get(ActorRoleKey); exists {
		return role.(string)
	}
	return ""
}
