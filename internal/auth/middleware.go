package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClaimsKey is the gin context key holding the verified session claims
const ClaimsKey = "auth.claims"

// Middleware provides the authentication/authorization gin handlers
type Middleware struct {
	tokens *TokenService
}

// NewMiddleware creates the auth middleware
func NewMiddleware(tokens *TokenService) *Middleware {
	return &Middleware{tokens: tokens}
}

// sessionToken extracts the token from the session cookie or a Bearer
// Authorization header.
func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	const prefix = "Bearer "
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

// Authenticate verifies the session and stores the claims in the
// request context. Requests without a valid session are rejected.
func (m *Middleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		claims, err := m.tokens.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireAdmin gates admin surfaces: the session role must be ADMIN or
// SUPER_ADMIN. Applied uniformly to the /admin route group rather than
// checked ad hoc in handlers.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !claims.Role.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the verified claims set by Authenticate, or nil
func ClaimsFrom(c *gin.Context) *Claims {
	value, exists := c.Get(ClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
