// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
	"github.com/epiwatch/backend/internal/integration/entrypoint/dto"
)

const identityKey = "identity"

// AuthMiddleware resolves bearer tokens into an adapter.Identity.
type AuthMiddleware struct {
	tokens adapter.TokenIssuer
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokens adapter.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate rejects requests without a valid access token.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, bearer := strings.CutPrefix(header, "Bearer ")

		switch {
		case header == "" || (bearer && token == ""):
			abort(c, http.StatusUnauthorized, "Access token is required", domainerror.ErrCodeMissingToken)
			return
		case !bearer:
			abort(c, http.StatusUnauthorized, "Authorization header must use the Bearer scheme", domainerror.ErrCodeInvalidToken)
			return
		}

		identity, err := m.tokens.Authenticate(c.Request.Context(), token)
		if err != nil {
			abort(c, http.StatusUnauthorized, "Invalid or expired token", domainerror.ErrCodeInvalidToken)
			return
		}

		SetIdentity(c, *identity)
		c.Next()
	}
}

// RequireRole rejects users whose role is not listed. It must run after
// Authenticate.
func RequireRole(roles ...entity.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok || !slices.Contains(roles, identity.Role) {
			abort(c, http.StatusForbidden, "Your role does not allow this action", domainerror.ErrCodeForbidden)
			return
		}
		c.Next()
	}
}

// SetIdentity attaches the authenticated caller to the request.
func SetIdentity(c *gin.Context, identity adapter.Identity) {
	c.Set(identityKey, identity)
}

// IdentityFrom returns the caller attached by Authenticate.
func IdentityFrom(c *gin.Context) (adapter.Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return adapter.Identity{}, false
	}
	identity, ok := value.(adapter.Identity)
	return identity, ok
}

func abort(c *gin.Context, status int, message string, code domainerror.AuthErrorCode) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: message, Code: string(code)})
}
