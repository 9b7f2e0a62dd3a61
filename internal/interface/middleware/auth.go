package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devtrails/campdirect/internal/domain/entity"
	"github.com/devtrails/campdirect/pkg/apperr"
	"github.com/devtrails/campdirect/pkg/credentials"
	"github.com/devtrails/campdirect/pkg/helpers"
	"github.com/devtrails/campdirect/pkg/response"
)

// CtxPrincipalKey is the Gin context key the resolved principal is stored
// under after authentication.
const CtxPrincipalKey = "principal"

// PrincipalLookup resolves a validated token subject to a full principal.
type PrincipalLookup interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// Authenticate extracts the session token from the Authorization header
// (Bearer scheme) or the token cookie, validates it, and attaches the
// resolved principal to the request context. Absence or failure is 401.
func Authenticate(users PrincipalLookup, tokens *credentials.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.FromError(c, apperr.Unauthenticated("Not Authorized"))
			return
		}
		uid, err := tokens.Validate(token)
		if err != nil {
			response.FromError(c, apperr.Unauthenticated("Not Authorized"))
			return
		}
		principal, err := users.GetByID(c.Request.Context(), uid)
		if err != nil {
			response.FromError(c, apperr.Unauthenticated("Not Authorized"))
			return
		}
		c.Set(CtxPrincipalKey, principal)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := c.Cookie(helpers.CookieName); err == nil {
		return cookie
	}
	return ""
}

// RequireRoles allows the request through only when the authenticated
// principal's role is in the list. It must run after Authenticate; if no
// principal was resolved it denies with 403 rather than panicking.
func RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := Principal(c)
		if principal == nil {
			response.FromError(c, apperr.Forbidden("Not Authorized"))
			return
		}
		for _, r := range roles {
			if principal.Role == r {
				c.Next()
				return
			}
		}
		response.FromError(c, apperr.Forbidden("User role %s is not authorized for this route", principal.Role))
	}
}

// Principal returns the authenticated principal from the Gin context, or
// nil when the route did not pass through Authenticate.
func Principal(c *gin.Context) *entity.User {
	if v, ok := c.Get(CtxPrincipalKey); ok {
		if u, ok := v.(*entity.User); ok {
			return u
		}
	}
	return nil
}
