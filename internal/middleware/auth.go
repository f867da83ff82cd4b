package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

// OwnerIDKey is the gin context key holding the resolved owner id.
const OwnerIDKey = "owner_id"

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// AuthMiddleware validates the bearer token and resolves the owner id every
// downstream handler scopes its queries to.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			AbortWithError(c, http.StatusUnauthorized, CodeUnauthorized, "missing authorization header")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			AbortWithError(c, http.StatusUnauthorized, CodeUnauthorized, "invalid authorization header format")
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			LoggerFrom(c).Debug().Err(err).Msg("token rejected")
			AbortWithError(c, http.StatusUnauthorized, CodeUnauthorized, "invalid token")
			return
		}

		ownerID, err := service.ResolveOwnerID(claims.Identity())
		if err != nil {
			AbortWithError(c, http.StatusUnauthorized, CodeUnauthorized, err.Error())
			return
		}

		c.Set(OwnerIDKey, ownerID)
		setLogger(c, LoggerFrom(c).With().Str("owner_id", ownerID).Logger())
		c.Next()
	}
}

// OwnerID returns the owner id set by AuthMiddleware.
func OwnerID(c *gin.Context) (string, bool) {
	id := c.GetString(OwnerIDKey)
	return id, id != ""
}
