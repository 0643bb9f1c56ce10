package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	problem "github.com/ml-registry/model-registry/pkg/registry/helpers/problem"
)

const (
	ScopeRead  = "models:read"
	ScopeWrite = "models:write"
)

// RequireAccess admits requests that carry requiredScope in the bearer
// token's "scope" claim. Tokens are verified by the gateway in front of the
// service; an x-api-key header set by that gateway grants read access only.
func RequireAccess(requiredScope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("x-api-key") != "" {
			if c.Request.Method != http.MethodGet {
				abort(c, problem.NewForbidden("x-api-key only grants read access"))
				return
			}

			c.Set("auth_method", "api_key")
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abort(c, problem.NewUnauthorized("Missing or invalid Authorization header"))
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if !hasScope(tokenStr, requiredScope) {
			abort(c, problem.NewForbidden("Access token missing required scope "+requiredScope))
			return
		}

		c.Set("auth_method", "jwt_token")
		c.Next()
	}
}

func abort(c *gin.Context, apiErr problem.APIError) {
	c.Header("Content-Type", problem.ContentType)
	c.AbortWithStatusJSON(apiErr.Status, apiErr)
}

func hasScope(tokenStr, requiredScope string) bool {
	token, _, err := new(jwt.Parser).ParseUnverified(tokenStr, jwt.MapClaims{})
	if err != nil {
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}

	scopeStr, ok := claims["scope"].(string)
	if !ok {
		return false
	}

	for _, scope := range strings.Fields(scopeStr) {
		if scope == requiredScope {
			return true
		}
	}

	return false
}
