package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextClaims is the gin context key the middleware stores the
// verified claims under.
const ContextClaims = "shulebooks-auth-claims"

type httpError struct {
	Error string `json:"error"`
}

// Middleware aborts requests that do not carry a valid bearer token.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: ErrNoToken.Error()})
			return
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: ErrNoToken.Error()})
			return
		}

		claims, err := ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: err.Error()})
			return
		}

		c.Set(ContextClaims, claims)
		c.Next()
	}
}
