package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextClaims is the key used to store token claims in the Gin context.
	ContextClaims = "tokenClaims"
	// ContextSubject is the key used to store the token subject in the Gin context.
	ContextSubject = "tokenSubject"
)

// Authorize rejects requests without a valid bearer token issued by ts.
func Authorize(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		subject, _ := claims["sub"].(string)
		c.Set(ContextClaims, claims)
		c.Set(ContextSubject, subject)
		c.Next()
	}
}
