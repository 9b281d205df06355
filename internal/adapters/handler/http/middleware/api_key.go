package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const apiKeyHeader = "X-API-Key"

// APIKeyMiddleware gates the consumer-app surface. Keys are compared in
// constant time; a missing or unknown key never reaches the handlers.
func APIKeyMiddleware(validKeys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(apiKeyHeader)
		if presented == "" || !keyMatches(presented, validKeys) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid or missing API key",
				},
			})
			return
		}

		c.Next()
	}
}

func keyMatches(presented string, validKeys []string) bool {
	for _, key := range validKeys {
		if len(key) == len(presented) &&
			subtle.ConstantTimeCompare([]byte(presented), []byte(key)) == 1 {
			return true
		}
	}
	return false
}
