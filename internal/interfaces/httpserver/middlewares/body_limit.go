package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps request payloads at 1MB.
const MaxBodyBytes = 1 << 20

// BodyLimit rejects request bodies larger than MaxBodyBytes. Oversized
// payloads surface as a bind error when the handler reads the body.
func BodyLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
		c.Next()
	}
}
