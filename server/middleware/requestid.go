package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDHeader carries the request correlation ID on both directions.
const requestIDHeader = "X-Request-Id"

// RequestID tags every request with a correlation ID: an inbound
// X-Request-Id is honored, otherwise a fresh UUID is minted. The ID is
// stored in the Gin context for log enrichment and echoed on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
