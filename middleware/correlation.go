// api/middleware/correlation.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/anish-goyal/finboard/api/provenance"
)

// Correlation assigns every inbound request a correlation identifier (or
// adopts the caller's) and echoes it on the response, so our own responses
// satisfy the same provenance contract we demand of the backend.
func Correlation() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(provenance.CorrelationHeader)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		c.Set("correlationID", correlationID)
		c.Header(provenance.CorrelationHeader, correlationID)

		c.Next()
	}
}
