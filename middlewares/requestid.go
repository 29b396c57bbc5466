package middlewares

import (
	"TodoAPI/global"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID reuses an incoming X-Request-ID or mints one, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(global.HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(global.CtxRequestIDKey, id)
		c.Header(global.HeaderRequestID, id)
		c.Next()
	}
}
