// catches panics and returns 500 without crashing the server.

package middlewares

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"TodoAPI/global"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic in any handler into a 500 {"detail":"Internal server error"} and logs the stack.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					"panic", r,
					"path", c.Request.URL.Path,
					"request_id", c.GetString(global.CtxRequestIDKey),
					"stack", string(debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
			}
		}()
		c.Next()
	}
}
