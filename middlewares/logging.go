// structured request logging

package middlewares

import (
	"log/slog"
	"time"

	"TodoAPI/global"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request: method, path, status, latency and who asked.
// 5xx responses log at error level, 4xx at warn.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path // keep it: handlers may rewrite the URL
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"request_id", c.GetString(global.CtxRequestIDKey),
		}
		if uid := c.GetString(global.CtxUserIDKey); uid != "" {
			attrs = append(attrs, "user_id", uid)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("request", attrs...)
		case status >= 400:
			log.Warn("request", attrs...)
		default:
			log.Info("request", attrs...)
		}
	}
}
