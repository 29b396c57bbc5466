package handlers

import (
	"context"
	"net/http"
	"time"

	"TodoAPI/docs"
	"TodoAPI/global"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SystemHandler serves the unauthenticated service endpoints.
type SystemHandler struct {
	db Pinger
}

func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db}
}

// Root handles GET /.
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": global.AppName + " is running", "version": global.AppVersion})
}

// Health handles GET /health: 200 when the database answers, 503 otherwise.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if h.db == nil || h.db.PingContext(ctx) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Docs handles GET /docs.
func (h *SystemHandler) Docs(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", docs.SwaggerUI)
}

// OpenAPI handles GET /openapi.yaml.
func (h *SystemHandler) OpenAPI(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml", docs.OpenAPI)
}
