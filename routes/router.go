package routes // Router setup layer.

import (
	"log/slog"
	"time"

	"TodoAPI/global"
	"TodoAPI/handlers"
	"TodoAPI/middlewares"
	"TodoAPI/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps is everything the HTTP surface needs. DB may be nil (then /health reports unhealthy).
type Deps struct {
	Auth        services.AuthService
	Tasks       services.TaskService
	Assistant   services.AssistantService
	Tokens      middlewares.TokenVerifier
	DB          handlers.Pinger
	Log         *slog.Logger
	CORSOrigins []string
}

// Setup attaches middlewares and registers all endpoints.
func Setup(r *gin.Engine, d Deps) {
	// request id first so the logger and recovery can see it
	r.Use(middlewares.RequestID(), middlewares.RequestLogger(d.Log), middlewares.Recovery(d.Log))
	r.Use(cors.New(corsConfig(d.CORSOrigins)))

	sys := handlers.NewSystemHandler(d.DB)
	r.GET("/", sys.Root)
	r.GET("/health", sys.Health)
	r.GET("/docs", sys.Docs)
	r.GET("/openapi.yaml", sys.OpenAPI)

	auth := middlewares.Auth(d.Tokens)

	// Public auth endpoints; /me needs a token.
	ah := handlers.NewAuthHandler(d.Auth)
	authGroup := r.Group("/api/auth")
	authGroup.POST("/signup", ah.Signup)
	authGroup.POST("/login", ah.Login)
	authGroup.GET("/me", auth, ah.Me)

	// Tasks: every route is scoped to the caller.
	th := handlers.NewTaskHandler(d.Tasks)
	tasks := r.Group("/api/tasks", auth)
	tasks.POST("", th.Create)
	tasks.GET("", th.List)
	tasks.POST("/export", th.Export)
	tasks.GET("/:id", th.Get)
	tasks.PUT("/:id", th.Update)
	tasks.DELETE("/:id", th.Delete)
	tasks.PATCH("/:id/complete", th.ToggleComplete)

	// Assistant; health stays public for probes.
	xh := handlers.NewAssistantHandler(d.Assistant)
	ai := r.Group("/ai")
	ai.GET("/health", xh.Health)
	ai.POST("/chat/conversation", auth, xh.Chat)
	ai.GET("/conversations", auth, xh.ListConversations)
	ai.GET("/conversations/:id/messages", auth, xh.ListMessages)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", global.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", global.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// credentials cannot be combined with a wildcard origin
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
