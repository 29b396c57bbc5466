package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TodoAPI/config"
	"TodoAPI/logger"
	"TodoAPI/repositories"
	"TodoAPI/routes"
	"TodoAPI/services"
	"TodoAPI/utils"
	"TodoAPI/utils/redislog"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(logSettings(cfg))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	log.Info("starting", "app", cfg.AppName, "env", cfg.Env, "addr", cfg.Addr())

	db, err := config.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	defer sqlDB.Close()
	log.Info("database migrations completed")

	rdb, err := config.InitRedis(ctx, cfg)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	} else {
		log.Warn("redis_addr not set, cache and audit log disabled")
	}
	audit := redislog.New(rdb, redislog.DefaultKey, redislog.DefaultMax, redislog.DefaultRetention)
	if audit != nil {
		log.Info("audit log enabled", "key", audit.Key())
	}
	audit.Info(ctx, "app.boot", "", map[string]string{"env": cfg.Env, "addr": cfg.Addr()})

	store, err := config.InitObjectStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect object storage: %w", err)
	}
	if store == nil {
		log.Warn("minio_endpoint not set, task export disabled")
	}

	tokens, err := utils.NewTokenManager(cfg.SecretKey, cfg.Algorithm, cfg.TokenTTL())
	if err != nil {
		return err
	}
	log.Info("token manager ready", "algorithm", cfg.Algorithm, "ttl", tokens.TTL().String())

	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	convRepo := repositories.NewConversationRepository(db)

	authSvc := services.NewAuthService(userRepo, tokens, rdb, audit, log)
	taskSvc := services.NewTaskService(taskRepo, store, rdb, audit, log)
	assistantSvc := services.NewAssistantService(taskRepo, convRepo, rdb, audit, log)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	_ = r.SetTrustedProxies(nil)
	routes.Setup(r, routes.Deps{
		Auth:        authSvc,
		Tasks:       taskSvc,
		Assistant:   assistantSvc,
		Tokens:      tokens,
		DB:          sqlDB,
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return runServer(srv, cfg.ShutdownTimeout, log, audit)
}

func logSettings(cfg *config.Config) logger.Settings {
	return logger.Settings{
		Level:      cfg.LogLevel,
		Type:       cfg.LogType,
		FilePath:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
	}
}

// runServer blocks until the listener fails or SIGINT/SIGTERM arrives, then drains in-flight requests.
func runServer(srv *http.Server, timeout time.Duration, log *slog.Logger, audit *redislog.Logger) error {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErrors:
		audit.Error(context.Background(), "http.server_error", "", map[string]string{"err": err.Error()})
		return err
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	audit.Info(ctx, "app.stop", "", nil)
	log.Info("server stopped")
	return nil
}
