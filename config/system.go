// loads config.yaml + .env + env overrides. DATABASE_URL picks the SQL driver at runtime.

package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// devSecret is only ever used when env=dev and no SECRET_KEY was provided.
const devSecret = "same-secret-key-for-both-frontend-and-backend-dev-only"

// Config mirrors the shape of config.yaml; viper unmarshals defaults, file and env into it.
type Config struct {
	AppName string `mapstructure:"app_name"`
	Env     string `mapstructure:"env" validate:"required,oneof=dev staging prod test"`

	HTTPHost        string        `mapstructure:"http_host"`
	HTTPPort        string        `mapstructure:"http_port" validate:"required,numeric"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`

	// JWT settings. SecretKey/Algorithm/AccessTokenExpireMinutes map onto the
	// SECRET_KEY, ALGORITHM and ACCESS_TOKEN_EXPIRE_MINUTES container variables.
	SecretKey                string `mapstructure:"secret_key" validate:"required"`
	Algorithm                string `mapstructure:"algorithm" validate:"required,oneof=HS256 HS384 HS512"`
	AccessTokenExpireMinutes int    `mapstructure:"access_token_expire_minutes" validate:"min=1"`

	DatabaseURL string `mapstructure:"database_url" validate:"required"`
	DBMaxOpen   int    `mapstructure:"db_max_open_conns" validate:"min=0"`
	DBMaxIdle   int    `mapstructure:"db_max_idle_conns" validate:"min=0"`

	RedisAddr string `mapstructure:"redis_addr"` // empty disables cache + redis audit log
	RedisDB   int    `mapstructure:"redis_db"`
	RedisPass string `mapstructure:"redis_password"`

	LogLevel      string `mapstructure:"log_level" validate:"oneof=debug info warning error"`
	LogType       string `mapstructure:"log_type" validate:"oneof=console file"`
	LogFile       string `mapstructure:"log_file"`
	LogMaxSize    int    `mapstructure:"log_max_size"`
	LogMaxBackups int    `mapstructure:"log_max_backups"`
	LogMaxAge     int    `mapstructure:"log_max_age"`

	MinioEndpoint  string `mapstructure:"minio_endpoint"` // empty disables task export
	MinioAccessKey string `mapstructure:"minio_access_key"`
	MinioSecretKey string `mapstructure:"minio_secret_key"`
	MinioBucket    string `mapstructure:"minio_bucket"`
	MinioUseSSL    bool   `mapstructure:"minio_use_ssl"`
}

// TokenTTL is the access token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// Addr is the listen address for http.Server.
func (c *Config) Addr() string {
	return c.HTTPHost + ":" + c.HTTPPort
}

// Validate checks struct tags plus the rules that depend on more than one field.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validation failed for Config: %w", err)
	}
	if c.LogType == "file" && c.LogFile == "" {
		return errors.New("log_file is required for file logger")
	}
	if c.MinioEndpoint != "" && c.MinioBucket == "" {
		return errors.New("minio_bucket is required when minio_endpoint is set")
	}
	if _, _, err := ParseDatabaseURL(c.DatabaseURL); err != nil {
		return err
	}
	return nil
}

// Load reads .env (optional), config.yaml (optional) and the environment.
func Load() (*Config, error) {
	// .env is a convenience for local runs; real deployments pass env vars.
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env file loaded: %v", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("APP") // APP_HTTP_PORT, APP_LOG_LEVEL, ...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// unprefixed names used by the container image
	_ = v.BindEnv("database_url", "APP_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("secret_key", "APP_SECRET_KEY", "SECRET_KEY")
	_ = v.BindEnv("algorithm", "APP_ALGORITHM", "ALGORITHM")
	_ = v.BindEnv("access_token_expire_minutes", "APP_ACCESS_TOKEN_EXPIRE_MINUTES", "ACCESS_TOKEN_EXPIRE_MINUTES")
	_ = v.BindEnv("http_port", "APP_HTTP_PORT", "PORT")

	v.SetDefault("app_name", "Todo API")
	v.SetDefault("env", "dev")
	v.SetDefault("http_host", "0.0.0.0")
	v.SetDefault("http_port", "8000")
	v.SetDefault("shutdown_timeout", "15s")
	v.SetDefault("cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("secret_key", "")
	v.SetDefault("algorithm", "HS256")
	v.SetDefault("access_token_expire_minutes", 10080) // 7 days
	v.SetDefault("database_url", "sqlite://todo.db")
	v.SetDefault("db_max_open_conns", 10)
	v.SetDefault("db_max_idle_conns", 2)
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_password", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_type", "console")
	v.SetDefault("log_file", "logs/app.log")
	v.SetDefault("log_max_size", 10)
	v.SetDefault("log_max_backups", 3)
	v.SetDefault("log_max_age", 28)
	v.SetDefault("minio_endpoint", "")
	v.SetDefault("minio_access_key", "")
	v.SetDefault("minio_secret_key", "")
	v.SetDefault("minio_bucket", "todo-exports")
	v.SetDefault("minio_use_ssl", false)

	if err := v.ReadInConfig(); err != nil {
		log.Printf("[config] no config file found, using defaults/env: %v", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if c.SecretKey == "" && c.Env == "dev" {
		log.Printf("[config] SECRET_KEY not set, using development secret")
		c.SecretKey = devSecret
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
