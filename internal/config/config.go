package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Providers ProvidersConfig `yaml:"providers"`
	Frontend  FrontendConfig  `yaml:"frontend"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds JWT verification settings. Token issuance is handled by
// the auth service; this backend only validates bearer tokens.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"vibecraft"`
}

// ProvidersConfig holds credentials for all external providers.
type ProvidersConfig struct {
	Qloo     QlooConfig     `yaml:"qloo"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Unsplash UnsplashConfig `yaml:"unsplash"`
	Spotify  SpotifyConfig  `yaml:"spotify"`
}

// QlooConfig holds taste-graph provider settings.
type QlooConfig struct {
	APIKey  string `yaml:"api_key"  env:"QLOO_API_KEY"  env-required:"true"`
	BaseURL string `yaml:"base_url" env:"QLOO_BASE_URL"`
}

// GeminiConfig holds generative-model provider settings.
type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"GEMINI_API_KEY" env-required:"true"`
	Model  string `yaml:"model"   env:"GEMINI_MODEL"   env-default:"gemini-1.5-pro"`
}

// UnsplashConfig holds image provider settings.
type UnsplashConfig struct {
	APIKey string `yaml:"api_key" env:"UNSPLASH_API_KEY" env-required:"true"`
}

// SpotifyConfig holds music catalog credentials.
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id"     env:"SPOTIFY_CLIENT_ID"     env-required:"true"`
	ClientSecret string `yaml:"client_secret" env:"SPOTIFY_CLIENT_SECRET" env-required:"true"`
}

// FrontendConfig holds settings for building user-facing links.
type FrontendConfig struct {
	BaseURL string `yaml:"base_url" env:"FRONTEND_URL" env-default:"http://localhost:5173"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
