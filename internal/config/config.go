package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "supersecretkey"

type Config struct {
	Port string

	// DBDriver is "sqlite" (default) or "postgres".
	DBDriver string
	// DBPath is the SQLite database file, created on first start if absent.
	DBPath string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	JWTSecret string

	// Env is "dev" (default) or "prod". When "prod", JWT_SECRET must be set and not the default.
	Env string

	// JWTExpireMinutes is the access token lifetime in minutes (default 30). Set via JWT_EXPIRE_MINUTES.
	JWTExpireMinutes int

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json".
	LogFormat string

	// CORSAllowedOrigins is set via CORS_ALLOWED_ORIGINS (comma-separated). Empty means no CORS headers.
	CORSAllowedOrigins []string

	// Bootstrap user, created at start-up when all three are set and the name is free.
	BootstrapName     string
	BootstrapEmail    string
	BootstrapPassword string
}

// Load reads configuration from the environment. A .env file in the working
// directory, when present, is loaded first; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "8080"),

		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBPath:   getEnv("DB_PATH", "users.db"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "userdb"),
		DBUser: getEnv("DB_USER", "userapi"),
		DBPass: getEnv("DB_PASS", "userapi"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		JWTSecret:        getEnv("JWT_SECRET", defaultJWTSecret),
		Env:              getEnv("ENV", "dev"),
		JWTExpireMinutes: getEnvInt("JWT_EXPIRE_MINUTES", 30),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: parseCORSOrigins(getEnv("CORS_ALLOWED_ORIGINS", "")),

		BootstrapName:     getEnv("BOOTSTRAP_USER_NAME", ""),
		BootstrapEmail:    getEnv("BOOTSTRAP_USER_EMAIL", ""),
		BootstrapPassword: getEnv("BOOTSTRAP_USER_PASSWORD", ""),
	}
}

// Validate rejects settings that must not reach production.
func (c Config) Validate() error {
	if c.DBDriver != "sqlite" && c.DBDriver != "postgres" {
		return errors.New("DB_DRIVER must be sqlite or postgres")
	}
	if c.Env == "prod" && (c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret) {
		return errors.New("JWT_SECRET must be set to a non-default value when ENV=prod")
	}
	return nil
}

// TokenTTL is the lifetime of issued access tokens.
func (c Config) TokenTTL() time.Duration {
	if c.JWTExpireMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.JWTExpireMinutes) * time.Minute
}

// HasBootstrapUser reports whether a start-up user is fully configured.
func (c Config) HasBootstrapUser() bool {
	return c.BootstrapName != "" && c.BootstrapEmail != "" && c.BootstrapPassword != ""
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
