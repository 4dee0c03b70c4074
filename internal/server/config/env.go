package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/hmori/flashcards/internal/flagx"
)

// parseEnv overlays Config values from the environment. An optional .env file
// (path via -n/-envfile, falling back to ./.env) is loaded first with godotenv;
// already-set process variables win over file values, which is godotenv's
// default behavior.
//
// Recognized variables:
//
//	ADDRESS, DATABASE_DSN, JWT_SECRET, JWT_ISSUER, JWT_AUDIENCE,
//	ACCESS_TOKEN_TTL (seconds), JWT_LEEWAY (seconds), AUTH_MODE,
//	SESSION_TTL (seconds), SESSION_HASH_KEY,
//	CORS_ORIGINS (comma separated), CORS_ALLOW_CREDENTIALS (bool)
func parseEnv(config *Config) {
	envFile := flagx.EnvFileFlags()
	if envFile == "" {
		envFile = ".env"
	}
	// A missing .env file is fine, the environment may be set directly.
	_ = godotenv.Load(envFile)

	setString(&config.Address, "ADDRESS")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.JWTSecret, "JWT_SECRET")
	setString(&config.JWTIssuer, "JWT_ISSUER")
	setString(&config.JWTAudience, "JWT_AUDIENCE")
	setSeconds(&config.AccessTokenTTL, "ACCESS_TOKEN_TTL")
	setSeconds(&config.JWTLeeway, "JWT_LEEWAY")
	setString(&config.AuthMode, "AUTH_MODE")
	setSeconds(&config.SessionTTL, "SESSION_TTL")
	setString(&config.SessionHashKey, "SESSION_HASH_KEY")

	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		config.CORSOrigins = splitOrigins(v)
	}
	if v, ok := os.LookupEnv("CORS_ALLOW_CREDENTIALS"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.CORSAllowCredentials = b
		}
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setSeconds(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = time.Duration(n) * time.Second
		}
	}
}
