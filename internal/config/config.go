package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	// Identity provider selection: "hosted" talks to the auth platform's
	// admin API, "local" stores credentials in Postgres.
	AuthProvider string
	AuthURL      string
	AuthKey      string
	AuthJWKSURL  string // Constructed from AuthURL + /auth/v1/.well-known/jwks.json
	CORSOrigins  string
	TablePrefix  string
	// LogDir enables timestamped log files next to stdout when set
	LogDir      string
	LogMaxFiles int
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	tablePrefix := getTablePrefix(env)
	authURL := getEnv("AUTH_URL", "")

	// Construct JWKS URL from the auth platform URL
	jwksURL := authURL + "/auth/v1/.well-known/jwks.json"
	if override := os.Getenv("AUTH_JWKS_URL"); override != "" {
		jwksURL = override
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  env,
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		AuthProvider: getEnv("AUTH_PROVIDER", "hosted"),
		AuthURL:      authURL,
		AuthKey:      getEnv("AUTH_SERVICE_KEY", ""),
		AuthJWKSURL:  jwksURL,
		CORSOrigins:  getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:  tablePrefix,
		LogDir:       getEnv("LOG_DIR", ""),
		LogMaxFiles:  getEnvInt("LOG_MAX_FILES", 10),
		// Debug defaults to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	// Auto-generate based on environment
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	case "dev":
		return "dev_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
