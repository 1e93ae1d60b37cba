package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	USPS     USPSConfig
	Creds    CredentialStoreConfig
	Batch    BatchConfig
}

// USPSConfig holds endpoint configuration for the USPS API. Empty URLs fall
// back to the production endpoints; point them at apis-tem.usps.com for the
// USPS test environment.
type USPSConfig struct {
	TokenURL       string
	ValidateURL    string
	TimeoutSeconds uint16
}

// CredentialStoreConfig selects where the client ID, client secret, and
// bearer token are persisted.
type CredentialStoreConfig struct {
	Backend       string // "keyring" or "file"
	Path          string // secrets file location for the file backend
	EncryptionKey string // base64-encoded 32-byte AES key for the file backend
}

// BatchConfig holds batch-run behavior toggles.
type BatchConfig struct {
	// RefreshOnUnauthorized retries a 401-rejected row once after a single
	// mid-run token refresh. Off by default; with it off, an expired token
	// surfaces as ordinary row errors.
	RefreshOnUnauthorized bool
}

func NewConfig() (*Config, error) {
	// Try to load .env from the current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		USPS: USPSConfig{
			TokenURL:       getEnv("USPS_TOKEN_URL", ""),
			ValidateURL:    getEnv("USPS_VALIDATE_URL", ""),
			TimeoutSeconds: getEnvInt("USPS_TIMEOUT_SECONDS", 10),
		},
		Creds: CredentialStoreConfig{
			Backend:       getEnv("CRED_STORE", "keyring"),
			Path:          getEnv("CRED_FILE_PATH", ""),
			EncryptionKey: getEnv("ENCRYPTION_KEY", ""),
		},
		Batch: BatchConfig{
			RefreshOnUnauthorized: getEnvBool("REFRESH_ON_UNAUTHORIZED", false),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.USPS.TimeoutSeconds == 0 {
		slog.Default().Warn("Invalid timeout. Using default: 10s")
		cfg.USPS.TimeoutSeconds = 10
	}

	// The file backend is unusable without a place to write and a key
	switch cfg.Creds.Backend {
	case "keyring":
	case "file":
		if cfg.Creds.Path == "" {
			return nil, fmt.Errorf("CRED_FILE_PATH required when CRED_STORE=file")
		}
		if cfg.Creds.EncryptionKey == "" {
			return nil, fmt.Errorf("ENCRYPTION_KEY required when CRED_STORE=file")
		}
	default:
		return nil, fmt.Errorf("unknown CRED_STORE %q (want keyring or file)", cfg.Creds.Backend)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
