package mcpserver

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled    bool
	CacheMaxSize    int
	CacheFileTTL    time.Duration
	CacheURLTTL     time.Duration
	CacheContentTTL time.Duration

	// List tool defaults.
	ListLimit int
	MaxLimit  int

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool
}

// LogFileEnv names the variable that routes server logs to a rotated file.
// The server itself never reads it; the command that configures logging does.
const LogFileEnv = "SLIMSWAGGER_LOG_FILE"

// cfg is the active server configuration, initialized at package load time
// and reloaded by Run so variables from LoadEnvFile take effect.
var cfg = loadConfig()

// loadConfig reads configuration from SLIMSWAGGER_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:    envBool("SLIMSWAGGER_CACHE_ENABLED", true),
		CacheMaxSize:    envInt("SLIMSWAGGER_CACHE_MAX_SIZE", 10),
		CacheFileTTL:    envDuration("SLIMSWAGGER_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:     envDuration("SLIMSWAGGER_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL: envDuration("SLIMSWAGGER_CACHE_CONTENT_TTL", 15*time.Minute),
		ListLimit:       envInt("SLIMSWAGGER_LIST_LIMIT", 500),
		MaxLimit:        envInt("SLIMSWAGGER_MAX_LIMIT", 5000),
		MaxInlineSize:   int64(envInt("SLIMSWAGGER_MAX_INLINE_SIZE", 10*1024*1024)),
		AllowPrivateIPs: envBool("SLIMSWAGGER_ALLOW_PRIVATE_IPS", false),
	}
}

// LoadEnvFile applies variables from a .env file without overriding ones
// already set in the process environment. An empty path tries ".env" in the
// working directory and ignores its absence.
func LoadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("mcpserver: loading env file %s: %w", path, err)
	}
	return nil
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
