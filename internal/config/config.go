package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	GatewayHTTP     = "http"
	GatewayEmbedded = "embedded"
	GatewayMemory   = "memory"
)

type Config struct {
	HTTPAddr             string
	DatabaseURL          string // empty selects the in-memory store
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	LogLevel  string
	LogFormat string

	// client side
	GatewayMode    string
	GatewayURL     string
	GatewayTimeout time.Duration // 0 means requests may stay pending forever
	PrefsPath      string
}

// Load reads .env (or the given files) into the environment and builds a
// Config from it. A missing default .env is fine; a named file must load.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env: %w", err)
		}
	}

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		DatabaseURL:          getenv("DATABASE_URL", ""),
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",
		LogLevel:             getenv("LOG_LEVEL", "info"),
		LogFormat:            getenv("LOG_FORMAT", "json"),
		GatewayMode:          strings.ToLower(getenv("GATEWAY_MODE", GatewayMemory)),
		GatewayURL:           getenv("GATEWAY_URL", ""),
		PrefsPath:            getenv("PREFS_PATH", ""),
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	if v := getenv("GATEWAY_TIMEOUT", ""); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("GATEWAY_TIMEOUT: %w", err)
		}
		cfg.GatewayTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.GatewayMode {
	case GatewayMemory, GatewayEmbedded:
	case GatewayHTTP:
		if c.GatewayURL == "" {
			return fmt.Errorf("config: GATEWAY_URL is required when GATEWAY_MODE=%s", GatewayHTTP)
		}
	default:
		return fmt.Errorf("config: unknown GATEWAY_MODE %q", c.GatewayMode)
	}
	if c.GatewayTimeout < 0 {
		return fmt.Errorf("config: GATEWAY_TIMEOUT must not be negative")
	}
	return nil
}

// parseDuration accepts Go durations ("30s") or a bare number of seconds.
func parseDuration(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
