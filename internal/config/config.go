package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Transport selects how the gateway serves the tool-calling protocol.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// Config holds the process-wide configuration, read once at startup and
// passed by reference into every component that needs it. Handlers never
// read environment variables themselves.
type Config struct {
	// BaseURL is the root of the remote trust API, e.g. "https://api.example.com".
	BaseURL string
	// APIKey is the static credential sent with every remote call.
	APIKey string
	// Timeout bounds each outbound trust API request.
	Timeout time.Duration
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// Transport is "stdio" (default) or "sse".
	Transport string
	// ListenAddr is the HTTP listen address for the SSE transport.
	ListenAddr string
	// ServerKeys, when non-empty, enables inbound bearer-key auth on the
	// SSE transport. Ignored for stdio.
	ServerKeys []string
}

// ErrMissingBaseURL and ErrMissingAPIKey mark the two fatal startup conditions.
var (
	ErrMissingBaseURL = errors.New("DIVT_API_URL is not set")
	ErrMissingAPIKey  = errors.New("DIVT_API_KEY is not set")
)

// FromEnv loads the configuration from the environment. A missing base URL
// or API key is an error; the caller is expected to treat it as fatal.
func FromEnv() (*Config, error) {
	cfg := &Config{
		BaseURL:    strings.TrimRight(os.Getenv("DIVT_API_URL"), "/"),
		APIKey:     os.Getenv("DIVT_API_KEY"),
		Timeout:    time.Duration(envOrDefaultInt("DIVT_API_TIMEOUT_MS", 30_000)) * time.Millisecond,
		LogLevel:   envOrDefault("DIVT_GATEWAY_LOG_LEVEL", "info"),
		Transport:  envOrDefault("DIVT_GATEWAY_TRANSPORT", TransportStdio),
		ListenAddr: envOrDefault("DIVT_GATEWAY_LISTEN_ADDR", ":8321"),
	}
	if keys := os.Getenv("DIVT_GATEWAY_SERVER_KEYS"); keys != "" {
		for _, k := range strings.Split(keys, ",") {
			if k = strings.TrimSpace(k); k != "" {
				cfg.ServerKeys = append(cfg.ServerKeys, k)
			}
		}
	}
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Transport != TransportStdio && cfg.Transport != TransportSSE {
		return nil, fmt.Errorf("DIVT_GATEWAY_TRANSPORT must be %q or %q, got %q",
			TransportStdio, TransportSSE, cfg.Transport)
	}
	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
