// internal/gateway/config.go
package gateway

import (
	"fmt"
	"strings"
)

const DefaultListenAddr = ":8080"

type EnvConfig struct {
	ListenAddr string
	Handler    Config
}

// ConfigFromEnv reads APP_SECRET, OPENAI_API_KEY, UPSTREAM_URL and LISTEN_ADDR.
func ConfigFromEnv(getenv func(string) string) (EnvConfig, error) {
	cfg := EnvConfig{
		ListenAddr: strings.TrimSpace(getenv("LISTEN_ADDR")),
		Handler: Config{
			AppSecret:   getenv("APP_SECRET"),
			APIKey:      strings.TrimSpace(getenv("OPENAI_API_KEY")),
			UpstreamURL: strings.TrimSpace(getenv("UPSTREAM_URL")),
		},
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.Handler.UpstreamURL == "" {
		cfg.Handler.UpstreamURL = DefaultUpstreamURL
	}
	if strings.TrimSpace(cfg.Handler.AppSecret) == "" {
		return cfg, fmt.Errorf("APP_SECRET is required")
	}
	return cfg, nil
}
