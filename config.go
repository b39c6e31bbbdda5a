package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config carries the SDK's environment-driven settings, processed under the
// CAMPUSJAM prefix (CAMPUSJAM_API_URL, CAMPUSJAM_SOCKET_URL, ...).
type Config struct {
	// APIURL is the backend base URL, without the /api prefix.
	APIURL string `envconfig:"API_URL" default:"http://localhost:5005"`

	// SocketURL is the realtime endpoint. Derived from APIURL when empty.
	SocketURL string `envconfig:"SOCKET_URL"`

	// TokenPath overrides where the bearer token is persisted.
	// Empty means $HOME/.campusjam/token.
	TokenPath string `envconfig:"TOKEN_PATH"`

	// HTTPTimeout bounds each REST request.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// NotificationInterval is the notification poller period.
	NotificationInterval time.Duration `envconfig:"NOTIFICATION_INTERVAL" default:"60s"`

	// ReconnectAttempts bounds automatic realtime reconnection per identity.
	ReconnectAttempts int `envconfig:"RECONNECT_ATTEMPTS" default:"5"`
}

// LoadConfig reads configuration from the environment, loading a local .env
// file first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("campusjam", &cfg); err != nil {
		return nil, fmt.Errorf("process config: %w", err)
	}
	if cfg.SocketURL == "" {
		cfg.SocketURL = SocketURLFor(cfg.APIURL)
	}
	return &cfg, nil
}

// SocketURLFor derives the realtime endpoint from the API base URL.
func SocketURLFor(apiURL string) string {
	u := strings.TrimRight(apiURL, "/")
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u + "/ws"
}
