package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultHost      = "127.0.0.1"
	defaultPort      = "8080"
	defaultHeartbeat = 15 * time.Second
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	Host      string
	Port      string
	Heartbeat time.Duration
	// LogLevel is nil when LOG_LEVEL is unset.
	LogLevel *logrus.Level
}

// Address is the host:port the web front end listens on.
func (c *ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Load reads configuration from environment variables, falling back to
// defaults for anything unset.
func Load() (*ServerConfig, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*ServerConfig, error) {
	cfg := &ServerConfig{
		Host:      getEnv(getenv, "GOMOKU_HOST", defaultHost),
		Port:      getEnv(getenv, "GOMOKU_PORT", defaultPort),
		Heartbeat: defaultHeartbeat,
	}

	if _, err := strconv.ParseUint(cfg.Port, 10, 16); err != nil {
		return nil, fmt.Errorf("invalid GOMOKU_PORT %q: %w", cfg.Port, err)
	}

	if v := getenv("GOMOKU_HEARTBEAT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid GOMOKU_HEARTBEAT %q: %w", v, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid GOMOKU_HEARTBEAT %q: must be positive", v)
		}
		cfg.Heartbeat = d
	}

	level, err := logLevel(getenv)
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	return cfg, nil
}

// LoadLogLevel reads LOG_LEVEL alone, for commands that need no server
// configuration. It returns nil when the variable is unset.
func LoadLogLevel() (*logrus.Level, error) {
	return logLevel(os.Getenv)
}

func logLevel(getenv func(string) string) (*logrus.Level, error) {
	v := getenv("LOG_LEVEL")
	if v == "" {
		return nil, nil
	}
	level, err := logrus.ParseLevel(v)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return &level, nil
}

func getEnv(getenv func(string) string, key, fallback string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return fallback
}
