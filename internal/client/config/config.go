package config

import "time"

// Config holds runtime settings for the AgriSmart CLI.
//
// Fields:
//   - ServerURL: base URL of the backend REST API (no trailing /api).
//   - SocketURL: websocket endpoint for the community chat rooms.
//   - DatabasePath: sqlite file holding persisted client state.
//   - RequestTimeout: per-request HTTP deadline.
type Config struct {
	ServerURL      string
	SocketURL      string
	DatabasePath   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults matching a local backend.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000"
	c.SocketURL = "ws://localhost:5000/socket"
	c.DatabasePath = "agrismart.db"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
