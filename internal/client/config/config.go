package config

import "time"

// Config holds runtime settings for the userdesk terminal client.
//
// Fields:
//   - ServerEndpointAddr: base URL of the userdesk HTTP API.
//   - LocalDBPath: SQLite file holding the session token between runs.
//   - RequestTimeout: upper bound for a single API call.
//   - CollationLanguage: BCP 47 tag used when the client sorts the list.
//   - OnlineCheckInterval: how often the REPL pings the server to refresh
//     the online/offline indicator.
type Config struct {
	ServerEndpointAddr  string
	LocalDBPath         string
	RequestTimeout      time.Duration
	CollationLanguage   string
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.LocalDBPath = "userdesk.db"
	c.RequestTimeout = 10 * time.Second
	c.CollationLanguage = "und"
	c.OnlineCheckInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
