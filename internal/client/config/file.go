package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/userdesk/internal/flagx"
	"github.com/dmitrijs2005/userdesk/internal/timex"
	"github.com/goccy/go-yaml"
)

// FileConfig is a DTO used exclusively for decoding the config file.
type FileConfig struct {
	ServerEndpointAddr  string          `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	LocalDBPath         string          `json:"local_db_path" yaml:"local_db_path"`
	RequestTimeout      *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	CollationLanguage   string          `json:"collation_language" yaml:"collation_language"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
}

// parseFile overlays cfg with the file named by -c or -config. Empty fields
// keep their current value. Read or decode errors panic.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	if fc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = fc.ServerEndpointAddr
	}
	if fc.LocalDBPath != "" {
		cfg.LocalDBPath = fc.LocalDBPath
	}
	if fc.CollationLanguage != "" {
		cfg.CollationLanguage = fc.CollationLanguage
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
}
