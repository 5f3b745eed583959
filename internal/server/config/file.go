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

// FileConfig is the on-disk shape of the server configuration. Durations use
// timex.Duration so files may hold "15m" or integer nanoseconds. Empty or
// absent fields leave the current value untouched.
type FileConfig struct {
	EndpointAddrHTTP      string          `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	DatabaseDSN           string          `json:"database_dsn" yaml:"database_dsn"`
	SecretKey             string          `json:"secret_key" yaml:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration" yaml:"token_validity_duration"`
	DataSource            string          `json:"data_source" yaml:"data_source"`
	DirectoryURL          string          `json:"directory_url" yaml:"directory_url"`
	CredentialStore       string          `json:"credential_store" yaml:"credential_store"`
	StaticUserID          string          `json:"static_user_id" yaml:"static_user_id"`
	StaticUsername        string          `json:"static_username" yaml:"static_username"`
	StaticPassword        string          `json:"static_password" yaml:"static_password"`
	BootstrapOperator     string          `json:"bootstrap_operator" yaml:"bootstrap_operator"`
	BootstrapPassword     string          `json:"bootstrap_password" yaml:"bootstrap_password"`
	CollationLanguage     string          `json:"collation_language" yaml:"collation_language"`
	RequestTimeout        *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	S3RootUser            string          `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword        string          `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket              string          `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region              string          `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint        string          `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	LogLevel              string          `json:"log_level" yaml:"log_level"`
}

// parseFile overlays config with the file named by -c or -config.
// Files ending in .yaml or .yml are decoded with goccy/go-yaml, anything
// else as JSON. Read or decode errors panic: a broken config file must stop
// startup.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.DataSource, c.DataSource)
	setString(&config.DirectoryURL, c.DirectoryURL)
	setString(&config.CredentialStore, c.CredentialStore)
	setString(&config.StaticUserID, c.StaticUserID)
	setString(&config.StaticUsername, c.StaticUsername)
	setString(&config.StaticPassword, c.StaticPassword)
	setString(&config.BootstrapOperator, c.BootstrapOperator)
	setString(&config.BootstrapPassword, c.BootstrapPassword)
	setString(&config.CollationLanguage, c.CollationLanguage)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)

	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.RequestTimeout != nil {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
