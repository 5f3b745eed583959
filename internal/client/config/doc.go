// Package config loads runtime configuration for the userdesk client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file (see parseFile) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the userdesk API
//	-f string   path of the local SQLite file
//	-w int      request timeout (seconds)
//	-n string   collation language
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:8080",
//	  "local_db_path": "userdesk.db",
//	  "request_timeout": "10s",
//	  "collation_language": "en"
//	}
package config
