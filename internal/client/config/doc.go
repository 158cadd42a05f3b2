// Package config loads runtime configuration for the Stockly CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the Stockly API server
//	-t int      request timeout (seconds)
//	-d string   path to the offline catalog cache database
//	-s string   path to the credentials file
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "15s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "https://api.stockly.example",
//	  "request_timeout": "15s",
//	  "cache_db_path": "/home/me/.stockly/cache.db",
//	  "credentials_path": "/home/me/.stockly/credentials.json"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
