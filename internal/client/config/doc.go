// Package config loads runtime configuration for the finsync CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables (see parseEnv), optionally seeded from a .env
//     file by the caller.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the finance API
//	-t string   bearer token for the API
//	-d string   path to the local SQLite database file
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "https://shmr-finance.ru/api/v1",
//	  "auth_token": "...",
//	  "database_path": "finsync.db",
//	  "http_timeout": "10s"
//	}
package config
