// Package config loads runtime configuration for the AgriSmart CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-s string   websocket endpoint for chat
//	-d string   path to the local sqlite database
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "15s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:5000",
//	  "socket_url": "ws://localhost:5000/socket",
//	  "database_path": "agrismart.db",
//	  "request_timeout": "15s"
//	}
//
// Note: This package does not read environment variables; use the JSON file
// or flags to configure values.
package config
