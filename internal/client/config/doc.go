// Package config loads runtime configuration for the devlog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. YAML when the name
//     ends in .yaml or .yml, JSON otherwise.
//  3. Environment variables with the DEVLOG_ prefix.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the journal API
//	-s string   session database file
//	-o string   export directory
//	-l string   log level
//
// Environment
//
//	DEVLOG_API_BASE, DEVLOG_SESSION_DB, DEVLOG_EXPORT_DIR, DEVLOG_LOG_LEVEL
//
// # File schema
//
//	{
//	  "api_base_url": "http://localhost:5000",
//	  "session_db": "devlog.db",
//	  "export_dir": "exports",
//	  "log_level": "warn"
//	}
package config
