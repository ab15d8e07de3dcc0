// Package config loads runtime configuration for the Tutor Stack CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables (TUTOR_API_BASE_URL, TUTOR_DB_PATH,
//     TUTOR_ONLINE_CHECK_INTERVAL, TUTOR_LOG_LEVEL).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the Tutor Stack API
//	-d string   path of the local session database
//	-i int      online status check interval (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "db_path": "tutor.db",
//	  "online_check_interval": "3s",
//	  "log_level": "warn"
//	}
//
// Empty JSON fields leave the earlier value untouched. Invalid input in any
// source panics: configuration is read once at startup.
package config
