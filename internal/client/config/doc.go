// Package config loads runtime configuration for the lifedash CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string          local cache database path ("memory" for no file)
//	-k string          mirror kind (grpc, postgres, s3)
//	-a string          mirror address
//	-t string          mirror access key
//	-account string    mirror account
//	-bucket string     S3 bucket
//	-region string     S3 region
//	-i int             online status check interval (seconds)
//	-fetch-timeout d   mirror fetch timeout
//	-push-timeout d    mirror push timeout
//	-E                 seal payloads with a passphrase
//	-l string          log level
//
// # JSON schema
//
// Durations can be strings like "3s" or integer nanoseconds:
//
//	{
//	  "db_path": "/home/me/.lifedash/cache.db",
//	  "remote_kind": "grpc",
//	  "remote_url": "127.0.0.1:50051",
//	  "remote_key": "<device key>",
//	  "online_check_interval": "3s",
//	  "note_debounce": "450ms",
//	  "draft_debounce": "2s",
//	  "encrypt": true
//	}
//
// The mirror stays disabled until kind, address and key are all set.
package config
