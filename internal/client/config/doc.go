// Package config loads runtime configuration for the ExamDesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "http_base_url": "http://127.0.0.1:8080",
//	  "call_timeout": "15s",
//	  "delivery_delay": "1.5s",
//	  "download_dir": "./docs",
//	  "history_file": "examdesk.db"
//	}
package config
