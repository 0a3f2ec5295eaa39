// Package config provides configuration management for model-sync.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: pass history database (mysql or sqlite)
//   - Storage: S3/MinIO credentials and bucket for model dumps and command scripts
//   - Log: logging level and format
//   - Sync: record delimiter, engine-owned keywords, session TTL
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.TTL())
package config
