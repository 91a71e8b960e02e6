// Package config provides configuration management for the farmer registry.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each partial
// configuration and the result is checked against their `validate` tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port, body limit and environment
//   - Database: MySQL or SQLite connection details
//   - Storage: S3/MinIO credentials and the report bucket
//   - Log: Logging level and format
//   - Crypto: the NRC encryption secret (required)
//   - Sync: worker pool, batch limits and job store backend
//   - Redis: job store connection when SYNC_JOB_BACKEND=redis
//   - Auth: API key and JWT secret
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.Workers)
package config
