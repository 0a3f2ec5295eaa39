package storage

import "time"

// Config holds configuration for the object store holding model dumps and scripts.
type Config struct {
	// Endpoint is host:port of the S3 or MinIO service; a scheme prefix is ignored.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL enables TLS.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// PathStyle forces path-style bucket addressing, which self-hosted MinIO usually needs.
	PathStyle bool `mapstructure:"path_style" default:"true"`
	// Bucket holds <stream>/model.gwa dumps and <stream>/<pass>.gwa scripts.
	Bucket string `mapstructure:"bucket" default:"sync-scripts"`
	// Region of the bucket, e.g. us-east-1.
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds connection setup and the first response byte.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Timeout returns TimeoutSeconds as a duration, defaulting to 30s.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
