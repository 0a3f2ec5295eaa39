package session

import (
	"strings"
	"time"

	"model-sync/core/cache"
	"model-sync/core/gwa"
)

// Config holds configuration for synchronisation sessions.
type Config struct {
	// Delimiter is the field separator of native record lines.
	Delimiter string `mapstructure:"delimiter" default:"\t"`
	// NodeKeywords is a comma-separated list of engine-owned record keywords.
	NodeKeywords string `mapstructure:"node_keywords" default:"NODE"`
	// InternalPrefix marks external ids generated by the engine.
	InternalPrefix string `mapstructure:"internal_prefix" default:"gsa"`
	// TTLSeconds is how long an idle session is kept by the registry. Zero disables reuse.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"600"`
}

// Format returns the record format for the configured delimiter.
func (c Config) Format() gwa.Format {
	return gwa.Format{Delimiter: c.Delimiter}
}

// TTL returns TTLSeconds as a duration.
func (c Config) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// CacheOptions converts the configuration into collection options.
func (c Config) CacheOptions() cache.Options {
	var keywords []string
	for _, k := range strings.Split(c.NodeKeywords, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return cache.Options{
		Format:         c.Format(),
		NodeKeywords:   keywords,
		InternalPrefix: c.InternalPrefix,
	}
}
