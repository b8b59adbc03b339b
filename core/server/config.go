package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// RateLimit is the number of requests a client may make per minute. Zero disables limiting.
	RateLimit int `mapstructure:"rate_limit" default:"0"`
	// ShutdownTimeoutSeconds bounds the graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" default:"10"`
}

// RateLimitEnabled reports whether the limiter middleware should be installed.
func (c Config) RateLimitEnabled() bool {
	return c.RateLimit > 0
}

// ShutdownTimeout returns the graceful shutdown window, falling back to ten seconds.
func (c Config) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
