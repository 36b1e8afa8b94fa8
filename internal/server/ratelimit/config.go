package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig returns a configuration where model-backed and mail-sending
// endpoints allow perMinute requests with the given burst and everything
// else gets a lenient default.
func NewConfig(perMinute, burst int) *Config {
	return &Config{
		Enabled:         perMinute > 0,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(perMinute, burst),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific configurations.
func DefaultEndpointConfigs(perMinute, burst int) []EndpointConfig {
	return []EndpointConfig{
		// Expensive: model calls and outbound mail
		{Path: "/api/resume/customize", Method: "POST", Limit: perMinute, Window: time.Minute, Burst: burst},
		{Path: "/api/resume/send", Method: "POST", Limit: perMinute, Window: time.Minute, Burst: burst},

		// Uploads parse documents in-process
		{Path: "/api/resume/upload", Method: "POST", Limit: 2 * perMinute, Window: time.Minute, Burst: 2 * burst},

		// Everything else, including health, falls through to the default
		// limit or the special case in the matcher
	}
}

// ParseIPList parses a comma-separated list of IP addresses into a map.
func ParseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
