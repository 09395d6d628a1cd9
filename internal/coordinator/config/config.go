// Package config handles configuration for the coordinator component.
package config

// Config holds runtime settings for the ceremony coordinator.
//
// Fields:
//   - EndpointAddr: bind address for the coordination HTTP endpoint.
//   - ServerEndpointAddr: base URL of the task service (token checks, task
//     lookups).
//   - PartyCommand: optional executable spawned once per signup with the task
//     id and token as arguments; empty disables spawning.
type Config struct {
	EndpointAddr       string
	ServerEndpointAddr string
	PartyCommand       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8008"
	c.ServerEndpointAddr = "http://127.0.0.1:8000"
	c.PartyCommand = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
