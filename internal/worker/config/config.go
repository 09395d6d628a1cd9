// Package config handles configuration for the worker component.
package config

import "time"

// Config holds runtime settings for one worker invocation.
//
// Fields:
//   - ServerEndpointAddr: base URL of the task service.
//   - RoundsEndpointAddr: base URL of the local round-runner endpoint.
//   - TaskID: the task to execute.
//   - Token: bearer token; when empty the worker logs in interactively
//     using Username and a password prompt.
//   - Username: account used for the interactive login fallback.
//   - DelayMin / DelayMax: bounds for the per-run mailbox polling delay.
type Config struct {
	ServerEndpointAddr string
	RoundsEndpointAddr string
	TaskID             string
	Token              string
	Username           string
	DelayMin           time.Duration
	DelayMax           time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8000"
	c.RoundsEndpointAddr = "http://127.0.0.1:8001"
	c.DelayMin = 100 * time.Millisecond
	c.DelayMax = 500 * time.Millisecond
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
