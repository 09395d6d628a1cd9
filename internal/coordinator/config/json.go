package config

import (
	"encoding/json"
	"os"

	"github.com/keygrove/ceremony/internal/flagx"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
type JsonConfig struct {
	EndpointAddr       string `json:"endpoint_addr"`
	ServerEndpointAddr string `json:"server_endpoint_addr"`
	PartyCommand       string `json:"party_command"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config flags; when
// neither is set no JSON file is loaded. Unreadable or invalid files panic.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.ServerEndpointAddr = c.ServerEndpointAddr
	config.PartyCommand = c.PartyCommand
}
