package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/keygrove/ceremony/internal/flagx"
	"github.com/keygrove/ceremony/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "100ms" and integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	RoundsEndpointAddr string         `json:"rounds_endpoint_addr"`
	TaskID             string         `json:"task_id"`
	Token              string         `json:"token"`
	Username           string         `json:"username"`
	DelayMin           timex.Duration `json:"delay_min"`
	DelayMax           timex.Duration `json:"delay_max"`
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

	config.ServerEndpointAddr = c.ServerEndpointAddr
	config.RoundsEndpointAddr = c.RoundsEndpointAddr
	config.TaskID = c.TaskID
	config.Token = c.Token
	config.Username = c.Username
	config.DelayMin = time.Duration(c.DelayMin.Duration)
	config.DelayMax = time.Duration(c.DelayMax.Duration)
}
