package config

import (
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.EndpointAddr, ":8008")
	assert.Equal(t, c.ServerEndpointAddr, "http://127.0.0.1:8000")
	assert.Empty(t, c.PartyCommand)
}

func TestParseFlags(t *testing.T) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cmd", "-a", ":9008", "-s", "http://server:8000", "-p", "/usr/local/bin/party"}

	config := &Config{}
	require.NotPanics(t, func() { parseFlags(config) })

	assert.Equal(t, ":9008", config.EndpointAddr)
	assert.Equal(t, "http://server:8000", config.ServerEndpointAddr)
	assert.Equal(t, "/usr/local/bin/party", config.PartyCommand)
}
