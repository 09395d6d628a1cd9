package config

import (
	"flag"
	"os"

	"github.com/keygrove/ceremony/internal/flagx"
)

// parseFlags populates selected coordinator Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8008")
//	-s string   task service base URL
//	-p string   party command to spawn per signup (empty disables)
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run coordinator")
	fs.StringVar(&config.ServerEndpointAddr, "s", config.ServerEndpointAddr, "task service base URL")
	fs.StringVar(&config.PartyCommand, "p", config.PartyCommand, "party command")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
