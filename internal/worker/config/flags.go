package config

import (
	"flag"
	"os"
	"time"

	"github.com/keygrove/ceremony/internal/flagx"
)

// parseFlags populates selected worker Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   task service base URL
//	-r string   round-runner base URL
//	-t string   task identifier to execute
//	-k string   bearer token (skip interactive login)
//	-U string   username for interactive login
//	-m int      minimum polling delay, milliseconds
//	-x int      maximum polling delay, milliseconds
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-r", "-t", "-k", "-U", "-m", "-x"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerEndpointAddr, "s", config.ServerEndpointAddr, "task service base URL")
	fs.StringVar(&config.RoundsEndpointAddr, "r", config.RoundsEndpointAddr, "round-runner base URL")
	fs.StringVar(&config.TaskID, "t", config.TaskID, "task id")
	fs.StringVar(&config.Token, "k", config.Token, "bearer token")
	fs.StringVar(&config.Username, "U", config.Username, "username for interactive login")

	delayMin := fs.Int("m", int(config.DelayMin.Milliseconds()), "minimum polling delay (in milliseconds)")
	delayMax := fs.Int("x", int(config.DelayMax.Milliseconds()), "maximum polling delay (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.DelayMin = time.Duration(*delayMin) * time.Millisecond
	config.DelayMax = time.Duration(*delayMax) * time.Millisecond
}
