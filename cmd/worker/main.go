package main

import (
	"context"
	"log"
	"os"

	"github.com/keygrove/ceremony/internal/worker/cli"
	"github.com/keygrove/ceremony/internal/worker/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

}
