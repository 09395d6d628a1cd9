package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/keygrove/ceremony/internal/coordinator"
	"github.com/keygrove/ceremony/internal/coordinator/config"
	"github.com/keygrove/ceremony/internal/logging"
	"github.com/keygrove/ceremony/internal/worker/taskapi"
)

func main() {

	cfg := config.LoadConfig()

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	api := taskapi.NewClient(cfg.ServerEndpointAddr)

	srv, err := coordinator.NewHTTPServer(cfg, logger, api)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigs
		cancel()
	}()

	if err := srv.Run(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

}
