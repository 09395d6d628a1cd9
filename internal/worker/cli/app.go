// Package cli wires one worker invocation together: configuration, login when
// no token was supplied, and the ceremony run itself.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/keygrove/ceremony/internal/common"
	"github.com/keygrove/ceremony/internal/logging"
	"github.com/keygrove/ceremony/internal/worker/config"
	"github.com/keygrove/ceremony/internal/worker/gg18"
	"github.com/keygrove/ceremony/internal/worker/orchestrator"
	"github.com/keygrove/ceremony/internal/worker/taskapi"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

type App struct {
	config *config.Config
	logger logging.Logger
	api    *taskapi.Client
}

func NewApp(c *config.Config) *App {
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	return &App{
		config: c,
		logger: logger.With("module", "worker"),
		api:    taskapi.NewClient(c.ServerEndpointAddr),
	}
}

// getPassword prompts for a password on the controlling terminal without echo.
func getPassword() ([]byte, error) {
	fmt.Print("Enter password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// ensureToken returns the configured bearer token, logging in interactively
// when none was supplied.
func (a *App) ensureToken(ctx context.Context) (string, error) {
	if a.config.Token != "" {
		return a.config.Token, nil
	}
	if a.config.Username == "" {
		return "", errors.New("either a token (-k) or a username (-U) is required")
	}

	password, err := getPassword()
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.Login(ctx, a.config.Username, string(password))
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}
	return token, nil
}

// Run executes the configured task to completion. A non-nil return means the
// ceremony did not complete and the process should exit non-zero.
func (a *App) Run(ctx context.Context) error {

	if a.config.TaskID == "" {
		return errors.New("a task id (-t) is required")
	}

	token, err := a.ensureToken(ctx)
	if err != nil {
		return err
	}

	delay := gg18.RandomDelay(a.config.DelayMin, a.config.DelayMax)
	rounds := gg18.NewHTTPClient(a.config.RoundsEndpointAddr, token, delay)

	o := orchestrator.New(a.api, rounds, a.logger)
	return o.Run(ctx, a.config.TaskID)
}
