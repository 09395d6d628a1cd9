// Package server initializes and runs the task service: it opens the database,
// applies migrations, seeds the bootstrap user, and serves the HTTP endpoint
// until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/keygrove/ceremony/internal/logging"
	"github.com/keygrove/ceremony/internal/server/config"
	"github.com/keygrove/ceremony/internal/server/httpapi"
	"github.com/keygrove/ceremony/internal/server/repositories/repomanager"
	"github.com/keygrove/ceremony/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	userService    *services.UserService
	taskService    *services.TaskService
	userKeyService *services.UserKeyService
}

func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := services.NewUserService(db, m, c)
	ts := services.NewTaskService(db, m, c)
	ks := services.NewUserKeyService(db, m, c)

	app := &App{
		config:         c,
		logger:         logger,
		db:             db,
		userService:    us,
		taskService:    ts,
		userKeyService: ks,
	}

	ctx := context.Background()
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	if c.BootstrapUser != "" {
		if err := us.EnsureUser(ctx, c.BootstrapUser, c.BootstrapPassword); err != nil {
			return nil, fmt.Errorf("bootstrap user error: %w", err)
		}
	}

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewHTTPServer(app.config.EndpointAddr, app.logger,
		app.userService, app.taskService, app.userKeyService)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
