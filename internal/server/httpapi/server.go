// Package httpapi exposes the task service over HTTP: login and task creation
// on the public surface, task/status/key/token operations on the internal one.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/keygrove/ceremony/internal/logging"
	"github.com/keygrove/ceremony/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address  string
	users    *services.UserService
	tasks    *services.TaskService
	userKeys *services.UserKeyService
	logger   logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, ts *services.TaskService, ks *services.UserKeyService) (*HTTPServer, error) {
	return &HTTPServer{
		address:  a,
		logger:   l.With("module", "http_server"),
		users:    us,
		tasks:    ts,
		userKeys: ks,
	}, nil
}

func (s *HTTPServer) Router() http.Handler {
	mux := chi.NewRouter()

	mux.Post("/login", s.handleLogin)
	mux.With(s.bearerAuth).Post("/tasks", s.handleCreateTask)

	mux.Route("/internal", func(r chi.Router) {
		r.Get("/tasks/{taskID}", s.handleGetTask)
		r.Patch("/tasks/{taskID}/status", s.handlePatchTaskStatus)
		r.Put("/generated_user_key/{userID}", s.handlePutUserKey)
		r.Get("/generated_user_key/{userID}", s.handleGetUserKey)
		r.Post("/check_token", s.handleCheckToken)
	})

	return mux
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
