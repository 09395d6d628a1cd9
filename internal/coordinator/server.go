// Package coordinator implements the party-coordination endpoint: party
// signups per ceremony, the message mailbox, and optional spawning of
// server-side party processes.
package coordinator

import (
	"context"
	"errors"
	"net/http"
	"os/exec"

	"github.com/go-chi/chi/v5"
	"github.com/keygrove/ceremony/internal/coordinator/config"
	"github.com/keygrove/ceremony/internal/logging"
	"github.com/keygrove/ceremony/internal/worker/taskapi"
)

// TaskAPI is the slice of the task service client the coordinator needs.
type TaskAPI interface {
	GetTask(ctx context.Context, taskID string) (*taskapi.Task, error)
	CheckToken(ctx context.Context, token string) (bool, error)
}

type HTTPServer struct {
	address      string
	partyCommand string
	api          TaskAPI
	mailbox      *Mailbox
	signups      *signupRegistry
	logger       logging.Logger
}

func NewHTTPServer(c *config.Config, l logging.Logger, api TaskAPI) (*HTTPServer, error) {
	return &HTTPServer{
		address:      c.EndpointAddr,
		partyCommand: c.PartyCommand,
		api:          api,
		mailbox:      NewMailbox(),
		signups:      newSignupRegistry(),
		logger:       l.With("module", "coordinator"),
	}, nil
}

func (s *HTTPServer) Router() http.Handler {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(s.bearerAuth)
		r.Post("/get", s.handleGet)
		r.Post("/set", s.handleSet)
		r.Post("/signupkeygen", s.handleSignupKeygen)
		r.Post("/signupsign", s.handleSignupSign)
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
		s.logger.Info(ctx, "Stopping coordinator...")
		if err := srv.Shutdown(context.Background()); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting coordinator", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// spawnParty launches the configured party command for the task. The process
// is detached: the coordinator only logs startup failures.
func (s *HTTPServer) spawnParty(ctx context.Context, taskID, token string) {
	if s.partyCommand == "" {
		return
	}

	cmd := exec.Command(s.partyCommand, taskID, token)
	if err := cmd.Start(); err != nil {
		s.logger.Error(ctx, "party spawn failed", "task_id", taskID, "error", err.Error())
		return
	}
	s.logger.Info(ctx, "party spawned", "task_id", taskID, "pid", cmd.Process.Pid)

	go func() {
		_ = cmd.Wait()
	}()
}
