// Package orchestrator drives one ceremony end to end: it claims the task,
// runs the round sequence for its type, and reports the terminal status back
// to the task service.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/keygrove/ceremony/internal/common"
	"github.com/keygrove/ceremony/internal/logging"
	"github.com/keygrove/ceremony/internal/worker/gg18"
	"github.com/keygrove/ceremony/internal/worker/taskapi"
)

// TaskAPI is the slice of the task service client the orchestrator needs.
type TaskAPI interface {
	GetTask(ctx context.Context, taskID string) (*taskapi.Task, error)
	SetTaskStatus(ctx context.Context, taskID, status string) error
	GetUserKey(ctx context.Context, userID string) (string, error)
	UpsertUserKey(ctx context.Context, userID, keyData string) error
}

type Orchestrator struct {
	api    TaskAPI
	rounds gg18.Client
	logger logging.Logger
}

func New(api TaskAPI, rounds gg18.Client, l logging.Logger) *Orchestrator {
	return &Orchestrator{
		api:    api,
		rounds: rounds,
		logger: l.With("module", "orchestrator"),
	}
}

type keygenParams struct {
	Threshold *int `json:"t"`
	Parties   *int `json:"n"`
}

type signParams struct {
	Threshold *int    `json:"t"`
	Parties   *int    `json:"n"`
	Message   *string `json:"message"`
}

// Run executes the ceremony for the given task. The task must exist and still
// be in the initial status; it is then claimed (moved to processing) before
// any round work starts. Every failure after the claim transitions the task
// to failed and is returned to the caller. Failures before the claim leave
// the task untouched.
func (o *Orchestrator) Run(ctx context.Context, taskID string) error {

	task, err := o.api.GetTask(ctx, taskID)
	if err != nil {
		return fmt.Errorf("fetching task %s: %w", taskID, err)
	}

	if task.ID != taskID {
		return fmt.Errorf("task service returned task %s for %s", task.ID, taskID)
	}
	if task.Status != common.StatusCreated {
		return fmt.Errorf("task %s is %s, expected %s", taskID, task.Status, common.StatusCreated)
	}

	if err := o.api.SetTaskStatus(ctx, taskID, common.StatusProcessing); err != nil {
		return fmt.Errorf("claiming task %s: %w", taskID, err)
	}

	o.logger.Info(ctx, "task claimed", "task_id", taskID, "type", task.Type)

	if err := o.execute(ctx, task); err != nil {
		o.logger.Error(ctx, "ceremony failed", "task_id", taskID, "error", err.Error())
		if ferr := o.api.SetTaskStatus(ctx, taskID, common.StatusFailed); ferr != nil {
			o.logger.Error(ctx, "failed to mark task failed", "task_id", taskID, "error", ferr.Error())
		}
		return err
	}

	if err := o.api.SetTaskStatus(ctx, taskID, common.StatusCompleted); err != nil {
		return fmt.Errorf("completing task %s: %w", taskID, err)
	}

	o.logger.Info(ctx, "task completed", "task_id", taskID)
	return nil
}

func (o *Orchestrator) execute(ctx context.Context, task *taskapi.Task) error {
	switch task.Type {
	case common.TaskTypeKeyGeneration:
		return o.runKeygen(ctx, task)
	case common.TaskTypeSigning:
		return o.runSigning(ctx, task)
	default:
		return fmt.Errorf("unsupported task type %q", task.Type)
	}
}

func (o *Orchestrator) runKeygen(ctx context.Context, task *taskapi.Task) error {

	var params keygenParams
	if err := json.Unmarshal([]byte(task.Parameters), &params); err != nil {
		return fmt.Errorf("parsing parameters: %w", err)
	}
	if params.Threshold == nil || params.Parties == nil {
		return errors.New("key generation requires parameters t and n")
	}

	roundCtx, err := o.rounds.KeygenNewContext(ctx, *params.Threshold, *params.Parties)
	if err != nil {
		return err
	}

	steps := []func(context.Context, string) (string, error){
		o.rounds.KeygenRound1,
		o.rounds.KeygenRound2,
		o.rounds.KeygenRound3,
		o.rounds.KeygenRound4,
		o.rounds.KeygenRound5,
	}
	for i, step := range steps {
		if roundCtx, err = step(ctx, roundCtx); err != nil {
			return fmt.Errorf("keygen round %d: %w", i+1, err)
		}
	}

	// Round 5 yields the final key store.
	if err := o.api.UpsertUserKey(ctx, task.CreatedBy, roundCtx); err != nil {
		return fmt.Errorf("storing key material: %w", err)
	}

	o.logger.Info(ctx, "key material stored", "task_id", task.ID, "user_id", task.CreatedBy)
	return nil
}

func (o *Orchestrator) runSigning(ctx context.Context, task *taskapi.Task) error {

	var params signParams
	if err := json.Unmarshal([]byte(task.Parameters), &params); err != nil {
		return fmt.Errorf("parsing parameters: %w", err)
	}
	if params.Threshold == nil || params.Parties == nil || params.Message == nil {
		return errors.New("signing requires parameters t, n and message")
	}

	keyStore, err := o.api.GetUserKey(ctx, task.CreatedBy)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("no key material for user %s", task.CreatedBy)
		}
		return fmt.Errorf("fetching key material: %w", err)
	}

	roundCtx, err := o.rounds.SignNewContext(ctx, *params.Threshold, *params.Parties, keyStore, *params.Message)
	if err != nil {
		return err
	}

	steps := []func(context.Context, string) (string, error){
		o.rounds.SignRound0,
		o.rounds.SignRound1,
		o.rounds.SignRound2,
		o.rounds.SignRound3,
		o.rounds.SignRound4,
		o.rounds.SignRound5,
		o.rounds.SignRound6,
		o.rounds.SignRound7,
		o.rounds.SignRound8,
		o.rounds.SignRound9,
	}
	for i, step := range steps {
		if roundCtx, err = step(ctx, roundCtx); err != nil {
			return fmt.Errorf("sign round %d: %w", i, err)
		}
	}

	// Round 9 yields the signature; it is reported, never persisted.
	o.logger.Info(ctx, "signature produced", "task_id", task.ID, "signature", roundCtx)
	return nil
}
