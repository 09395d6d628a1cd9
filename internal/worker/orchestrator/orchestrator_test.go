package orchestrator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/keygrove/ceremony/internal/common"
	"github.com/keygrove/ceremony/internal/logging"
	"github.com/keygrove/ceremony/internal/worker/taskapi"
)

// --- fakes ---

type fakeTaskAPI struct {
	task    *taskapi.Task
	getErr  error
	byUser  map[string]string
	keyErr  error
	setErr  map[string]error
	upErr   error
	callLog []string
}

func (f *fakeTaskAPI) GetTask(ctx context.Context, taskID string) (*taskapi.Task, error) {
	f.callLog = append(f.callLog, "get:"+taskID)
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.task, nil
}

func (f *fakeTaskAPI) SetTaskStatus(ctx context.Context, taskID, status string) error {
	f.callLog = append(f.callLog, "status:"+status)
	if err, ok := f.setErr[status]; ok {
		return err
	}
	return nil
}

func (f *fakeTaskAPI) GetUserKey(ctx context.Context, userID string) (string, error) {
	f.callLog = append(f.callLog, "getkey:"+userID)
	if f.keyErr != nil {
		return "", f.keyErr
	}
	return f.byUser[userID], nil
}

func (f *fakeTaskAPI) UpsertUserKey(ctx context.Context, userID, keyData string) error {
	f.callLog = append(f.callLog, "putkey:"+userID)
	if f.upErr != nil {
		return f.upErr
	}
	if f.byUser == nil {
		f.byUser = map[string]string{}
	}
	f.byUser[userID] = keyData
	return nil
}

// scriptedRounds threads a counter through the opaque context so the test can
// verify every round ran in order. failAt aborts the named round.
type scriptedRounds struct {
	failAt string
	calls  []string

	signThreshold int
	signParties   int
	signKeyStore  string
	signMessage   string
}

func (s *scriptedRounds) step(name, out string, err error) (string, error) {
	s.calls = append(s.calls, name)
	if s.failAt == name {
		return "", errors.New(name + " blew up")
	}
	return out, err
}

func (s *scriptedRounds) KeygenNewContext(ctx context.Context, t, n int) (string, error) {
	return s.step("keygen_new", "kctx0", nil)
}
func (s *scriptedRounds) KeygenRound1(ctx context.Context, c string) (string, error) {
	return s.step("keygen1", "kctx1", nil)
}
func (s *scriptedRounds) KeygenRound2(ctx context.Context, c string) (string, error) {
	return s.step("keygen2", "kctx2", nil)
}
func (s *scriptedRounds) KeygenRound3(ctx context.Context, c string) (string, error) {
	return s.step("keygen3", "kctx3", nil)
}
func (s *scriptedRounds) KeygenRound4(ctx context.Context, c string) (string, error) {
	return s.step("keygen4", "kctx4", nil)
}
func (s *scriptedRounds) KeygenRound5(ctx context.Context, c string) (string, error) {
	return s.step("keygen5", `{"key":"store"}`, nil)
}
func (s *scriptedRounds) SignNewContext(ctx context.Context, t, n int, ks, msg string) (string, error) {
	s.signThreshold, s.signParties = t, n
	s.signKeyStore, s.signMessage = ks, msg
	return s.step("sign_new", "sctx0", nil)
}
func (s *scriptedRounds) SignRound0(ctx context.Context, c string) (string, error) {
	return s.step("sign0", "sctx1", nil)
}
func (s *scriptedRounds) SignRound1(ctx context.Context, c string) (string, error) {
	return s.step("sign1", "sctx2", nil)
}
func (s *scriptedRounds) SignRound2(ctx context.Context, c string) (string, error) {
	return s.step("sign2", "sctx3", nil)
}
func (s *scriptedRounds) SignRound3(ctx context.Context, c string) (string, error) {
	return s.step("sign3", "sctx4", nil)
}
func (s *scriptedRounds) SignRound4(ctx context.Context, c string) (string, error) {
	return s.step("sign4", "sctx5", nil)
}
func (s *scriptedRounds) SignRound5(ctx context.Context, c string) (string, error) {
	return s.step("sign5", "sctx6", nil)
}
func (s *scriptedRounds) SignRound6(ctx context.Context, c string) (string, error) {
	return s.step("sign6", "sctx7", nil)
}
func (s *scriptedRounds) SignRound7(ctx context.Context, c string) (string, error) {
	return s.step("sign7", "sctx8", nil)
}
func (s *scriptedRounds) SignRound8(ctx context.Context, c string) (string, error) {
	return s.step("sign8", "sctx9", nil)
}
func (s *scriptedRounds) SignRound9(ctx context.Context, c string) (string, error) {
	return s.step("sign9", `["r","s",0]`, nil)
}

func newOrchestrator(api *fakeTaskAPI, rounds *scriptedRounds) *Orchestrator {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return New(api, rounds, logger)
}

func keygenTask() *taskapi.Task {
	return &taskapi.Task{
		ID: "t-1", Type: common.TaskTypeKeyGeneration,
		Parameters: `{"t":1,"n":3}`, Status: common.StatusCreated, CreatedBy: "u-1",
	}
}

func signingTask() *taskapi.Task {
	return &taskapi.Task{
		ID: "t-2", Type: common.TaskTypeSigning,
		Parameters: `{"t":1,"n":3,"message":"deadbeef"}`, Status: common.StatusCreated, CreatedBy: "u-1",
	}
}

// --- tests ---

func TestRun_KeygenSuccess(t *testing.T) {
	api := &fakeTaskAPI{task: keygenTask()}
	rounds := &scriptedRounds{}
	o := newOrchestrator(api, rounds)

	if err := o.Run(context.Background(), "t-1"); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	wantRounds := []string{"keygen_new", "keygen1", "keygen2", "keygen3", "keygen4", "keygen5"}
	if got := strings.Join(rounds.calls, ","); got != strings.Join(wantRounds, ",") {
		t.Fatalf("round order: %s", got)
	}
	if api.byUser["u-1"] != `{"key":"store"}` {
		t.Fatalf("key material not stored: %v", api.byUser)
	}

	wantCalls := []string{"get:t-1", "status:processing", "putkey:u-1", "status:completed"}
	if got := strings.Join(api.callLog, ","); got != strings.Join(wantCalls, ",") {
		t.Fatalf("call order: %s", got)
	}
}

func TestRun_SigningSuccess(t *testing.T) {
	api := &fakeTaskAPI{task: signingTask(), byUser: map[string]string{"u-1": `{"key":"store"}`}}
	rounds := &scriptedRounds{}
	o := newOrchestrator(api, rounds)

	if err := o.Run(context.Background(), "t-2"); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if len(rounds.calls) != 11 || rounds.calls[0] != "sign_new" || rounds.calls[10] != "sign9" {
		t.Fatalf("round sequence: %v", rounds.calls)
	}
	if rounds.signThreshold != 1 || rounds.signParties != 3 {
		t.Fatalf("ceremony shape must reach the round client, got t=%d n=%d",
			rounds.signThreshold, rounds.signParties)
	}
	if rounds.signKeyStore != `{"key":"store"}` || rounds.signMessage != "deadbeef" {
		t.Fatalf("key store and message must reach the round client, got %q %q",
			rounds.signKeyStore, rounds.signMessage)
	}
	if api.callLog[len(api.callLog)-1] != "status:completed" {
		t.Fatalf("final call: %v", api.callLog)
	}
}

func TestRun_SigningMissingKeyFails(t *testing.T) {
	api := &fakeTaskAPI{task: signingTask(), keyErr: common.ErrorNotFound}
	rounds := &scriptedRounds{}
	o := newOrchestrator(api, rounds)

	if err := o.Run(context.Background(), "t-2"); err == nil {
		t.Fatalf("expected error")
	}
	if len(rounds.calls) != 0 {
		t.Fatalf("no round must run without key material, got %v", rounds.calls)
	}
	if api.callLog[len(api.callLog)-1] != "status:failed" {
		t.Fatalf("task must end failed: %v", api.callLog)
	}
}

func TestRun_TaskNotCreated(t *testing.T) {
	task := keygenTask()
	task.Status = common.StatusProcessing
	api := &fakeTaskAPI{task: task}
	o := newOrchestrator(api, &scriptedRounds{})

	if err := o.Run(context.Background(), "t-1"); err == nil {
		t.Fatalf("expected error")
	}
	for _, call := range api.callLog {
		if strings.HasPrefix(call, "status:") {
			t.Fatalf("task must be left untouched, got %v", api.callLog)
		}
	}
}

func TestRun_TaskIDMismatch(t *testing.T) {
	task := keygenTask()
	task.ID = "other"
	api := &fakeTaskAPI{task: task}
	o := newOrchestrator(api, &scriptedRounds{})

	if err := o.Run(context.Background(), "t-1"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRun_FetchErrorLeavesTaskUntouched(t *testing.T) {
	api := &fakeTaskAPI{getErr: common.ErrorNotFound}
	o := newOrchestrator(api, &scriptedRounds{})

	if err := o.Run(context.Background(), "t-1"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
	if len(api.callLog) != 1 {
		t.Fatalf("only the fetch must happen, got %v", api.callLog)
	}
}

func TestRun_RoundFailureMarksFailed(t *testing.T) {
	api := &fakeTaskAPI{task: keygenTask()}
	rounds := &scriptedRounds{failAt: "keygen3"}
	o := newOrchestrator(api, rounds)

	err := o.Run(context.Background(), "t-1")
	if err == nil || !strings.Contains(err.Error(), "keygen3") {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCalls := []string{"get:t-1", "status:processing", "status:failed"}
	if got := strings.Join(api.callLog, ","); got != strings.Join(wantCalls, ",") {
		t.Fatalf("call order: %s", got)
	}
}

func TestRun_BadParameters(t *testing.T) {
	task := keygenTask()
	task.Parameters = `{"n":3}`
	api := &fakeTaskAPI{task: task}
	o := newOrchestrator(api, &scriptedRounds{})

	if err := o.Run(context.Background(), "t-1"); err == nil {
		t.Fatalf("expected error")
	}
	if api.callLog[len(api.callLog)-1] != "status:failed" {
		t.Fatalf("task must end failed: %v", api.callLog)
	}
}

func TestRun_UnsupportedType(t *testing.T) {
	task := keygenTask()
	task.Type = "dancing"
	api := &fakeTaskAPI{task: task}
	o := newOrchestrator(api, &scriptedRounds{})

	if err := o.Run(context.Background(), "t-1"); err == nil {
		t.Fatalf("expected error")
	}
	if api.callLog[len(api.callLog)-1] != "status:failed" {
		t.Fatalf("task must end failed: %v", api.callLog)
	}
}

func TestRun_ClaimErrorPropagates(t *testing.T) {
	api := &fakeTaskAPI{
		task:   keygenTask(),
		setErr: map[string]error{common.StatusProcessing: errors.New("conflict")},
	}
	rounds := &scriptedRounds{}
	o := newOrchestrator(api, rounds)

	if err := o.Run(context.Background(), "t-1"); err == nil {
		t.Fatalf("expected error")
	}
	if len(rounds.calls) != 0 {
		t.Fatalf("no round must run after a failed claim, got %v", rounds.calls)
	}
}
