package coordinator

import (
	"sync"

	"github.com/google/uuid"
)

// PartySignup is the slot handed to a party joining a ceremony: its party
// number and the shared ceremony uuid of the current batch.
type PartySignup struct {
	Number int    `json:"number"`
	UUID   string `json:"uuid"`
}

// signupRegistry allocates party numbers per task. Numbers cycle from 1 to
// the batch size; when a batch fills up the next signup opens a new batch
// under a fresh uuid.
type signupRegistry struct {
	mu      sync.Mutex
	batches map[string]*PartySignup
}

func newSignupRegistry() *signupRegistry {
	return &signupRegistry{batches: make(map[string]*PartySignup)}
}

// Next hands out the next slot for the task, starting a new batch of the
// given size when the current one is full.
func (r *signupRegistry) Next(taskID string, batchSize int) PartySignup {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.batches[taskID]
	if !ok || current.Number >= batchSize {
		current = &PartySignup{Number: 1, UUID: uuid.NewString()}
		r.batches[taskID] = current
		return *current
	}

	current.Number++
	return *current
}
