package common

// Task statuses as stored in the tasks table. AllowedStatuses is the fixed
// set accepted by the status-patch operation; values outside it are rejected,
// never coerced.
const (
	StatusCreated    = "created"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCanceled   = "canceled"
	StatusFailed     = "failed"
)

// Task types understood by the orchestrator.
const (
	TaskTypeKeyGeneration = "keygeneration"
	TaskTypeSigning       = "signing"
)

// AllowedStatuses lists every valid task status.
var AllowedStatuses = []string{StatusCreated, StatusProcessing, StatusCompleted, StatusCanceled, StatusFailed}

// StatusAllowed reports whether s is a member of the fixed status set.
func StatusAllowed(s string) bool {
	for _, v := range AllowedStatuses {
		if v == s {
			return true
		}
	}
	return false
}
