package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/keygrove/ceremony/internal/common"
	"github.com/keygrove/ceremony/internal/dbx"
	"github.com/keygrove/ceremony/internal/server/config"
	"github.com/keygrove/ceremony/internal/server/models"
	"github.com/keygrove/ceremony/internal/server/repositories/repomanager"
)

// TaskService owns the task lifecycle: creation in the initial status and the
// transactionally guarded status transitions.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTaskService constructs a TaskService using repositories and server config.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// Create allocates a fresh task identifier and persists the task in the
// "created" status with the current timestamp. The insert is a single
// statement, so the row either exists completely or not at all.
func (s *TaskService) Create(ctx context.Context, taskType, parameters, createdBy string) (string, error) {
	task := &models.Task{
		ID:         uuid.NewString(),
		Type:       taskType,
		Parameters: parameters,
		Status:     common.StatusCreated,
		CreatedAt:  time.Now().UTC(),
		CreatedBy:  createdBy,
	}

	repo := s.repomanager.Tasks(s.db)
	if _, err := repo.Create(ctx, task); err != nil {
		return "", fmt.Errorf("error creating task: %w", err)
	}
	return task.ID, nil
}

// GetByID returns the task or common.ErrorNotFound.
func (s *TaskService) GetByID(ctx context.Context, taskID string) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	return repo.GetByID(ctx, taskID)
}

// SetStatus updates the task status inside an explicit transaction. The
// transaction commits only when exactly one row changed; an unknown task
// yields common.ErrorNotFound, and any other affected-row count aborts the
// transaction. Rollback is guaranteed on every failure path, including a
// failed commit, so a partial transition is never observable.
func (s *TaskService) SetStatus(ctx context.Context, taskID, status string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Tasks(tx)
		affected, err := repoTx.UpdateStatus(ctx, taskID, status)
		if err != nil {
			return err
		}
		if affected == 0 {
			return common.ErrorNotFound
		}
		if affected != 1 {
			return fmt.Errorf("status update affected %d rows for task %s", affected, taskID)
		}
		return nil
	})
}
