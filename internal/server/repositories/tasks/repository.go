package tasks

import (
	"context"

	"github.com/keygrove/ceremony/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, taskID string) (*models.Task, error)
	// UpdateStatus sets the task status and returns the number of rows
	// affected. Zero means the task does not exist.
	UpdateStatus(ctx context.Context, taskID, status string) (int64, error)
}
