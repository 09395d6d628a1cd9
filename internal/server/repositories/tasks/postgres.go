package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/keygrove/ceremony/internal/common"
	"github.com/keygrove/ceremony/internal/dbx"
	"github.com/keygrove/ceremony/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {

	query :=
		`INSERT INTO tasks (id, type, parameters, status, created_at, created_by)
         VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.Type, task.Parameters, task.Status, task.CreatedAt, task.CreatedBy)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, taskID string) (*models.Task, error) {
	query :=
		`SELECT id, type, parameters, status, created_at, created_by FROM tasks
		 WHERE id = $1
		 `

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, taskID).Scan(
		&task.ID, &task.Type, &task.Parameters, &task.Status, &task.CreatedAt, &task.CreatedBy)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, taskID, status string) (int64, error) {
	query :=
		`UPDATE tasks SET status = $1
		 WHERE id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, status, taskID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return affected, nil
}
