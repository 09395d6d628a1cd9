package userkeys

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

func (r *PostgresRepository) Upsert(ctx context.Context, userID, keyData string) error {

	query :=
		`INSERT INTO generated_user_keys (user_id, key_data)
         VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET key_data = EXCLUDED.key_data
		 `

	_, err := r.db.ExecContext(ctx, query, userID, keyData)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.GeneratedUserKey, error) {
	query :=
		`SELECT user_id, key_data FROM generated_user_keys
		 WHERE user_id = $1
		 `

	key := &models.GeneratedUserKey{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&key.UserID, &key.KeyData)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return key, nil
}
