package userkeys

import (
	"context"

	"github.com/keygrove/ceremony/internal/server/models"
)

type Repository interface {
	// Upsert inserts the key row or replaces the existing key material for
	// the user in a single conditional write.
	Upsert(ctx context.Context, userID, keyData string) error
	GetByUserID(ctx context.Context, userID string) (*models.GeneratedUserKey, error)
}
