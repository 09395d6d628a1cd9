package services

import (
	"context"
	"database/sql"

	"github.com/keygrove/ceremony/internal/server/config"
	"github.com/keygrove/ceremony/internal/server/models"
	"github.com/keygrove/ceremony/internal/server/repositories/repomanager"
)

// UserKeyService stores and serves the per-user key material produced by
// key-generation ceremonies. Last writer wins; there is never more than one
// row per user.
type UserKeyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewUserKeyService constructs a UserKeyService.
func NewUserKeyService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserKeyService {
	return &UserKeyService{db: db, repomanager: m}
}

// Upsert inserts or replaces the key material for the user.
func (s *UserKeyService) Upsert(ctx context.Context, userID, keyData string) error {
	repo := s.repomanager.UserKeys(s.db)
	return repo.Upsert(ctx, userID, keyData)
}

// GetByUserID returns the stored key material or common.ErrorNotFound.
func (s *UserKeyService) GetByUserID(ctx context.Context, userID string) (*models.GeneratedUserKey, error) {
	repo := s.repomanager.UserKeys(s.db)
	return repo.GetByUserID(ctx, userID)
}
