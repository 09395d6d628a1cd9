// Package services contains server-side business logic. This file implements
// UserService, which handles account provisioning, login, and credential
// verification.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/keygrove/ceremony/internal/common"
	"github.com/keygrove/ceremony/internal/cryptox"
	"github.com/keygrove/ceremony/internal/server/auth"
	"github.com/keygrove/ceremony/internal/server/config"
	"github.com/keygrove/ceremony/internal/server/models"
	"github.com/keygrove/ceremony/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: provision accounts (bootstrap/admin path)
// - Login: verify credentials and mint a token
// - CheckToken / VerifyCredential: validate presented tokens
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new user with the given username and password.
// The password is digested before it is stored; the plaintext never leaves
// this function.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	user := &models.User{Username: username, PasswordHash: cryptox.PasswordDigest(password)}
	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// EnsureUser provisions the user if it does not exist yet. Used at startup to
// seed a bootstrap account; an existing user is left untouched.
func (s *UserService) EnsureUser(ctx context.Context, username, password string) error {
	repo := s.repomanager.Users(s.db)
	_, err := repo.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return err
	}
	_, err = s.Register(ctx, username, password)
	return err
}

// Login verifies the username/password pair and, on match, issues a signed
// time-bounded credential. Unknown users and wrong passwords are both
// reported as common.ErrorUnauthorized; store failures as common.ErrorInternal.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}
	if !cryptox.DigestEqual(user.PasswordHash, cryptox.PasswordDigest(password)) {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, user.Username, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// VerifyCredential parses and verifies a presented token, returning the
// embedded claims. Failures are sentinel errors, never server faults.
func (s *UserService) VerifyCredential(tokenString string) (*auth.Claims, error) {
	return auth.ParseToken(tokenString, s.jwtSecret)
}

// CheckToken reports whether the token verifies. Any verification failure
// (bad signature, expired, malformed) is the normal "false" outcome.
func (s *UserService) CheckToken(tokenString string) bool {
	_, err := auth.ParseToken(tokenString, s.jwtSecret)
	return err == nil
}
