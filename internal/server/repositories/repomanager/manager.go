package repomanager

import (
	"context"
	"database/sql"

	"github.com/keygrove/ceremony/internal/dbx"
	"github.com/keygrove/ceremony/internal/server/repositories/tasks"
	"github.com/keygrove/ceremony/internal/server/repositories/userkeys"
	"github.com/keygrove/ceremony/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	UserKeys(db dbx.DBTX) userkeys.Repository
}
