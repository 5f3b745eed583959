package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/userdesk/internal/dbx"
	"github.com/dmitrijs2005/userdesk/internal/server/repositories/operators"
	"github.com/dmitrijs2005/userdesk/internal/server/repositories/posts"
	"github.com/dmitrijs2005/userdesk/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Operators(db dbx.DBTX) operators.Repository
	Users(db dbx.DBTX) users.Repository
	Posts(db dbx.DBTX) posts.Repository
}
