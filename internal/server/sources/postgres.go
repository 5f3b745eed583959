package sources

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/userdesk/internal/dbx"
	"github.com/dmitrijs2005/userdesk/internal/directory"
	"github.com/dmitrijs2005/userdesk/internal/server/repositories/repomanager"
)

// PostgresSource serves the directory from the directory_users and posts
// tables.
type PostgresSource struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPostgresSource(db *sql.DB, m repomanager.RepositoryManager) *PostgresSource {
	return &PostgresSource{db: db, repomanager: m}
}

func (s *PostgresSource) Users(ctx context.Context) ([]directory.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, loadErr(err)
	}
	return users, nil
}

func (s *PostgresSource) UserByID(ctx context.Context, id int) (*directory.User, error) {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, loadErr(err)
	}
	return u, nil
}

func (s *PostgresSource) PostsByUserID(ctx context.Context, userID int) ([]directory.Post, error) {
	posts, err := s.repomanager.Posts(s.db).ListByUserID(ctx, userID)
	if err != nil {
		return nil, loadErr(err)
	}
	return posts, nil
}

func (s *PostgresSource) UpdateUser(ctx context.Context, u directory.User) (*directory.User, error) {
	updated, err := dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*directory.User, error) {
		return s.repomanager.Users(tx).Update(ctx, u)
	})
	if err != nil {
		return nil, loadErr(err)
	}
	return updated, nil
}
