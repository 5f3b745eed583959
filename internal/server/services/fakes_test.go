package services

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/dbx"
	"github.com/dmitrijs2005/userdesk/internal/directory"
	"github.com/dmitrijs2005/userdesk/internal/server/models"
	"github.com/dmitrijs2005/userdesk/internal/server/repositories/operators"
	"github.com/dmitrijs2005/userdesk/internal/server/repositories/posts"
	"github.com/dmitrijs2005/userdesk/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

type fakeVerifier struct {
	id  *models.Identity
	err error
}

func (f *fakeVerifier) Verify(ctx context.Context, username, password string) (*models.Identity, error) {
	return f.id, f.err
}

type fakeOperatorsRepo struct {
	created *models.Operator
	err     error
}

func (f *fakeOperatorsRepo) Create(ctx context.Context, op *models.Operator) (*models.Operator, error) {
	if f.err != nil {
		return nil, f.err
	}
	op.ID = "op-1"
	f.created = op
	return op, nil
}

func (f *fakeOperatorsRepo) GetByUsername(ctx context.Context, username string) (*models.Operator, error) {
	return nil, common.ErrorNotFound
}

type fakeRepoManager struct {
	ops *fakeOperatorsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Operators(db dbx.DBTX) operators.Repository   { return m.ops }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return nil }
func (m *fakeRepoManager) Posts(db dbx.DBTX) posts.Repository           { return nil }

// fakeSource serves a fixed directory and counts calls.
type fakeSource struct {
	users    []directory.User
	posts    []directory.Post
	usersErr error
	userErr  error
	postsErr error
	saveErr  error
	calls    atomic.Int32
	saved    *directory.User
}

func (f *fakeSource) Users(ctx context.Context) ([]directory.User, error) {
	f.calls.Add(1)
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	return f.users, nil
}

func (f *fakeSource) UserByID(ctx context.Context, id int) (*directory.User, error) {
	f.calls.Add(1)
	if f.userErr != nil {
		return nil, f.userErr
	}
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeSource) PostsByUserID(ctx context.Context, userID int) ([]directory.Post, error) {
	f.calls.Add(1)
	if f.postsErr != nil {
		return nil, f.postsErr
	}
	var out []directory.Post
	for _, p := range f.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSource) UpdateUser(ctx context.Context, u directory.User) (*directory.User, error) {
	f.calls.Add(1)
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = &u
	return &u, nil
}
