package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/directory"
)

type fakeClient struct {
	token string

	loginSession *client.Session
	loginErr     error

	users     []directory.User
	usersErr  error
	userCalls int

	detailErr error
	updateErr error
	updated   *directory.User
}

func (f *fakeClient) SetToken(token string) { f.token = token }

func (f *fakeClient) Login(ctx context.Context, username, password string) (*client.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginSession, nil
}

func (f *fakeClient) Session(ctx context.Context) (*client.Identity, error) {
	if f.token == "" {
		return nil, client.ErrUnauthorized
	}
	return &client.Identity{ID: "1", Username: "testuser"}, nil
}

func (f *fakeClient) Users(ctx context.Context) ([]directory.User, error) {
	f.userCalls++
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	out := make([]directory.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeClient) UserDetail(ctx context.Context, id int) (*client.UserDetail, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	for _, u := range f.users {
		if u.ID == id {
			return &client.UserDetail{User: u, Posts: []directory.Post{{ID: 1, UserID: id, Title: "post"}}}, nil
		}
	}
	return nil, client.ErrLoadFailed
}

func (f *fakeClient) UpdateUser(ctx context.Context, u directory.User) (*directory.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated = &u
	return &u, nil
}

func (f *fakeClient) Ping(ctx context.Context) error { return nil }

func makeUsers(n int) []directory.User {
	users := make([]directory.User, 0, n)
	for i := 1; i <= n; i++ {
		users = append(users, directory.User{
			ID: i, Name: fmt.Sprintf("Member %02d", i),
			Username: fmt.Sprintf("m%02d", i), Email: fmt.Sprintf("m%02d@example.com", i),
		})
	}
	return users
}
