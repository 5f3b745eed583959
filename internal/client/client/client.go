package client

import (
	"context"

	"github.com/dmitrijs2005/userdesk/internal/directory"
)

// Identity is who the current session belongs to.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Session is returned by a successful login.
type Session struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

// UserDetail is a user with their posts.
type UserDetail struct {
	User  directory.User   `json:"user"`
	Posts []directory.Post `json:"posts"`
}

type Client interface {
	SetToken(token string)
	Login(ctx context.Context, username, password string) (*Session, error)
	Session(ctx context.Context) (*Identity, error)
	Users(ctx context.Context) ([]directory.User, error)
	UserDetail(ctx context.Context, id int) (*UserDetail, error)
	UpdateUser(ctx context.Context, u directory.User) (*directory.User, error)
	Ping(ctx context.Context) error
}
